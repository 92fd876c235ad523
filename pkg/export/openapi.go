// Package export describes the render-submission API for an extracted
// schema as an OpenAPI 3 document, so hosts can generate clients or validate
// payloads against the model's parameters.
package export

import (
	"fmt"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-customizer/pkg/scad"
)

// Options controls the generated document.
type Options struct {
	// Title and Version populate the info block. Both default when empty.
	Title   string
	Version string
	// RenderPath is the POST endpoint accepting parameter payloads,
	// "/render" by default.
	RenderPath string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Customizer Render API"
	}
	if o.Version == "" {
		o.Version = "1.0.0"
	}
	if o.RenderPath == "" {
		o.RenderPath = "/render"
	}
	return o
}

// Document builds an OpenAPI description with one POST operation whose JSON
// request body carries a property per extracted parameter.
func Document(schema scad.Schema, options Options) (*openapi3.T, error) {
	options = options.withDefaults()

	body := openapi3.NewObjectSchema()
	for _, param := range schema.Ordered() {
		prop, err := parameterSchema(param)
		if err != nil {
			return nil, err
		}
		body.WithProperty(param.Name, prop)
	}

	operation := &openapi3.Operation{
		OperationID: "renderModel",
		Summary:     "Render the model with the supplied parameter values.",
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithJSONSchema(body).WithRequired(true),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Rendered model output."),
			}),
		),
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   options.Title,
			Version: options.Version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(options.RenderPath, &openapi3.PathItem{Post: operation}),
		),
	}

	if len(schema.Libraries) > 0 {
		doc.Info.Extensions = map[string]any{"x-libraries": schema.Libraries}
	}
	return doc, nil
}

func parameterSchema(param scad.Parameter) (*openapi3.Schema, error) {
	var s *openapi3.Schema
	switch param.Type {
	case scad.ParamTypeInteger:
		s = openapi3.NewIntegerSchema()
	case scad.ParamTypeNumber:
		s = openapi3.NewFloat64Schema()
	case scad.ParamTypeBoolean:
		s = openapi3.NewBoolSchema()
	default:
		s = openapi3.NewStringSchema()
	}

	s.Description = param.Description
	if param.Default != nil {
		s.Default = param.Default
	}
	s.Min = param.Minimum
	s.Max = param.Maximum

	if len(param.Enum) > 0 {
		values, err := enumValues(param)
		if err != nil {
			return nil, err
		}
		s.Enum = values
	}

	extensions := map[string]any{}
	if param.Group != "" {
		extensions["x-group"] = param.Group
	}
	if param.Unit != "" {
		extensions["x-unit"] = param.Unit
	}
	if param.Dependency != nil {
		extensions["x-depends"] = map[string]any{
			"parameter": param.Dependency.Parameter,
			"operator":  param.Dependency.Operator,
			"value":     param.Dependency.Value,
		}
	}
	if len(extensions) > 0 {
		s.Extensions = extensions
	}
	return s, nil
}

// enumValues converts annotation options to the parameter's value type so
// numeric enums validate against numeric payloads.
func enumValues(param scad.Parameter) ([]any, error) {
	out := make([]any, 0, len(param.Enum))
	for _, option := range param.Enum {
		switch param.Type {
		case scad.ParamTypeInteger:
			v, err := strconv.ParseInt(option, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("export: enum option %q for integer parameter %q: %w", option, param.Name, err)
			}
			out = append(out, v)
		case scad.ParamTypeNumber:
			v, err := strconv.ParseFloat(option, 64)
			if err != nil {
				return nil, fmt.Errorf("export: enum option %q for number parameter %q: %w", option, param.Name, err)
			}
			out = append(out, v)
		default:
			out = append(out, option)
		}
	}
	return out, nil
}
