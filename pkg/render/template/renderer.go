// Package template defines the template engine seam renderers rely on, so a
// renderer never binds to a concrete template library.
package template

import "io"

// Renderer mirrors the github.com/goliatone/go-template engine contract.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
