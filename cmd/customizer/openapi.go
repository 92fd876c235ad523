package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	customizer "github.com/goliatone/go-customizer"
	"github.com/goliatone/go-customizer/pkg/export"
)

var (
	openapiOutput string
	openapiTitle  string
	openapiPath   string
)

var openapiCmd = &cobra.Command{
	Use:   "openapi <model>",
	Short: "Describe the model's render API as an OpenAPI 3 document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := parseSource(args[0])
		if err != nil {
			return err
		}

		doc, err := newLoader().Load(cmd.Context(), source)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		schema, err := customizer.NewExtractor().Extract(cmd.Context(), doc)
		if err != nil {
			return fmt.Errorf("extract schema: %w", err)
		}
		logWarnings(schema.Warnings)

		spec, err := export.Document(schema, export.Options{
			Title:      openapiTitle,
			RenderPath: openapiPath,
		})
		if err != nil {
			return fmt.Errorf("build document: %w", err)
		}

		out, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		return writeOutput(out, openapiOutput)
	},
}

func init() {
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "output file (stdout if empty)")
	openapiCmd.Flags().StringVar(&openapiTitle, "title", "", "document title")
	openapiCmd.Flags().StringVar(&openapiPath, "path", "", "render endpoint path (default /render)")
	rootCmd.AddCommand(openapiCmd)
}
