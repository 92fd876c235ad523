package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	customizer "github.com/goliatone/go-customizer"
)

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema <model>",
	Short: "Extract the parameter schema as JSON",
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

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		return writeOutput(out, schemaOutput)
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "output file (stdout if empty)")
	rootCmd.AddCommand(schemaCmd)
}
