package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-customizer/pkg/orchestrator"
	"github.com/goliatone/go-customizer/pkg/render"
	"github.com/goliatone/go-customizer/pkg/renderers/tui"
	"github.com/goliatone/go-customizer/pkg/renderers/vanilla"
)

var (
	promptOutput string
	promptFormat string
)

var promptCmd = &cobra.Command{
	Use:   "prompt <model>",
	Short: "Walk the model's parameters as interactive terminal prompts",
	Long: `prompt asks for every visible parameter in declaration order and prints
the collected values. Conditional parameters are skipped when the answers so
far hide them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := parseSource(args[0])
		if err != nil {
			return err
		}

		format := tui.OutputFormatJSON
		if promptFormat == "pretty" {
			format = tui.OutputFormatPrettyText
		}

		registry := render.NewRegistry()
		htmlRenderer, err := vanilla.New()
		if err != nil {
			return fmt.Errorf("init renderer: %w", err)
		}
		registry.MustRegister(htmlRenderer)
		registry.MustRegister(tui.New(tui.WithOutputFormat(format)))

		gen := orchestrator.New(
			orchestrator.WithLoader(newLoader()),
			orchestrator.WithRegistry(registry),
		)
		out, err := gen.Generate(cmd.Context(), orchestrator.Request{
			Source:   source,
			Renderer: tui.Name,
		})
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		return writeOutput(out, promptOutput)
	},
}

func init() {
	promptCmd.Flags().StringVarP(&promptOutput, "output", "o", "", "output file (stdout if empty)")
	promptCmd.Flags().StringVarP(&promptFormat, "format", "f", "json", "output format (json, pretty)")
	rootCmd.AddCommand(promptCmd)
}
