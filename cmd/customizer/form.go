package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-customizer/pkg/orchestrator"
)

var (
	formOutput   string
	formRenderer string
	formTitle    string
	themeName    string
	themeVariant string
)

var formCmd = &cobra.Command{
	Use:   "form <model>",
	Short: "Render the model's customizer form as HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := parseSource(args[0])
		if err != nil {
			return err
		}

		renderer := formRenderer
		if renderer == "" {
			renderer = v.GetString("renderer")
		}
		theme := themeName
		if theme == "" {
			theme = v.GetString("theme.name")
		}
		variant := themeVariant
		if variant == "" {
			variant = v.GetString("theme.variant")
		}

		gen := orchestrator.New(orchestrator.WithLoader(newLoader()))
		out, err := gen.Generate(cmd.Context(), orchestrator.Request{
			Source:       source,
			Title:        formTitle,
			Renderer:     renderer,
			ThemeName:    theme,
			ThemeVariant: variant,
		})
		if err != nil {
			return fmt.Errorf("render form: %w", err)
		}
		return writeOutput(out, formOutput)
	},
}

func init() {
	formCmd.Flags().StringVarP(&formOutput, "output", "o", "", "output file (stdout if empty)")
	formCmd.Flags().StringVarP(&formRenderer, "renderer", "r", "", "renderer to use (default from config)")
	formCmd.Flags().StringVar(&formTitle, "title", "", "form title (defaults to the model file name)")
	formCmd.Flags().StringVar(&themeName, "theme", "", "theme name")
	formCmd.Flags().StringVar(&themeVariant, "variant", "", "theme variant")
	rootCmd.AddCommand(formCmd)
}
