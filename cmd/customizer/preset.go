package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-customizer/pkg/presets"
)

var (
	presetDB     string
	presetValues string
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved parameter presets",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <model> <name>",
	Short: "Save a parameter value set for a model",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := readValues(presetValues)
		if err != nil {
			return err
		}

		store, err := openPresetStore()
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()

		saved, err := store.Save(cmd.Context(), presets.Preset{
			Model:  args[0],
			Name:   args[1],
			Values: values,
		})
		if err != nil {
			return err
		}
		logger.Info("preset saved", "model", saved.Model, "name", saved.Name, "id", saved.ID)
		return nil
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list <model>",
	Short: "List presets saved for a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPresetStore()
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()

		all, err := store.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, preset := range all {
			fmt.Printf("%s\t%s\t%s\n", preset.Name, preset.UpdatedAt.Format("2006-01-02 15:04"), preset.ID)
		}
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <model> <name>",
	Short: "Print a preset as YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPresetStore()
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()

		preset, err := store.Get(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		out, err := presets.EncodeYAML(preset)
		if err != nil {
			return err
		}
		return writeOutput(out, "")
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <model> <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPresetStore()
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()
		return store.Delete(cmd.Context(), args[0], args[1])
	},
}

func openPresetStore() (*presets.SQLiteStore, error) {
	path := presetDB
	if path == "" {
		path = v.GetString("presets.db")
	}
	if path == "" {
		path = "customizer.db"
	}
	return presets.OpenSQLite(path)
}

// readValues loads a parameter payload: JSON or YAML object keyed by
// parameter name, matching the output of `customizer prompt`.
func readValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, fmt.Errorf("--values file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values %q: %w", path, err)
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err == nil {
		return values, nil
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values %q: %w", path, err)
	}
	return values, nil
}

func init() {
	presetCmd.PersistentFlags().StringVar(&presetDB, "db", "", "preset database path (default customizer.db)")
	presetSaveCmd.Flags().StringVar(&presetValues, "values", "", "JSON or YAML file with parameter values")

	presetCmd.AddCommand(presetSaveCmd, presetListCmd, presetShowCmd, presetDeleteCmd)
	rootCmd.AddCommand(presetCmd)
}
