package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-customizer/pkg/scad"
	"github.com/goliatone/go-customizer/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <model>",
	Short: "Re-extract the schema whenever the model file changes",
	Long: `watch prints the extracted schema as JSON once at startup and again
after every save of the model file. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := watch.New()
		err := w.Watch(ctx, args[0], func(schema scad.Schema, err error) {
			if err != nil {
				logger.Error("reload failed", "error", err)
				return
			}
			logWarnings(schema.Warnings)

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				logger.Error("encode schema", "error", err)
				return
			}
			fmt.Println(string(out))
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
