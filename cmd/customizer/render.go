package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-customizer/pkg/jobs"
)

var (
	renderValues string
	renderOut    string
	renderEngine string
)

var renderCmd = &cobra.Command{
	Use:   "render <model>",
	Short: "Render the model to geometry with a local engine binary",
	Long: `render submits a job that invokes the configured geometry engine
(openscad by default) with the model file and a -D define per parameter
value, then writes the produced geometry to the output file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath := args[0]

		var values map[string]any
		if renderValues != "" {
			parsed, err := readValues(renderValues)
			if err != nil {
				return err
			}
			values = parsed
		}

		engine := renderEngine
		if engine == "" {
			engine = v.GetString("render.engine")
		}
		if engine == "" {
			engine = "openscad"
		}

		queue := jobs.NewQueue(jobs.ExecutorFunc(func(ctx context.Context, job jobs.Job) ([]byte, error) {
			return runEngine(ctx, engine, job)
		}), jobs.WithWorkers(1))
		if err := queue.Start(cmd.Context()); err != nil {
			return err
		}

		id, err := queue.Submit(modelPath, values)
		if err != nil {
			return err
		}
		logger.Info("render job submitted", "id", id, "model", modelPath)

		// Close drains the queue, so the job is terminal afterwards.
		if err := queue.Close(); err != nil {
			return err
		}

		job, ok := queue.Job(id)
		if !ok {
			return fmt.Errorf("job %s disappeared", id)
		}
		if job.Status == jobs.StatusFailed {
			return fmt.Errorf("render failed: %s", job.Error)
		}

		out := renderOut
		if out == "" {
			base := filepath.Base(modelPath)
			out = base[:len(base)-len(filepath.Ext(base))] + ".stl"
		}
		if err := os.WriteFile(out, job.Output, 0o644); err != nil {
			return fmt.Errorf("write %q: %w", out, err)
		}
		logger.Info("render finished", "output", out, "bytes", len(job.Output))
		return nil
	},
}

// runEngine shells out to the geometry engine and returns the produced file.
func runEngine(ctx context.Context, engine string, job jobs.Job) ([]byte, error) {
	tmp, err := os.CreateTemp("", "customizer-*.stl")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	args := []string{"-o", tmpPath}
	for name, value := range job.Parameters {
		args = append(args, "-D", name+"="+scadLiteral(value))
	}
	args = append(args, job.Model)

	cmd := exec.CommandContext(ctx, engine, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w\n%s", engine, err, output)
	}
	return os.ReadFile(tmpPath)
}

// scadLiteral formats a parameter value as a source-level literal for -D.
func scadLiteral(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func init() {
	renderCmd.Flags().StringVar(&renderValues, "values", "", "JSON or YAML file with parameter values")
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "output file (default <model>.stl)")
	renderCmd.Flags().StringVar(&renderEngine, "engine", "", "geometry engine binary (default openscad)")
	rootCmd.AddCommand(renderCmd)
}
