package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/pipekit/config"
	"github.com/kbukum/pipekit/logger"
)

// newRunCmd creates the run command, which executes a YAML-declared pipeline.
func newRunCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline from a YAML definition file",
		Long: `Run loads a pipeline definition, builds the declared components, and
streams every record from the sources through the transforms into the
sinks. The run stops at the first component failure.`,
		Example: `  pipekit run -f pipeline.yml
  pipekit run -f pipeline.yml --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := config.Load(file)
			if err != nil {
				return err
			}
			p, err := config.Build(def, nil)
			if err != nil {
				return err
			}

			logger.Get("cli").Info("pipeline loaded", map[string]interface{}{
				"pipeline": def.Name,
				"file":     file,
			})
			return p.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Pipeline definition file (YAML)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
