// Package cmd implements the nmind command line.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaitj/nmind-proceedings/internal/logging"
	"github.com/kaitj/nmind-proceedings/types"
	"github.com/kaitj/nmind-proceedings/validate"
)

var (
	// Global flags
	cfgFile     string
	datasetPath string
	logLevel    string

	cfg            *types.Config
	configWarnings []string
	logger         *logging.ZapLogger
)

var rootCmd = &cobra.Command{
	Use:   "nmind",
	Short: "Browse the NMIND evaluated-library proceedings",
	Long: `nmind searches and scores neuroimaging libraries evaluated against the
NMIND checklist of documentation, infrastructure and testing standards.

The bundled dataset is used unless --dataset or the dataset key in nmind.yaml
points at another file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", types.DefaultConfigFile, "config file")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset JSON file (default: bundled dataset)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads nmind.yaml, applies flag overrides, validates the result and
// builds the process logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := types.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if datasetPath != "" {
		c.Dataset = datasetPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}

	result := validate.ValidateConfig(c)
	if !result.IsValid() {
		for _, e := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: %s\n", e)
		}
		return fmt.Errorf("config validation failed: %d error(s)", len(result.Errors))
	}

	l, err := logging.New(c.Log.Level, c.Log.Format)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	cfg = c
	configWarnings = result.Warnings
	logger = l
	return nil
}
