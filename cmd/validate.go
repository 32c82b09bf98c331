package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaitj/nmind-proceedings/local"
	"github.com/kaitj/nmind-proceedings/validate"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the dataset",
	Long: `Check the dataset against its JSON schema and the cross-references between
evaluations and schemas. Exits non-zero when errors are found.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "", "output format: text or json")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(validateFormat)
	if err != nil {
		return err
	}
	raw, source, err := local.ReadDataset(cfg.Dataset)
	if err != nil {
		return err
	}

	_, result := validate.ValidateDataset(raw)
	out := cmd.OutOrStdout()

	if format == "json" {
		if err := writeJSON(out, map[string]any{
			"source":   source,
			"valid":    result.IsValid(),
			"errors":   nonNil(result.Errors),
			"warnings": nonNil(result.Warnings),
		}); err != nil {
			return err
		}
	} else {
		for _, e := range result.Errors {
			fmt.Fprintf(out, "ERROR: %s\n", e)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "WARNING: %s\n", w)
		}
		if result.IsValid() {
			fmt.Fprintf(out, "%s is valid (%d warning(s))\n", source, len(result.Warnings))
		}
	}

	if !result.IsValid() {
		return fmt.Errorf("dataset validation failed: %d error(s)", len(result.Errors))
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
