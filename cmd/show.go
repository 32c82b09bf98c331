package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaitj/nmind-proceedings/checklist"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a library's most recent evaluation",
	Long: `Show a library's links and the score of every section tier in its most
recent evaluation, with the checklist prompts of that evaluation's schema.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "", "output format: text or json")
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(showFormat)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	lib := cat.Get(args[0])
	if lib == nil {
		return fmt.Errorf("library %q not found", args[0])
	}
	sum, err := checklist.Summarize(cat.Schemas(), lib)
	if err != nil {
		return fmt.Errorf("scoring %s: %w", lib.Name, err)
	}

	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), sum)
	}
	renderSummary(cmd.OutOrStdout(), sum)
	return nil
}
