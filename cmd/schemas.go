package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kaitj/nmind-proceedings/checklist"
)

var schemasFormat string

var schemasCmd = &cobra.Command{
	Use:   "schemas [version]",
	Short: "List evaluation schema versions or the prompts of one version",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchemas,
}

func init() {
	schemasCmd.Flags().StringVar(&schemasFormat, "format", "", "output format: text or json")
}

func runSchemas(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(schemasFormat)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		schemas := cat.Schemas()
		if format == "json" {
			return writeJSON(out, schemas)
		}
		for i := range schemas {
			fmt.Fprintf(out, "Version %d  %d items\n", schemas[i].Version(), len(schemas[i].Items))
		}
		return nil
	}

	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("schema version %q is not an integer", args[0])
	}
	schema := checklist.FindSchemaByVersion(cat.Schemas(), version)
	if schema == nil {
		return fmt.Errorf("%w: version %d", checklist.ErrSchemaNotFound, version)
	}
	if format == "json" {
		return writeJSON(out, schema)
	}
	renderSchema(out, schema)
	return nil
}
