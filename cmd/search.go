package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaitj/nmind-proceedings/internal/tui"
	"github.com/kaitj/nmind-proceedings/search"
)

var (
	searchText        string
	searchTags        string
	searchTiers       []string
	searchFormat      string
	searchInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search evaluated libraries",
	Long: `Search evaluated libraries by completed section tiers, tags and name.

Tags are comma separated. Every tag but the last must match exactly and the
last matches as a substring; end the list with a comma to make every tag exact.

Run without query flags on a terminal to open the interactive search screen.`,
	Example: `  nmind search --tags python,pipe
  nmind search --tier documentation-gold --tier testing-silver --format json`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchText, "text", "", "case-insensitive substring of the library name")
	searchCmd.Flags().StringVar(&searchTags, "tags", "", "comma-separated tags; a trailing comma makes every tag exact")
	searchCmd.Flags().StringSliceVar(&searchTiers, "tier", nil, "completed section tier such as documentation-gold (repeatable)")
	searchCmd.Flags().StringVar(&searchFormat, "format", "", "output format: text or json")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "open the interactive search screen")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	q := search.Query{Text: searchText, Tags: searchTags, SectionTiers: searchTiers}
	if searchInteractive || (q.IsZero() && !cmd.Flags().Changed("format") && stdoutIsTerminal()) {
		return tui.Run(cat, searchTiers)
	}

	format, err := outputFormat(searchFormat)
	if err != nil {
		return err
	}

	libs, err := search.FilterLibraryData(cat, q)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	logger.Debug("search complete", map[string]any{
		"text":    q.Text,
		"tags":    q.Tags,
		"tiers":   q.SectionTiers,
		"results": len(libs),
	})

	listings := search.NewListings(libs)
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), listings)
	}
	renderListings(cmd.OutOrStdout(), listings)
	return nil
}
