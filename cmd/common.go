package cmd

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/kaitj/nmind-proceedings/local"
)

// stdoutIsTerminal is swapped out in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// loadCatalog opens the configured dataset and logs its validation warnings.
func loadCatalog() (*local.Catalog, error) {
	cat, err := local.Open(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	for _, w := range cat.Warnings() {
		logger.Warn("dataset warning", map[string]any{"source": cat.Source(), "warning": w})
	}
	logger.Debug("dataset loaded", map[string]any{
		"source":  cat.Source(),
		"schemas": len(cat.Schemas()),
	})
	return cat, nil
}

// outputFormat resolves a --format flag against the configured default.
func outputFormat(flag string) (string, error) {
	format := flag
	if format == "" {
		format = cfg.Output.Format
	}
	switch format {
	case "text", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", format)
	}
}
