package validate

import (
	"fmt"
	"net"

	"github.com/kaitj/nmind-proceedings/types"
)

var (
	knownLogLevels    = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	knownLogFormats   = map[string]bool{"console": true, "json": true}
	knownOutputFormat = map[string]bool{"text": true, "json": true}
)

// ValidateConfig checks a Config for errors and warnings.
func ValidateConfig(cfg *types.Config) *ValidationResult {
	r := &ValidationResult{}

	if !knownLogLevels[cfg.Log.Level] {
		r.Errors = append(r.Errors, fmt.Sprintf("log.level %q must be one of: debug, info, warn, error", cfg.Log.Level))
	}
	if !knownLogFormats[cfg.Log.Format] {
		r.Errors = append(r.Errors, fmt.Sprintf("log.format %q must be one of: console, json", cfg.Log.Format))
	}
	if !knownOutputFormat[cfg.Output.Format] {
		r.Errors = append(r.Errors, fmt.Sprintf("output.format %q must be one of: text, json", cfg.Output.Format))
	}

	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("server.addr %q: %v", cfg.Server.Addr, err))
	}
	if cfg.Server.CORSOrigin == "*" {
		r.Warnings = append(r.Warnings, "server.cors_origin is \"*\"; any site can query the API")
	}

	return r
}
