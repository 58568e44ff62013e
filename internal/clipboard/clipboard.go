// Package clipboard wraps system clipboard access for translation
// results. Clipboard failures never fail the translation itself; callers
// report them and move on.
package clipboard

import (
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/ezixen/lzip/internal/config"
	"github.com/ezixen/lzip/internal/errors"
)

// Copy places text on the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return errors.NewClipboardUnavailable(nil)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.NewClipboardUnavailable(err)
	}
	return nil
}

// ShouldAutoCopy reports whether translation results should be copied
// automatically. The LZIP_AUTO_COPY environment variable overrides
// config; "0", "false", "no" and "off" disable, anything else enables.
func ShouldAutoCopy(cfg *config.Config) bool {
	if v, ok := os.LookupEnv("LZIP_AUTO_COPY"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "0", "false", "no", "off":
			return false
		default:
			return true
		}
	}
	return cfg == nil || !cfg.DisableAutoCopy
}
