// Package embedded provides the HTML templates compiled into the binary.
package embedded

import (
	"embed"
)

// Templates holds the page templates served by internal/server:
// - templates/layout.html  - shared page chrome
// - templates/dashboard.html - holdings and fund summary
// - templates/strategy.html  - one holding's recommendation and trades
//
//go:embed templates
var Templates embed.FS
