// Package version holds build metadata, overridden at link time with
// -ldflags "-X github.com/ndewijer/stock-portfolio-tracker/internal/version.Version=...".
package version

// Version is the application version.
var Version = "dev"
