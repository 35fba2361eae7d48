// Package version carries build metadata injected with -ldflags.
package version

// Overridden at build time:
//
//	go build -ldflags "-X github.com/doeshing/copywriter-go/internal/version.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
