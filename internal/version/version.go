// Package version reports the anydoor build.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags at build time:
//
//	go build -ldflags "-X github.com/soyeahso/anydoor/internal/version.Version=1.0.0
//	  -X github.com/soyeahso/anydoor/internal/version.Commit=abc123
//	  -X github.com/soyeahso/anydoor/internal/version.Date=2026-01-01"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Current returns the ldflags version, or the module version recorded by
// `go install` when no version was stamped.
func Current() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}

// UserAgent identifies anydoor to the any_door server.
func UserAgent() string {
	return "anydoor/" + Current()
}

// Info returns a formatted version string.
func Info() string {
	return fmt.Sprintf("anydoor %s (commit: %s, built: %s, %s/%s)",
		Current(), short(Commit), Date, runtime.GOOS, runtime.GOARCH)
}

func short(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
