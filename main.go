package main

import (
	"runtime/debug"

	"github.com/aibootcamp/submit/cmd"
)

// Release builds override these through ldflags, e.g.
// go build -ldflags "-X main.version=1.2.0 -X main.commit=abc123 -X main.date=2026-08-30"
var (
	version = "1.2.0"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// go install builds carry no ldflags; fall back to the VCS revision
	// recorded in the build info.
	if commit == "none" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					commit = s.Value[:7]
					break
				}
			}
		}
	}
}

func main() {
	cmd.Execute(version, commit, date)
}
