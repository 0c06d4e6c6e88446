// SPDX-License-Identifier: MIT

// Package version reports build information set through -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Build information, overridden at link time, e.g.
// -ldflags "-X github.com/katalvlaran/varbox/version.Version=v1.2.0".
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info is the build information of the running binary.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders a one-line summary.
func (i Info) String() string {
	return fmt.Sprintf("varbox %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}

	return i.CommitHash
}
