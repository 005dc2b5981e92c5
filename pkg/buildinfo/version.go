// Package buildinfo reports which build of chaosgame is running.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/chaosgame/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/chaosgame/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/chaosgame/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds, such as go install, fall back to the module version and
// VCS settings the Go toolchain embeds in the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Stamped by ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information served by the API.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty,omitempty"`
}

var embedded = sync.OnceValue(func() Info {
	var info Info
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.time":
			info.Date = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
})

// Get returns the stamped values, filling unstamped ones from the binary's
// embedded build information.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	fallback := embedded()
	if info.Version == "dev" && fallback.Version != "" {
		info.Version = fallback.Version
	}
	if info.Commit == "none" && fallback.Commit != "" {
		info.Commit = fallback.Commit
		info.Dirty = fallback.Dirty
	}
	if info.Date == "unknown" && fallback.Date != "" {
		info.Date = fallback.Date
	}
	return info
}

func (i Info) String() string {
	commit := i.Commit
	if i.Dirty {
		commit += " (modified)"
	}
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, commit, i.Date)
}

// String is Get().String().
func String() string { return Get().String() }

// Template is the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}

// Server is the value of the Server response header.
func Server() string {
	return "chaosgame/" + Get().Version
}
