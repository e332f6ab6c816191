// This file is part of sidbus.
//
// sidbus is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sidbus is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with sidbus.  If not, see <https://www.gnu.org/licenses/>.

// Package version reports the version of the program. The version number is
// set when building a release:
//
//	go build -ldflags "-X github.com/sidbus/sidbus/version.number=v0.1.0" .
//
// Without a version number the vcs information embedded by the Go toolchain
// is used instead.
package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// ApplicationName is the name to use when referring to the program.
const ApplicationName = "sidbus"

// set by the linker for release builds
var number string

type info struct {
	version  string
	revision string
}

var build = sync.OnceValue(func() info {
	var vcs bool
	var inf info

	if bi, ok := debug.ReadBuildInfo(); ok {
		var modified bool
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				inf.revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if inf.revision != "" && modified {
			inf.revision = fmt.Sprintf("%s+dirty", inf.revision)
		}
	}

	if inf.revision == "" {
		inf.revision = "no revision information"
	}

	switch {
	case number != "":
		inf.version = number
	case vcs:
		inf.version = "unreleased"
	default:
		// "go run ." or "go test"
		inf.version = "local"
	}

	return inf
})

// Version returns the version string, the vcs revision and whether the build
// is a numbered release.
func Version() (string, string, bool) {
	inf := build()
	return inf.version, inf.revision, number != ""
}

// String returns a single line describing the build.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}
