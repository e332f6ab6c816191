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

package resources

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sidbus/sidbus/curated"
)

// the name of the portable resource directory. also used, without the leading
// dot, as the name of the directory in the user's configuration directory
const portablePath = ".sidbus"

// basePath returns the directory that all resources are relative to
func basePath() (string, error) {
	if fi, err := os.Stat(portablePath); err == nil && fi.IsDir() {
		return portablePath, nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", curated.Errorf("resources: %v", err)
	}

	return filepath.Join(cfg, strings.TrimPrefix(portablePath, ".")), nil
}

// JoinPath prepends the supplied path with the base path. See the package
// documentation for details.
//
// The function creates all folders necessary to reach the end of sub-path. It
// does not otherwise touch or create the file.
func JoinPath(path ...string) (string, error) {
	b, err := basePath()
	if err != nil {
		return "", err
	}

	p := filepath.Join(path...)

	// do not prepend base path if it is already present
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", curated.Errorf("resources: %v", err)
	}

	return p, nil
}
