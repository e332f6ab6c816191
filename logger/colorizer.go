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

package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colorizer applies basic coloring rules to logging output. The first line of
// each write is printed normally and any following lines are dimmed.
type Colorizer struct {
	out  io.Writer
	dim  lipgloss.Style
	main lipgloss.Style
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{
		out:  out,
		main: lipgloss.NewStyle().Bold(true),
		dim:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.ANSIColor(1)),
	}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	l := strings.Split(strings.TrimSpace(string(p)), "\n")

	_, err := io.WriteString(c.out, c.main.Render(l[0])+"\n")
	if err != nil {
		return 0, err
	}

	for _, s := range l[1:] {
		_, err := io.WriteString(c.out, c.dim.Render(s)+"\n")
		if err != nil {
			return 0, err
		}
	}

	return len(p), nil
}
