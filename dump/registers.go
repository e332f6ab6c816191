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

package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sidbus/sidbus/hardware/array"
	"github.com/sidbus/sidbus/hardware/sid"
)

type styles struct {
	header  lipgloss.Style
	address lipgloss.Style
	name    lipgloss.Style
	zero    lipgloss.Style
	value   lipgloss.Style
}

// column widths
const (
	addressWidth = 5
	nameWidth    = 9
	valueWidth   = 6
)

func newStyles(styled bool) styles {
	s := styles{
		header:  lipgloss.NewStyle().Width(valueWidth),
		address: lipgloss.NewStyle().Width(addressWidth),
		name:    lipgloss.NewStyle().Width(nameWidth),
		zero:    lipgloss.NewStyle().Width(valueWidth),
		value:   lipgloss.NewStyle().Width(valueWidth),
	}
	if styled {
		s.header = s.header.Bold(true).Underline(true)
		s.address = s.address.Faint(true)
		s.name = s.name.Foreground(lipgloss.ANSIColor(6))
		s.zero = s.zero.Faint(true)
		s.value = s.value.Bold(true).Foreground(lipgloss.ANSIColor(3))
	}
	return s
}

// Registers writes a table of every write-only register of every chip in the
// array. Colours and text attributes are only used if styled is true.
func Registers(w io.Writer, arr *array.Array, styled bool) error {
	st := newStyles(styled)

	regs := make([][sid.NumWriteRegisters]uint8, arr.NumChips())
	for i := range regs {
		c, err := arr.Chip(i)
		if err != nil {
			return err
		}
		regs[i] = c.Registers()
	}

	b := strings.Builder{}

	b.WriteString(st.address.Render(""))
	b.WriteString(st.name.Render(""))
	for i := range regs {
		b.WriteString(st.header.Render(fmt.Sprintf("sid%d", i)))
	}
	b.WriteString("\n")

	for r := sid.Register(0); r < sid.NumWriteRegisters; r++ {
		b.WriteString(st.address.Render(fmt.Sprintf("$%02x", uint8(r))))
		b.WriteString(st.name.Render(r.String()))
		for i := range regs {
			v := regs[i][r]
			if v == 0 {
				b.WriteString(st.zero.Render(fmt.Sprintf("%02x", v)))
			} else {
				b.WriteString(st.value.Render(fmt.Sprintf("%02x", v)))
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
