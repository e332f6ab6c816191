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

package sid

import (
	"fmt"
	"strings"
)

// Dump returns a multi-line description of the chip state. One line per voice
// followed by a line for the filter section.
func (s *SID) Dump() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("sid%d\n", s.chip))
	for i := range s.voices {
		b.WriteString(fmt.Sprintf("  voice %d: %s\n", i+1, s.voices[i].String()))
	}
	b.WriteString(fmt.Sprintf("  filter:  %s", s.filter.String()))
	return b.String()
}
