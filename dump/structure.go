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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// Structure writes a graphviz (dot) description of the value to the io.Writer.
// The value should be a pointer. For example:
//
//	dump.Structure(f, arr)
//
// and then:
//
//	dot -Tsvg structure.dot > structure.svg
func Structure(w io.Writer, v any) {
	memviz.Map(w, v)
}
