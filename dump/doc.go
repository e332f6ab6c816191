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

// Package dump writes human readable views of the state of a chip array.
//
// Registers() writes a table of the shadow registers of every chip, one row
// per register and one column per chip. Structure() writes a graphviz
// description of any value, which is useful for inspecting how the array and
// its chips are linked together.
package dump
