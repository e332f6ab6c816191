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

// Package pins describes the physical lines of the bus that connects the SID
// chips to the host: five address lines, eight data lines and one chip
// select line for each chip.
//
// The Bus interface is the only thing the multiplexer needs to drive the
// lines. Implementations exist for a serial link to a microcontroller
// (package serial) and for recording the line levels in memory (package
// capture).
package pins
