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

// Package hardware is the base package for the chip array and its bus. The
// sub-packages are layered:
//
//	sid         the register model of a single chip
//	queue       the bounded queue of register writes
//	array       the chips, their shared queue and the bus multiplexer
//	pins        the pin interfaces and the pin map used by the multiplexer
//	preferences the preferences of the array and the bus
//
// Implementations of the pins.Bus interface are in the sub-packages of pins.
package hardware
