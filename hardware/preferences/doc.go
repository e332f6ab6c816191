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

// Package preferences collates the preference values used by the chip array
// and the bus. Values are stored in the global preferences file (see the
// resources package) and can be overridden from the command line (see the
// prefs package).
//
//	array.chips	number of chips on the bus (1 to 6)
//	array.overflow	what to do when the write queue is full (block or reject)
//	bus.pulse	how long a chip select is held low, in microseconds
//	bus.rate	how often the bus is ticked, in Hz
//	bus.pins	pin map (see pins.ParseMap())
//	serial.device	serial device of the pin bridge
//	serial.baud	baud rate of the pin bridge
package preferences
