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

// Package serial implements a pins.Bus that forwards every line change to a
// microcontroller over a serial link. The microcontroller is expected to run
// firmware that sets its own pins accordingly.
//
// Each operation is sent as a two byte frame. The first byte is the command
// and the second byte is the argument:
//
//	'O' pin		configure pin as an output
//	'H' pin		set pin high
//	'L' pin		set pin low
//	'D' micros	wait for the number of microseconds (maximum 255)
//
// Frames are buffered and sent when the multiplexer calls Flush() at the end
// of every write cycle.
package serial
