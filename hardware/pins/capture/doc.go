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

// Package capture implements a pins.Bus that records every operation in
// memory instead of driving real hardware.
//
// The recording can be decoded back into the register writes it represents
// with Decode(), which is how the multiplexer is tested, or it can be saved as
// a WAV file with one channel per bus line. Opening the WAV file in an audio
// editor gives a view of the bus similar to that of a logic analyser.
package capture
