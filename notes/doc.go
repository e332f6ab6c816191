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

// Package notes converts between musical pitch and the value of the
// frequency registers of a SID voice.
//
// The oscillator of a voice advances by the value of the frequency register
// on every cycle of the chip clock, with the waveform repeating every 2^24
// steps. The register value for a frequency therefore depends on the clock,
// which differs between PAL and NTSC machines.
package notes
