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

// Package sid models the write side of the registers of a single MOS
// 6581/8580 SID chip.
//
// The chip has 29 registers. The first 25 are write-only and control the
// three voices and the filter/volume section. The last four are read-only
// and are not written to by this package.
//
//	$00-$06	voice 1: FREQLO FREQHI PWLO PWHI CTRL AD SR
//	$07-$0d	voice 2
//	$0e-$14	voice 3
//	$15	FCLO	cutoff frequency, bits 0-2
//	$16	FCHI	cutoff frequency, bits 3-10
//	$17	RESFILT	resonance (upper nibble), filter routing (lower nibble)
//	$18	MODEVOL	filter mode/voice 3 off (upper nibble), volume (lower nibble)
//	$19-$1c	POTX POTY OSC3 ENV3 (read-only)
//
// The SID type keeps a shadow copy of every write-only register. The Voice
// and Filter types are views onto that shadow state and expose the
// individual fields of each register with typed accessors. Every setter
// validates its argument, changes only the bits belonging to its field and
// then tells the Sink about the register(s) that need writing to the real
// chip.
//
// Setters that leave the register(s) they touch unchanged do not call the
// Sink. Fields that span two registers (frequency, pulse width, cutoff and
// the combined ADSR value) always send both registers, in a fixed order: low
// byte before high byte and AD before SR.
//
// Values outside the width of a field are rejected with a curated error. The
// value is never clamped.
//
// A SID is not safe for concurrent mutation. It is intended to be driven from
// a single foreground context with the Sink handing writes over to whatever
// context drives the bus.
package sid
