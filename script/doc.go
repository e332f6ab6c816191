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

// Package script runs Lua scripts that program the chips of an Array. Scripts
// run in the foreground context, the same as any other code that calls the
// setters of the sid package. They are useful for trying out sounds without
// writing a Go program.
//
// A global table named sid is made available to the script. Chips and voices
// are numbered from one, as is normal in Lua.
//
//	sid.chips()					number of chips in the array
//	sid.frequency(chip, voice, value)		16 bit frequency register
//	sid.note(chip, voice, hz)			frequency in Hz
//	sid.pulsewidth(chip, voice, value)		12 bit pulse width
//	sid.waveform(chip, voice, "square|triangle")	waveforms, or "none"
//	sid.gate(chip, voice, bool)
//	sid.control(chip, voice, "sync|ringmod", bool)	gate, sync, ringmod, test
//	sid.envelope(chip, voice, a, d, s, r)
//	sid.cutoff(chip, value)				11 bit cutoff frequency
//	sid.resonance(chip, value)
//	sid.route(chip, voice, bool)
//	sid.external(chip, bool)			route external input
//	sid.mode(chip, "lowpass|bandpass")		filter modes, or "none"
//	sid.modeflag(chip, "highpass", bool)		one filter mode
//	sid.voice3off(chip, bool)
//	sid.volume(chip, value)
//	sid.refresh()					queue every register of every chip
//	sid.sleep(milliseconds)
//	sid.log(message)
//
// Invalid arguments raise a Lua error, which stops the script.
package script
