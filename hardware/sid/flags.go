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

package sid

import (
	"strings"
)

// Waveform is the upper nibble of the CTRL register of a voice. More than one
// waveform can be selected at once.
type Waveform uint8

// List of valid Waveform bits.
const (
	Triangle Waveform = 0x10
	Sawtooth Waveform = 0x20
	Square   Waveform = 0x40
	Noise    Waveform = 0x80

	waveformMask Waveform = 0xf0
)

func (w Waveform) String() string {
	return flagString(uint8(w), []flagName{
		{uint8(Noise), "noise"},
		{uint8(Square), "square"},
		{uint8(Sawtooth), "sawtooth"},
		{uint8(Triangle), "triangle"},
	})
}

// Control is the lower nibble of the CTRL register of a voice.
type Control uint8

// List of valid Control bits.
const (
	Gate    Control = 0x01
	Sync    Control = 0x02
	RingMod Control = 0x04
	Test    Control = 0x08

	controlMask Control = 0x0f
)

func (c Control) String() string {
	return flagString(uint8(c), []flagName{
		{uint8(Test), "test"},
		{uint8(RingMod), "ringmod"},
		{uint8(Sync), "sync"},
		{uint8(Gate), "gate"},
	})
}

// FilterMode is the filter mode part of the MODEVOL register. More than one
// mode can be selected at once.
type FilterMode uint8

// List of valid FilterMode bits.
const (
	LowPass  FilterMode = 0x10
	BandPass FilterMode = 0x20
	HighPass FilterMode = 0x40

	filterModeMask FilterMode = 0x70
)

func (m FilterMode) String() string {
	return flagString(uint8(m), []flagName{
		{uint8(LowPass), "lowpass"},
		{uint8(BandPass), "bandpass"},
		{uint8(HighPass), "highpass"},
	})
}

type flagName struct {
	bit  uint8
	name string
}

func flagString(v uint8, names []flagName) string {
	s := strings.Builder{}
	for _, n := range names {
		if v&n.bit == n.bit {
			if s.Len() > 0 {
				s.WriteString("|")
			}
			s.WriteString(n.name)
		}
	}
	if s.Len() == 0 {
		return "none"
	}
	return s.String()
}

// onlyOneBit returns true if exactly one bit is set in v
func onlyOneBit(v uint8) bool {
	return v != 0 && v&(v-1) == 0
}
