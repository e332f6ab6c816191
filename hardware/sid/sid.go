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
	"github.com/sidbus/sidbus/curated"
)

// Sentinal error patterns. Use curated.Is() to test for them.
const (
	// field name, value, maximum value
	ValueOutOfRange = "sid: %s: value out of range (%d > %d)"

	// field name, value
	InvalidBits = "sid: %s: invalid bits (%#02x)"

	// voice number
	InvalidVoice = "sid: voice index out of range (%d)"
)

// SID is the shadow state of the write-only registers of a single chip.
type SID struct {
	chip int
	sink Sink

	// shadow copy of the write-only registers
	regs [NumWriteRegisters]uint8

	voices [NumVoices]Voice
	filter Filter
	misc   Misc
}

// NewSID is the preferred method of initialisation for the SID type. The chip
// argument is passed to the sink with every write. A nil sink is allowed, in
// which case the register state is kept but writes go nowhere.
func NewSID(chip int, sink Sink) *SID {
	if sink == nil {
		sink = noSink{}
	}

	s := &SID{
		chip: chip,
		sink: sink,
	}

	for i := range s.voices {
		s.voices[i] = Voice{sid: s, idx: i}
	}
	s.filter = Filter{sid: s}

	return s
}

func (s *SID) String() string {
	return s.Dump()
}

// Chip returns the chip index the SID was created with.
func (s *SID) Chip() int {
	return s.chip
}

// Voice returns the numbered voice. Voices are numbered from zero.
func (s *SID) Voice(voice int) (*Voice, error) {
	if voice < 0 || voice >= NumVoices {
		return nil, curated.Errorf(InvalidVoice, voice)
	}
	return &s.voices[voice], nil
}

// Filter returns the filter and volume section of the chip.
func (s *SID) Filter() *Filter {
	return &s.filter
}

// Misc returns the read-only registers of the chip.
func (s *SID) Misc() *Misc {
	return &s.misc
}

// Registers returns a copy of the shadow state of every write-only register.
func (s *SID) Registers() [NumWriteRegisters]uint8 {
	return s.regs
}

// Refresh sends every write-only register to the sink regardless of whether it
// has changed. Useful to bring the real chip in line with the shadow state
// after power-on.
func (s *SID) Refresh() {
	for r := range s.regs {
		s.sink.WriteRegister(s.chip, Register(r), s.regs[r])
	}
}

// Reset sets every write-only register to zero and sends all of them to the
// sink.
func (s *SID) Reset() {
	s.regs = [NumWriteRegisters]uint8{}
	s.Refresh()
}

// write changes a single register and sends it to the sink if the value is
// different to what was there before.
func (s *SID) write(reg Register, v uint8) {
	if s.regs[reg] == v {
		return
	}
	s.regs[reg] = v
	s.sink.WriteRegister(s.chip, reg, v)
}

// writePair changes two registers and sends both of them, in the order given,
// if either value is different.
func (s *SID) writePair(regA Register, a uint8, regB Register, b uint8) {
	if s.regs[regA] == a && s.regs[regB] == b {
		return
	}
	s.regs[regA] = a
	s.regs[regB] = b
	s.sink.WriteRegister(s.chip, regA, a)
	s.sink.WriteRegister(s.chip, regB, b)
}

// setBits changes the bits in mask to the value of on
func (s *SID) setBits(reg Register, mask uint8, on bool) {
	v := s.regs[reg] &^ mask
	if on {
		v |= mask
	}
	s.write(reg, v)
}

// checkNibble returns an error if v does not fit in four bits
func checkNibble(field string, v uint8) error {
	if v > 0x0f {
		return curated.Errorf(ValueOutOfRange, field, v, 0x0f)
	}
	return nil
}
