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
	"fmt"
)

// Register is the local address of a register in a single SID chip.
type Register uint8

// The number of registers of each type in a single chip.
const (
	NumVoices          = 3
	NumVoiceRegisters  = 7
	NumFilterRegisters = 4
	NumWriteRegisters  = NumVoices*NumVoiceRegisters + NumFilterRegisters
	NumReadRegisters   = 4
	NumRegisters       = NumWriteRegisters + NumReadRegisters
)

// MaxChips is the largest number of chips that can share a bus.
const MaxChips = 6

// Voice registers. The values are for the first voice. The registers of the
// second and third voices are offset by NumVoiceRegisters.
const (
	FreqLo Register = iota
	FreqHi
	PWLo
	PWHi
	Ctrl
	AD
	SR
)

// Filter and volume registers.
const (
	FCLo Register = NumVoices*NumVoiceRegisters + iota
	FCHi
	ResFilt
	ModeVol
)

// Read-only registers.
const (
	PotX Register = NumWriteRegisters + iota
	PotY
	Osc3
	Env3
)

var voiceRegisterNames = [NumVoiceRegisters]string{
	"FREQLO", "FREQHI", "PWLO", "PWHI", "CTRL", "AD", "SR",
}

var otherRegisterNames = [NumFilterRegisters + NumReadRegisters]string{
	"FCLO", "FCHI", "RESFILT", "MODEVOL", "POTX", "POTY", "OSC3", "ENV3",
}

func (reg Register) String() string {
	if reg < NumVoices*NumVoiceRegisters {
		return fmt.Sprintf("%s%d", voiceRegisterNames[reg%NumVoiceRegisters], reg/NumVoiceRegisters+1)
	}
	if reg < NumRegisters {
		return otherRegisterNames[reg-NumVoices*NumVoiceRegisters]
	}
	return fmt.Sprintf("unknown register (%#02x)", uint8(reg))
}

// Writable returns true if the register can be written to.
func (reg Register) Writable() bool {
	return reg < NumWriteRegisters
}

// VoiceRegister returns the local address of register reg for the numbered
// voice. The reg argument should be one of FreqLo to SR.
func VoiceRegister(voice int, reg Register) Register {
	return Register(voice*NumVoiceRegisters) + reg
}

// GlobalAddress flattens the chip index and local register address into a
// single address space of NumRegisters addresses per chip.
func GlobalAddress(chip int, reg Register) int {
	return chip*NumRegisters + int(reg)
}

// Write is a single register write destined for the bus.
type Write struct {
	Chip     int
	Register Register
	Value    uint8
}

func (w Write) String() string {
	return fmt.Sprintf("sid%d %s=%#02x", w.Chip, w.Register, w.Value)
}

// Global returns the address of the write in the flattened address space. See
// GlobalAddress().
func (w Write) Global() int {
	return GlobalAddress(w.Chip, w.Register)
}

// Sink implementations receive every register write produced by a SID. The
// WriteRegister() function is called synchronously from inside the setter
// functions and must not block the caller for long.
type Sink interface {
	WriteRegister(chip int, reg Register, value uint8)
}

// SinkFunc is an adaptor allowing an ordinary function to be used as a Sink.
type SinkFunc func(chip int, reg Register, value uint8)

// WriteRegister implements the Sink interface.
func (f SinkFunc) WriteRegister(chip int, reg Register, value uint8) {
	f(chip, reg, value)
}

// the sink used when no sink has been specified
type noSink struct{}

func (noSink) WriteRegister(_ int, _ Register, _ uint8) {}
