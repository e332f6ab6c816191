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

	"github.com/sidbus/sidbus/curated"
)

// Routing bits in the lower half of the RESFILT register.
const (
	routeVoice1   = 0x01
	routeVoice2   = 0x02
	routeVoice3   = 0x04
	routeExternal = 0x08
	routingMask   = 0x0f
)

// the voice 3 off bit in the MODEVOL register
const voice3Off = 0x80

// Filter is a view onto the filter and volume registers of a SID.
type Filter struct {
	sid *SID
}

func (f *Filter) String() string {
	return fmt.Sprintf("cutoff=%03x res=%x route=%x mode=%s vol=%x",
		f.Cutoff11(), f.Resonance(), f.Routing(), f.Mode(), f.Volume())
}

// Cutoff returns the cutoff frequency scaled to 16 bits. The lowest five bits
// are always zero.
func (f *Filter) Cutoff() uint16 {
	return uint16(f.sid.regs[FCHi])<<8 | uint16(f.sid.regs[FCLo]&0x07)<<5
}

// SetCutoff sets the cutoff frequency from a value scaled to 16 bits. The
// lowest five bits of the value are lost. Both cutoff registers are written,
// low byte first.
func (f *Filter) SetCutoff(cutoff uint16) {
	f.sid.writePair(FCLo, uint8(cutoff>>5)&0x07, FCHi, uint8(cutoff>>8))
}

// Cutoff11 returns the unscaled 11 bit cutoff frequency.
func (f *Filter) Cutoff11() uint16 {
	return f.Cutoff() >> 5
}

// SetCutoff11 sets the unscaled 11 bit cutoff frequency.
func (f *Filter) SetCutoff11(cutoff uint16) error {
	if cutoff > 0x07ff {
		return curated.Errorf(ValueOutOfRange, "cutoff", cutoff, 0x07ff)
	}
	f.SetCutoff(cutoff << 5)
	return nil
}

// Resonance returns the resonance value (0 to 15).
func (f *Filter) Resonance() uint8 {
	return f.sid.regs[ResFilt] >> 4
}

// SetResonance sets the resonance value (0 to 15). The filter routing is
// preserved.
func (f *Filter) SetResonance(res uint8) error {
	if err := checkNibble("resonance", res); err != nil {
		return err
	}
	f.sid.write(ResFilt, f.sid.regs[ResFilt]&routingMask|res<<4)
	return nil
}

func routeBit(voice int) (uint8, error) {
	switch voice {
	case 0:
		return routeVoice1, nil
	case 1:
		return routeVoice2, nil
	case 2:
		return routeVoice3, nil
	}
	return 0, curated.Errorf(InvalidVoice, voice)
}

// Routed returns true if the numbered voice is sent through the filter.
func (f *Filter) Routed(voice int) (bool, error) {
	b, err := routeBit(voice)
	if err != nil {
		return false, err
	}
	return f.sid.regs[ResFilt]&b == b, nil
}

// SetRoute sends the numbered voice through the filter or around it.
func (f *Filter) SetRoute(voice int, on bool) error {
	b, err := routeBit(voice)
	if err != nil {
		return err
	}
	f.sid.setBits(ResFilt, b, on)
	return nil
}

// External returns true if the external audio input is sent through the
// filter.
func (f *Filter) External() bool {
	return f.sid.regs[ResFilt]&routeExternal == routeExternal
}

// SetExternal sends the external audio input through the filter or around it.
func (f *Filter) SetExternal(on bool) {
	f.sid.setBits(ResFilt, routeExternal, on)
}

// Routing returns the lower nibble of the RESFILT register.
func (f *Filter) Routing() uint8 {
	return f.sid.regs[ResFilt] & routingMask
}

// SetRouting replaces all four routing bits at once. The resonance value is
// preserved.
func (f *Filter) SetRouting(routing uint8) error {
	if routing&^routingMask != 0 {
		return curated.Errorf(InvalidBits, "routing", routing)
	}
	f.sid.write(ResFilt, f.sid.regs[ResFilt]&^routingMask|routing)
	return nil
}

// Mode returns the selected filter modes.
func (f *Filter) Mode() FilterMode {
	return FilterMode(f.sid.regs[ModeVol]) & filterModeMask
}

// SetMode replaces the filter mode selection. The volume and the voice 3 off
// bit are preserved.
func (f *Filter) SetMode(m FilterMode) error {
	if m&^filterModeMask != 0 {
		return curated.Errorf(InvalidBits, "filter mode", uint8(m))
	}
	f.sid.write(ModeVol, f.sid.regs[ModeVol]&^uint8(filterModeMask)|uint8(m))
	return nil
}

// SetModeFlag selects or deselects a single filter mode, leaving the other
// modes as they are.
func (f *Filter) SetModeFlag(m FilterMode, on bool) error {
	if m&^filterModeMask != 0 || !onlyOneBit(uint8(m)) {
		return curated.Errorf(InvalidBits, "filter mode", uint8(m))
	}
	f.sid.setBits(ModeVol, uint8(m), on)
	return nil
}

// Voice3Off returns true if voice 3 is disconnected from the audio output.
func (f *Filter) Voice3Off() bool {
	return f.sid.regs[ModeVol]&voice3Off == voice3Off
}

// SetVoice3Off disconnects voice 3 from the audio output. The voice still
// runs and can be used as a modulation source.
func (f *Filter) SetVoice3Off(on bool) {
	f.sid.setBits(ModeVol, voice3Off, on)
}

// Volume returns the master volume (0 to 15).
func (f *Filter) Volume() uint8 {
	return f.sid.regs[ModeVol] & 0x0f
}

// SetVolume sets the master volume (0 to 15).
func (f *Filter) SetVolume(vol uint8) error {
	if err := checkNibble("volume", vol); err != nil {
		return err
	}
	f.sid.write(ModeVol, f.sid.regs[ModeVol]&0xf0|vol)
	return nil
}
