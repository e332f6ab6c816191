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

// Voice is a view onto the seven registers of one of the three voices of a
// SID.
type Voice struct {
	sid *SID
	idx int
}

func (v *Voice) String() string {
	return fmt.Sprintf("freq=%04x pw=%03x wave=%s ctrl=%s adsr=%04x",
		v.Frequency(), v.PulseWidth12(), v.Waveform(), v.Control(), v.ADSR())
}

// Index returns the voice number, counting from zero.
func (v *Voice) Index() int {
	return v.idx
}

// Register returns the local chip address of the voice register. The reg
// argument should be one of FreqLo to SR.
func (v *Voice) Register(reg Register) Register {
	return VoiceRegister(v.idx, reg)
}

func (v *Voice) get(reg Register) uint8 {
	return v.sid.regs[v.Register(reg)]
}

// Frequency returns the 16 bit frequency value.
func (v *Voice) Frequency() uint16 {
	return uint16(v.get(FreqHi))<<8 | uint16(v.get(FreqLo))
}

// SetFrequency sets the 16 bit frequency value. Both frequency registers are
// written, low byte first.
func (v *Voice) SetFrequency(freq uint16) {
	v.sid.writePair(v.Register(FreqLo), uint8(freq), v.Register(FreqHi), uint8(freq>>8))
}

// PulseWidth returns the pulse width scaled to 16 bits. The lowest four bits
// are always zero.
func (v *Voice) PulseWidth() uint16 {
	return uint16(v.get(PWHi))<<12 | uint16(v.get(PWLo))<<4
}

// SetPulseWidth sets the pulse width from a value scaled to 16 bits. The lowest
// four bits of the value are lost. Both pulse width registers are written, low
// byte first.
func (v *Voice) SetPulseWidth(pw uint16) {
	v.sid.writePair(v.Register(PWLo), uint8(pw>>4), v.Register(PWHi), uint8(pw>>12))
}

// PulseWidth12 returns the unscaled 12 bit pulse width.
func (v *Voice) PulseWidth12() uint16 {
	return v.PulseWidth() >> 4
}

// SetPulseWidth12 sets the unscaled 12 bit pulse width.
func (v *Voice) SetPulseWidth12(pw uint16) error {
	if pw > 0x0fff {
		return curated.Errorf(ValueOutOfRange, "pulse width", pw, 0x0fff)
	}
	v.SetPulseWidth(pw << 4)
	return nil
}

// Waveform returns the selected waveforms.
func (v *Voice) Waveform() Waveform {
	return Waveform(v.get(Ctrl)) & waveformMask
}

// SetWaveform replaces the waveform selection. The control bits in the lower
// half of the register are preserved.
func (v *Voice) SetWaveform(w Waveform) error {
	if w&^waveformMask != 0 {
		return curated.Errorf(InvalidBits, "waveform", uint8(w))
	}
	reg := v.Register(Ctrl)
	v.sid.write(reg, v.sid.regs[reg]&uint8(controlMask)|uint8(w))
	return nil
}

func (v *Voice) setWaveform(w Waveform, on bool) {
	v.sid.setBits(v.Register(Ctrl), uint8(w), on)
}

// Noise returns true if the noise waveform is selected.
func (v *Voice) Noise() bool {
	return v.Waveform()&Noise == Noise
}

// SetNoise selects or deselects the noise waveform.
func (v *Voice) SetNoise(on bool) {
	v.setWaveform(Noise, on)
}

// Square returns true if the square (pulse) waveform is selected.
func (v *Voice) Square() bool {
	return v.Waveform()&Square == Square
}

// SetSquare selects or deselects the square (pulse) waveform.
func (v *Voice) SetSquare(on bool) {
	v.setWaveform(Square, on)
}

// Sawtooth returns true if the sawtooth waveform is selected.
func (v *Voice) Sawtooth() bool {
	return v.Waveform()&Sawtooth == Sawtooth
}

// SetSawtooth selects or deselects the sawtooth waveform.
func (v *Voice) SetSawtooth(on bool) {
	v.setWaveform(Sawtooth, on)
}

// Triangle returns true if the triangle waveform is selected.
func (v *Voice) Triangle() bool {
	return v.Waveform()&Triangle == Triangle
}

// SetTriangle selects or deselects the triangle waveform.
func (v *Voice) SetTriangle(on bool) {
	v.setWaveform(Triangle, on)
}

// Control returns the control bits.
func (v *Voice) Control() Control {
	return Control(v.get(Ctrl)) & controlMask
}

// SetControl replaces the control bits. The waveform selection in the upper
// half of the register is preserved.
func (v *Voice) SetControl(c Control) error {
	if c&^controlMask != 0 {
		return curated.Errorf(InvalidBits, "control", uint8(c))
	}
	reg := v.Register(Ctrl)
	v.sid.write(reg, v.sid.regs[reg]&uint8(waveformMask)|uint8(c))
	return nil
}

func (v *Voice) setControl(c Control, on bool) {
	v.sid.setBits(v.Register(Ctrl), uint8(c), on)
}

// Test returns the state of the test bit.
func (v *Voice) Test() bool {
	return v.Control()&Test == Test
}

// SetTest sets or clears the test bit.
func (v *Voice) SetTest(on bool) {
	v.setControl(Test, on)
}

// RingMod returns the state of the ring modulation bit.
func (v *Voice) RingMod() bool {
	return v.Control()&RingMod == RingMod
}

// SetRingMod sets or clears the ring modulation bit.
func (v *Voice) SetRingMod(on bool) {
	v.setControl(RingMod, on)
}

// Sync returns the state of the sync bit.
func (v *Voice) Sync() bool {
	return v.Control()&Sync == Sync
}

// SetSync sets or clears the sync bit.
func (v *Voice) SetSync(on bool) {
	v.setControl(Sync, on)
}

// Gate returns the state of the gate bit.
func (v *Voice) Gate() bool {
	return v.Control()&Gate == Gate
}

// SetGate sets or clears the gate bit. Setting the gate starts the attack
// phase of the envelope. Clearing it starts the release phase.
func (v *Voice) SetGate(on bool) {
	v.setControl(Gate, on)
}

// AD returns the raw attack/decay register.
func (v *Voice) AD() uint8 {
	return v.get(AD)
}

// SetAD sets the raw attack/decay register.
func (v *Voice) SetAD(ad uint8) {
	v.sid.write(v.Register(AD), ad)
}

// SR returns the raw sustain/release register.
func (v *Voice) SR() uint8 {
	return v.get(SR)
}

// SetSR sets the raw sustain/release register.
func (v *Voice) SetSR(sr uint8) {
	v.sid.write(v.Register(SR), sr)
}

// ADSR returns the AD register in the upper byte and the SR register in the
// lower byte.
func (v *Voice) ADSR() uint16 {
	return uint16(v.AD())<<8 | uint16(v.SR())
}

// SetADSR sets both envelope registers. The AD register is taken from the upper
// byte and is written before the SR register.
func (v *Voice) SetADSR(adsr uint16) {
	v.sid.writePair(v.Register(AD), uint8(adsr>>8), v.Register(SR), uint8(adsr))
}

// SetEnvelope sets all four envelope values at once. Nothing is changed if any
// of the values is out of range.
func (v *Voice) SetEnvelope(attack, decay, sustain, release uint8) error {
	for _, f := range []struct {
		name string
		v    uint8
	}{{"attack", attack}, {"decay", decay}, {"sustain", sustain}, {"release", release}} {
		if err := checkNibble(f.name, f.v); err != nil {
			return err
		}
	}
	v.SetADSR(uint16(attack)<<12 | uint16(decay)<<8 | uint16(sustain)<<4 | uint16(release))
	return nil
}

func (v *Voice) setNibble(reg Register, field string, upper bool, n uint8) error {
	if err := checkNibble(field, n); err != nil {
		return err
	}
	r := v.Register(reg)
	if upper {
		v.sid.write(r, v.sid.regs[r]&0x0f|n<<4)
	} else {
		v.sid.write(r, v.sid.regs[r]&0xf0|n)
	}
	return nil
}

// Attack returns the attack value (0 to 15).
func (v *Voice) Attack() uint8 {
	return v.get(AD) >> 4
}

// SetAttack sets the attack value (0 to 15). The decay value is preserved.
func (v *Voice) SetAttack(attack uint8) error {
	return v.setNibble(AD, "attack", true, attack)
}

// Decay returns the decay value (0 to 15).
func (v *Voice) Decay() uint8 {
	return v.get(AD) & 0x0f
}

// SetDecay sets the decay value (0 to 15). The attack value is preserved.
func (v *Voice) SetDecay(decay uint8) error {
	return v.setNibble(AD, "decay", false, decay)
}

// Sustain returns the sustain level (0 to 15).
func (v *Voice) Sustain() uint8 {
	return v.get(SR) >> 4
}

// SetSustain sets the sustain level (0 to 15). The release value is preserved.
func (v *Voice) SetSustain(sustain uint8) error {
	return v.setNibble(SR, "sustain", true, sustain)
}

// Release returns the release value (0 to 15).
func (v *Voice) Release() uint8 {
	return v.get(SR) & 0x0f
}

// SetRelease sets the release value (0 to 15). The sustain level is preserved.
func (v *Voice) SetRelease(release uint8) error {
	return v.setNibble(SR, "release", false, release)
}
