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

package sid_test

import (
	"testing"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/hardware/sid"
	"github.com/sidbus/sidbus/test"
)

// recorder is a sid.Sink that keeps every write it is given
type recorder struct {
	writes []sid.Write
}

func (r *recorder) WriteRegister(chip int, reg sid.Register, value uint8) {
	r.writes = append(r.writes, sid.Write{Chip: chip, Register: reg, Value: value})
}

func (r *recorder) reset() {
	r.writes = r.writes[:0]
}

func expectWrites(t *testing.T, r *recorder, expected ...sid.Write) {
	t.Helper()
	if !test.ExpectEquality(t, len(r.writes), len(expected), "number of writes") {
		t.Logf("writes: %v", r.writes)
		return
	}
	for i := range expected {
		test.ExpectEquality(t, r.writes[i], expected[i], "write", i)
	}
}

func voice(t *testing.T, s *sid.SID, n int) *sid.Voice {
	t.Helper()
	v, err := s.Voice(n)
	test.DemandSuccess(t, err)
	return v
}

func TestRegisterNames(t *testing.T) {
	test.ExpectEquality(t, sid.FreqLo.String(), "FREQLO1")
	test.ExpectEquality(t, sid.VoiceRegister(1, sid.Ctrl).String(), "CTRL2")
	test.ExpectEquality(t, sid.VoiceRegister(2, sid.SR).String(), "SR3")
	test.ExpectEquality(t, sid.FCLo.String(), "FCLO")
	test.ExpectEquality(t, sid.ModeVol.String(), "MODEVOL")
	test.ExpectEquality(t, sid.Env3.String(), "ENV3")
	test.ExpectEquality(t, sid.Register(0x1d).String(), "unknown register (0x1d)")

	test.ExpectEquality(t, int(sid.FCLo), 0x15)
	test.ExpectEquality(t, int(sid.FCHi), 0x16)
	test.ExpectEquality(t, int(sid.ResFilt), 0x17)
	test.ExpectEquality(t, int(sid.ModeVol), 0x18)
	test.ExpectEquality(t, int(sid.PotX), 0x19)
	test.ExpectEquality(t, int(sid.Env3), 0x1c)
	test.ExpectEquality(t, sid.NumRegisters, 29)

	test.ExpectSuccess(t, sid.ModeVol.Writable())
	test.ExpectFailure(t, sid.PotX.Writable())

	test.ExpectEquality(t, sid.GlobalAddress(0, sid.FreqLo), 0)
	test.ExpectEquality(t, sid.GlobalAddress(2, sid.ModeVol), 2*29+0x18)
	w := sid.Write{Chip: 5, Register: sid.Env3, Value: 0}
	test.ExpectEquality(t, w.Global(), 5*29+28)
}

func TestFrequency(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(0, r)
	v := voice(t, s, 0)

	// every possible value round trips
	for f := 0; f <= 0xffff; f++ {
		v.SetFrequency(uint16(f))
		if !test.ExpectEquality(t, v.Frequency(), uint16(f)) {
			return
		}
	}

	// low byte is always written before the high byte
	r.reset()
	v.SetFrequency(0x1234)
	expectWrites(t, r,
		sid.Write{Chip: 0, Register: sid.FreqLo, Value: 0x34},
		sid.Write{Chip: 0, Register: sid.FreqHi, Value: 0x12},
	)

	// both registers are written even if only one of them has changed
	r.reset()
	v.SetFrequency(0x1235)
	expectWrites(t, r,
		sid.Write{Chip: 0, Register: sid.FreqLo, Value: 0x35},
		sid.Write{Chip: 0, Register: sid.FreqHi, Value: 0x12},
	)

	// setting the same value again writes nothing
	r.reset()
	v.SetFrequency(0x1235)
	expectWrites(t, r)
}

func TestVoiceOffsets(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(3, r)

	v := voice(t, s, 2)
	test.ExpectEquality(t, v.Index(), 2)
	v.SetFrequency(0xabcd)
	expectWrites(t, r,
		sid.Write{Chip: 3, Register: 14, Value: 0xcd},
		sid.Write{Chip: 3, Register: 15, Value: 0xab},
	)

	// other voices are untouched
	test.ExpectEquality(t, voice(t, s, 0).Frequency(), uint16(0))
	test.ExpectEquality(t, voice(t, s, 1).Frequency(), uint16(0))

	_, err := s.Voice(3)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidVoice))
	_, err = s.Voice(-1)
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidVoice))
}

func TestPulseWidth(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(0, r)
	v := voice(t, s, 1)

	// lowest four bits are lost
	v.SetPulseWidth(0xffff)
	test.ExpectEquality(t, v.PulseWidth(), uint16(0xfff0))
	test.ExpectEquality(t, v.PulseWidth12(), uint16(0x0fff))
	expectWrites(t, r,
		sid.Write{Chip: 0, Register: 9, Value: 0xff},
		sid.Write{Chip: 0, Register: 10, Value: 0x0f},
	)

	v.SetPulseWidth(0x1237)
	test.ExpectEquality(t, v.PulseWidth(), uint16(0x1230))

	// unscaled value
	test.ExpectSuccess(t, v.SetPulseWidth12(0x0800))
	test.ExpectEquality(t, v.PulseWidth(), uint16(0x8000))
	err := v.SetPulseWidth12(0x1000)
	test.ExpectSuccess(t, curated.Is(err, sid.ValueOutOfRange))
	test.ExpectEquality(t, v.PulseWidth12(), uint16(0x0800))
}

func TestPulseWidthTruncation(t *testing.T) {
	s := sid.NewSID(0, &recorder{})
	v := voice(t, s, 2)

	for pw := 0; pw <= 0xffff; pw++ {
		v.SetPulseWidth(uint16(pw))
		regs := s.Registers()
		ok := test.ExpectEquality(t, v.PulseWidth(), uint16(pw)&0xfff0, pw)
		ok = ok && test.ExpectEquality(t, v.PulseWidth12(), uint16(pw)>>4, pw)
		ok = ok && test.ExpectEquality(t, regs[v.Register(sid.PWLo)], uint8(pw>>4), pw)
		ok = ok && test.ExpectEquality(t, regs[v.Register(sid.PWHi)], uint8(pw>>12), pw)
		if !ok {
			break
		}
	}
}

func TestControlRegister(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(0, r)
	v := voice(t, s, 0)

	v.SetGate(true)
	v.SetSawtooth(true)
	test.ExpectSuccess(t, v.Gate())
	test.ExpectSuccess(t, v.Sawtooth())
	test.ExpectFailure(t, v.Noise())
	test.ExpectEquality(t, s.Registers()[sid.Ctrl], uint8(0x21))
	expectWrites(t, r,
		sid.Write{Chip: 0, Register: sid.Ctrl, Value: 0x01},
		sid.Write{Chip: 0, Register: sid.Ctrl, Value: 0x21},
	)

	// replacing the waveform preserves the control bits
	test.ExpectSuccess(t, v.SetWaveform(sid.Noise|sid.Triangle))
	test.ExpectEquality(t, v.Waveform(), sid.Noise|sid.Triangle)
	test.ExpectSuccess(t, v.Gate())
	test.ExpectEquality(t, s.Registers()[sid.Ctrl], uint8(0x91))

	// replacing the control bits preserves the waveform
	test.ExpectSuccess(t, v.SetControl(sid.Test|sid.RingMod))
	test.ExpectFailure(t, v.Gate())
	test.ExpectSuccess(t, v.Test())
	test.ExpectSuccess(t, v.RingMod())
	test.ExpectFailure(t, v.Sync())
	test.ExpectEquality(t, s.Registers()[sid.Ctrl], uint8(0x9c))

	v.SetTest(false)
	v.SetSync(true)
	v.SetSquare(true)
	v.SetNoise(false)
	v.SetTriangle(false)
	test.ExpectEquality(t, s.Registers()[sid.Ctrl], uint8(0x46))
	test.ExpectEquality(t, v.Waveform().String(), "square")
	test.ExpectEquality(t, v.Control().String(), "ringmod|sync")

	// bits outside the field
	err := v.SetWaveform(sid.Waveform(0x01))
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidBits))
	err = v.SetControl(sid.Control(0x10))
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidBits))
	test.ExpectEquality(t, s.Registers()[sid.Ctrl], uint8(0x46))

	// no change, no write
	r.reset()
	v.SetSquare(true)
	v.SetGate(false)
	expectWrites(t, r)
}

func TestEnvelopeNibbles(t *testing.T) {
	s := sid.NewSID(0, &recorder{})
	v := voice(t, s, 0)

	for hi := uint8(0); hi <= 15; hi++ {
		for lo := uint8(0); lo <= 15; lo++ {
			test.DemandSuccess(t, v.SetAttack(hi))
			test.DemandSuccess(t, v.SetDecay(lo))
			test.DemandSuccess(t, v.SetSustain(lo))
			test.DemandSuccess(t, v.SetRelease(hi))
			ok := test.ExpectEquality(t, v.AD(), hi<<4|lo, hi, lo)
			ok = ok && test.ExpectEquality(t, v.SR(), lo<<4|hi, hi, lo)

			// changing one half of the register leaves the other half alone
			test.DemandSuccess(t, v.SetAttack(15-hi))
			test.DemandSuccess(t, v.SetSustain(15-lo))
			ok = ok && test.ExpectEquality(t, v.Decay(), lo, hi, lo)
			ok = ok && test.ExpectEquality(t, v.Release(), hi, hi, lo)
			test.DemandSuccess(t, v.SetDecay(15-lo))
			test.DemandSuccess(t, v.SetRelease(15-hi))
			ok = ok && test.ExpectEquality(t, v.Attack(), 15-hi, hi, lo)
			ok = ok && test.ExpectEquality(t, v.Sustain(), 15-lo, hi, lo)
			if !ok {
				return
			}
		}
	}
}

func TestEnvelope(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(1, r)
	v := voice(t, s, 1)

	test.ExpectSuccess(t, v.SetAttack(12))
	expectWrites(t, r, sid.Write{Chip: 1, Register: 12, Value: 0xc0})

	test.ExpectSuccess(t, v.SetDecay(3))
	test.ExpectSuccess(t, v.SetSustain(9))
	test.ExpectSuccess(t, v.SetRelease(15))
	test.ExpectEquality(t, v.Attack(), uint8(12))
	test.ExpectEquality(t, v.Decay(), uint8(3))
	test.ExpectEquality(t, v.Sustain(), uint8(9))
	test.ExpectEquality(t, v.Release(), uint8(15))
	test.ExpectEquality(t, v.AD(), uint8(0xc3))
	test.ExpectEquality(t, v.SR(), uint8(0x9f))
	test.ExpectEquality(t, v.ADSR(), uint16(0xc39f))

	// out of range values are rejected and nothing changes
	r.reset()
	err := v.SetAttack(16)
	test.ExpectSuccess(t, curated.Is(err, sid.ValueOutOfRange))
	err = v.SetRelease(0xff)
	test.ExpectSuccess(t, curated.Is(err, sid.ValueOutOfRange))
	err = v.SetEnvelope(1, 2, 16, 4)
	test.ExpectSuccess(t, curated.Is(err, sid.ValueOutOfRange))
	test.ExpectEquality(t, v.ADSR(), uint16(0xc39f))
	expectWrites(t, r)

	// AD is written before SR
	test.ExpectSuccess(t, v.SetEnvelope(1, 2, 3, 4))
	expectWrites(t, r,
		sid.Write{Chip: 1, Register: 12, Value: 0x12},
		sid.Write{Chip: 1, Register: 13, Value: 0x34},
	)

	r.reset()
	v.SetADSR(0x1235)
	expectWrites(t, r,
		sid.Write{Chip: 1, Register: 12, Value: 0x12},
		sid.Write{Chip: 1, Register: 13, Value: 0x35},
	)

	r.reset()
	v.SetAD(0x12)
	v.SetSR(0x35)
	expectWrites(t, r)
}

func TestCutoff(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(0, r)
	f := s.Filter()

	f.SetCutoff(0xffff)
	test.ExpectEquality(t, f.Cutoff(), uint16(0xffe0))
	test.ExpectEquality(t, f.Cutoff11(), uint16(0x07ff))
	expectWrites(t, r,
		sid.Write{Chip: 0, Register: sid.FCLo, Value: 0x07},
		sid.Write{Chip: 0, Register: sid.FCHi, Value: 0xff},
	)

	// every scaled value is truncated to the eleven available bits
	for c := 0; c <= 0xffff; c += 7 {
		f.SetCutoff(uint16(c))
		if !test.ExpectEquality(t, f.Cutoff(), uint16(c)&0xffe0) {
			return
		}
	}

	for c := uint16(0); c <= 0x07ff; c++ {
		test.DemandSuccess(t, f.SetCutoff11(c))
		if !test.ExpectEquality(t, f.Cutoff11(), c) {
			return
		}
	}

	err := f.SetCutoff11(0x0800)
	test.ExpectSuccess(t, curated.Is(err, sid.ValueOutOfRange))
	test.ExpectEquality(t, f.Cutoff11(), uint16(0x07ff))
}

func TestResonanceAndRouting(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(0, r)
	f := s.Filter()

	test.ExpectSuccess(t, f.SetResonance(10))
	test.ExpectSuccess(t, f.SetRoute(0, true))
	test.ExpectSuccess(t, f.SetRoute(2, true))
	f.SetExternal(true)
	test.ExpectEquality(t, s.Registers()[sid.ResFilt], uint8(0xad))
	test.ExpectEquality(t, f.Resonance(), uint8(10))
	test.ExpectEquality(t, f.Routing(), uint8(0x0d))
	test.ExpectSuccess(t, f.External())

	routed, err := f.Routed(1)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, routed)
	routed, err = f.Routed(2)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, routed)

	_, err = f.Routed(3)
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidVoice))
	err = f.SetRoute(-1, true)
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidVoice))

	// resonance is preserved when the routing changes and vice versa
	test.ExpectSuccess(t, f.SetRouting(0x02))
	test.ExpectEquality(t, f.Resonance(), uint8(10))
	test.ExpectSuccess(t, f.SetResonance(1))
	test.ExpectEquality(t, f.Routing(), uint8(0x02))

	err = f.SetResonance(16)
	test.ExpectSuccess(t, curated.Is(err, sid.ValueOutOfRange))
	err = f.SetRouting(0x10)
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidBits))
	test.ExpectEquality(t, s.Registers()[sid.ResFilt], uint8(0x12))
}

func TestModeAndVolume(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(1, r)
	f := s.Filter()

	test.ExpectSuccess(t, f.SetVolume(15))
	expectWrites(t, r, sid.Write{Chip: 1, Register: 0x18, Value: 0x0f})

	test.ExpectSuccess(t, f.SetModeFlag(sid.LowPass, true))
	test.ExpectSuccess(t, f.SetModeFlag(sid.HighPass, true))
	test.ExpectEquality(t, f.Mode(), sid.LowPass|sid.HighPass)
	test.ExpectEquality(t, f.Mode().String(), "lowpass|highpass")
	test.ExpectEquality(t, f.Volume(), uint8(15))

	f.SetVoice3Off(true)
	test.ExpectSuccess(t, f.Voice3Off())
	test.ExpectEquality(t, s.Registers()[sid.ModeVol], uint8(0xdf))

	// mode replacement preserves volume and voice 3 off
	test.ExpectSuccess(t, f.SetMode(sid.BandPass))
	test.ExpectEquality(t, s.Registers()[sid.ModeVol], uint8(0xaf))

	err := f.SetModeFlag(sid.LowPass|sid.BandPass, true)
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidBits))
	err = f.SetModeFlag(0, true)
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidBits))
	err = f.SetMode(sid.FilterMode(0x80))
	test.ExpectSuccess(t, curated.Is(err, sid.InvalidBits))
	err = f.SetVolume(16)
	test.ExpectSuccess(t, curated.Is(err, sid.ValueOutOfRange))
	test.ExpectEquality(t, s.Registers()[sid.ModeVol], uint8(0xaf))

	test.ExpectSuccess(t, f.SetVolume(0))
	test.ExpectEquality(t, f.Mode(), sid.BandPass)
}

func TestMisc(t *testing.T) {
	s := sid.NewSID(0, nil)
	m := s.Misc()

	test.ExpectEquality(t, m.Osc3(), uint8(0))
	test.ExpectSuccess(t, m.Latch(sid.Osc3, 0x80))
	test.ExpectSuccess(t, m.Latch(sid.PotY, 0x10))
	test.ExpectEquality(t, m.Osc3(), uint8(0x80))
	test.ExpectEquality(t, m.PotY(), uint8(0x10))
	test.ExpectEquality(t, m.PotX(), uint8(0))
	test.ExpectEquality(t, m.Env3(), uint8(0))
	test.ExpectFailure(t, m.Latch(sid.ModeVol, 0))
}

func TestRefreshAndReset(t *testing.T) {
	r := &recorder{}
	s := sid.NewSID(2, r)

	test.ExpectSuccess(t, s.Filter().SetVolume(8))
	voice(t, s, 0).SetFrequency(0x1000)

	// refresh writes every register in address order
	r.reset()
	s.Refresh()
	test.ExpectEquality(t, len(r.writes), sid.NumWriteRegisters)
	for i, w := range r.writes {
		test.ExpectEquality(t, w.Register, sid.Register(i))
		test.ExpectEquality(t, w.Chip, 2)
	}
	test.ExpectEquality(t, r.writes[sid.FreqHi].Value, uint8(0x10))
	test.ExpectEquality(t, r.writes[sid.ModeVol].Value, uint8(0x08))

	r.reset()
	s.Reset()
	test.ExpectEquality(t, len(r.writes), sid.NumWriteRegisters)
	test.ExpectEquality(t, s.Registers(), [sid.NumWriteRegisters]uint8{})
	test.ExpectEquality(t, s.Filter().Volume(), uint8(0))
}

func TestNilSink(t *testing.T) {
	s := sid.NewSID(0, nil)
	v := voice(t, s, 0)
	v.SetFrequency(440)
	test.ExpectEquality(t, v.Frequency(), uint16(440))
	test.ExpectEquality(t, s.Chip(), 0)
	s.Refresh()
}

func TestSinkFunc(t *testing.T) {
	var n int
	s := sid.NewSID(0, sid.SinkFunc(func(_ int, _ sid.Register, _ uint8) {
		n++
	}))
	voice(t, s, 2).SetGate(true)
	test.ExpectEquality(t, n, 1)
}
