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

package array_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/environment"
	"github.com/sidbus/sidbus/hardware/array"
	"github.com/sidbus/sidbus/hardware/pins"
	"github.com/sidbus/sidbus/hardware/pins/capture"
	"github.com/sidbus/sidbus/hardware/preferences"
	"github.com/sidbus/sidbus/hardware/sid"
	"github.com/sidbus/sidbus/prefs"
	"github.com/sidbus/sidbus/test"
)

func newEnvironment(t *testing.T) *environment.Environment {
	t.Helper()
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment("test", p)
	test.DemandSuccess(t, err)
	env.Quiet = true
	return env
}

func newArray(t *testing.T, env *environment.Environment, numChips int, policy array.Policy) *array.Array {
	t.Helper()
	arr, err := array.NewArray(env, numChips, policy)
	test.DemandSuccess(t, err)
	return arr
}

func chip(t *testing.T, arr *array.Array, idx int) *sid.SID {
	t.Helper()
	c, err := arr.Chip(idx)
	test.DemandSuccess(t, err)
	return c
}

func voice(t *testing.T, c *sid.SID, idx int) *sid.Voice {
	t.Helper()
	v, err := c.Voice(idx)
	test.DemandSuccess(t, err)
	return v
}

func TestNewArray(t *testing.T) {
	env := newEnvironment(t)

	_, err := array.NewArray(env, 0, array.Block)
	test.ExpectSuccess(t, curated.Is(err, array.InvalidChipCount))
	_, err = array.NewArray(env, 7, array.Block)
	test.ExpectSuccess(t, curated.Is(err, array.InvalidChipCount))
	_, err = array.NewArray(env, 1, array.Policy(99))
	test.ExpectSuccess(t, curated.Is(err, array.InvalidPolicy))

	arr := newArray(t, env, 6, array.Reject)
	test.ExpectEquality(t, arr.NumChips(), 6)
	test.ExpectEquality(t, arr.Policy(), array.Reject)
	test.ExpectEquality(t, arr.Pending(), 0)

	for i := 0; i < 6; i++ {
		test.ExpectEquality(t, chip(t, arr, i).Chip(), i)
	}

	_, err = arr.Chip(6)
	test.ExpectSuccess(t, curated.Is(err, array.InvalidChip))
	_, err = arr.Chip(-1)
	test.ExpectSuccess(t, curated.Is(err, array.InvalidChip))

	p, err := array.ParsePolicy("reject")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, array.Reject)
}

func TestReject(t *testing.T) {
	arr := newArray(t, newEnvironment(t), 1, array.Reject)
	c := chip(t, arr, 0)

	var hooked []sid.Write
	arr.SetOverflowHook(func(w sid.Write) {
		hooked = append(hooked, w)
	})

	// capacity is 25 writes for a single chip. each new frequency is two
	// writes so the 13th call fills the last slot and loses its high byte
	v := voice(t, c, 0)
	for i := 1; i <= 13; i++ {
		v.SetFrequency(uint16(i<<8 | i))
	}
	test.ExpectEquality(t, arr.Pending(), sid.NumWriteRegisters)
	test.ExpectEquality(t, arr.Dropped(), uint64(1))
	test.DemandEquality(t, len(hooked), 1)
	test.ExpectEquality(t, hooked[0], sid.Write{Chip: 0, Register: sid.FreqHi, Value: 13})

	// the shadow state is updated even though the write was dropped
	test.ExpectEquality(t, v.Frequency(), uint16(0x0d0d))

	// no hook
	arr.SetOverflowHook(nil)
	test.ExpectSuccess(t, c.Filter().SetVolume(1))
	test.ExpectEquality(t, arr.Dropped(), uint64(2))
	test.ExpectEquality(t, len(hooked), 1)
}

func TestBlock(t *testing.T) {
	env := newEnvironment(t)
	arr := newArray(t, env, 1, array.Block)
	c := chip(t, arr, 0)

	mx, err := array.NewMultiplexer(env, arr, capture.NewCapture(), pins.ArduinoNano, time.Microsecond)
	test.DemandSuccess(t, err)
	mx.Setup()

	// fill the queue
	c.Refresh()
	test.ExpectEquality(t, arr.Pending(), sid.NumWriteRegisters)

	done := make(chan bool)
	go func() {
		_ = c.Filter().SetVolume(15)
		done <- true
	}()

	// the setter must still be waiting because the multiplexer has not run
	select {
	case <-done:
		t.Fatalf("setter did not wait for space in the queue")
	case <-time.After(50 * time.Millisecond):
	}

	test.ExpectSuccess(t, mx.Tick())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("setter was not woken")
	}

	// nothing has been dropped
	test.ExpectEquality(t, arr.Dropped(), uint64(0))
	test.ExpectEquality(t, mx.Drain(), sid.NumWriteRegisters)
	test.ExpectEquality(t, mx.Written(), uint64(sid.NumWriteRegisters+1))
}

func TestClear(t *testing.T) {
	env := newEnvironment(t)
	arr := newArray(t, env, 1, array.Block)
	c := chip(t, arr, 0)

	c.Refresh()
	test.ExpectEquality(t, arr.Pending(), sid.NumWriteRegisters)

	done := make(chan bool)
	go func() {
		_ = c.Filter().SetVolume(15)
		done <- true
	}()

	select {
	case <-done:
		t.Fatalf("setter did not wait for space in the queue")
	case <-time.After(50 * time.Millisecond):
	}

	arr.Clear()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("setter was not woken by Clear()")
	}

	// only the write made after the clear remains
	test.ExpectEquality(t, arr.Pending(), 1)
	test.ExpectEquality(t, c.Filter().Volume(), uint8(15))
}

func TestNewMultiplexer(t *testing.T) {
	env := newEnvironment(t)
	arr := newArray(t, env, 5, array.Block)

	// the nano map has only four chip selects
	_, err := array.NewMultiplexer(env, arr, capture.NewCapture(), pins.ArduinoNano, time.Microsecond)
	test.ExpectSuccess(t, curated.Has(err, pins.NotEnoughSelects))

	m := pins.ArduinoNano
	m.Select = append(m.Select, 20)
	_, err = array.NewMultiplexer(env, arr, capture.NewCapture(), m, time.Microsecond)
	test.ExpectSuccess(t, err)

	_, err = array.NewMultiplexer(env, arr, capture.NewCapture(), m, 0)
	test.ExpectFailure(t, err)
}

// op is shorthand for a pin level change
func op(p pins.Pin, l pins.Level) pins.Op {
	return pins.Op{Pin: p, Level: l}
}

const (
	lo = pins.Low
	hi = pins.High
)

func TestTwoChips(t *testing.T) {
	env := newEnvironment(t)
	arr := newArray(t, env, 2, array.Block)
	bus := capture.NewCapture()

	mx, err := array.NewMultiplexer(env, arr, bus, pins.ArduinoNano, time.Microsecond)
	test.DemandSuccess(t, err)
	mx.Setup()

	// setup configures every line and deasserts the chip selects of the two
	// chips in the array
	ops := bus.Ops()
	test.DemandEquality(t, len(ops), pins.NumAddressLines+pins.NumDataLines+4)
	for i, p := range pins.ArduinoNano.Address {
		test.ExpectEquality(t, ops[i], pins.Op{Pin: p, Configure: true})
	}
	for i, p := range pins.ArduinoNano.Data {
		test.ExpectEquality(t, ops[pins.NumAddressLines+i], pins.Op{Pin: p, Configure: true})
	}
	test.ExpectEquality(t, ops[13], pins.Op{Pin: 19, Configure: true})
	test.ExpectEquality(t, ops[14], op(19, hi))
	test.ExpectEquality(t, ops[15], pins.Op{Pin: 11, Configure: true})
	test.ExpectEquality(t, ops[16], op(11, hi))
	test.ExpectEquality(t, bus.Flushes(), 1)
	bus.Reset()

	// attack of the second voice on the first chip and the volume on the
	// second chip
	test.ExpectSuccess(t, voice(t, chip(t, arr, 0), 1).SetAttack(12))
	test.ExpectSuccess(t, chip(t, arr, 1).Filter().SetVolume(15))
	test.ExpectEquality(t, arr.Pending(), 2)

	test.ExpectEquality(t, mx.Drain(), 2)
	test.ExpectEquality(t, arr.Pending(), 0)
	test.ExpectEquality(t, mx.Written(), uint64(2))
	test.ExpectEquality(t, bus.Flushes(), 2)

	expected := []pins.Op{
		// chip 0, register 12, value 0xc0
		op(19, hi), op(11, hi),
		op(14, lo), op(15, lo), op(16, hi), op(17, hi), op(18, lo),
		op(2, lo), op(3, lo), op(4, lo), op(5, lo), op(7, lo), op(8, lo), op(9, hi), op(10, hi),
		op(19, lo), {Hold: time.Microsecond}, op(19, hi),

		// chip 1, register 0x18, value 0x0f
		op(19, hi), op(11, hi),
		op(14, lo), op(15, lo), op(16, lo), op(17, hi), op(18, hi),
		op(2, hi), op(3, hi), op(4, hi), op(5, hi), op(7, lo), op(8, lo), op(9, lo), op(10, lo),
		op(11, lo), {Hold: time.Microsecond}, op(11, hi),

		// empty queue
		op(19, hi), op(11, hi),
	}

	ops = bus.Ops()
	test.DemandEquality(t, len(ops), len(expected))
	for i := range expected {
		test.ExpectEquality(t, ops[i], expected[i], "op", i)
	}

	writes, err := bus.Decode(pins.ArduinoNano)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(writes), 2)
	test.ExpectEquality(t, writes[0], sid.Write{Chip: 0, Register: 12, Value: 0xc0})
	test.ExpectEquality(t, writes[1], sid.Write{Chip: 1, Register: 0x18, Value: 0x0f})
}

func TestFIFOAcrossChips(t *testing.T) {
	env := newEnvironment(t)
	arr := newArray(t, env, 3, array.Block)
	bus := capture.NewCapture()

	mx, err := array.NewMultiplexer(env, arr, bus, pins.ArduinoNano, time.Microsecond)
	test.DemandSuccess(t, err)
	mx.Setup()

	voice(t, chip(t, arr, 2), 0).SetFrequency(0x1234)
	test.ExpectSuccess(t, voice(t, chip(t, arr, 0), 2).SetEnvelope(1, 2, 3, 4))
	test.ExpectSuccess(t, chip(t, arr, 1).Filter().SetCutoff11(0x07ff))
	voice(t, chip(t, arr, 2), 0).SetGate(true)

	test.ExpectEquality(t, mx.Drain(), 7)

	writes, err := bus.Decode(pins.ArduinoNano)
	test.DemandSuccess(t, err)
	expected := []sid.Write{
		{Chip: 2, Register: sid.FreqLo, Value: 0x34},
		{Chip: 2, Register: sid.FreqHi, Value: 0x12},
		{Chip: 0, Register: sid.VoiceRegister(2, sid.AD), Value: 0x12},
		{Chip: 0, Register: sid.VoiceRegister(2, sid.SR), Value: 0x34},
		{Chip: 1, Register: sid.FCLo, Value: 0x07},
		{Chip: 1, Register: sid.FCHi, Value: 0xff},
		{Chip: 2, Register: sid.Ctrl, Value: 0x01},
	}
	test.DemandEquality(t, len(writes), len(expected))
	for i := range expected {
		test.ExpectEquality(t, writes[i], expected[i], "write", i)
	}
}

func TestRefresh(t *testing.T) {
	env := newEnvironment(t)
	arr := newArray(t, env, 2, array.Reject)
	bus := capture.NewCapture()

	mx, err := array.NewMultiplexer(env, arr, bus, pins.ArduinoNano, time.Microsecond)
	test.DemandSuccess(t, err)
	mx.Setup()

	arr.Refresh()
	test.ExpectEquality(t, arr.Pending(), 2*sid.NumWriteRegisters)
	test.ExpectEquality(t, arr.Dropped(), uint64(0))
	test.ExpectEquality(t, mx.Drain(), 2*sid.NumWriteRegisters)

	writes, err := bus.Decode(pins.ArduinoNano)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(writes), 2*sid.NumWriteRegisters)
	test.ExpectEquality(t, writes[sid.NumWriteRegisters], sid.Write{Chip: 1, Register: 0, Value: 0})
}

// plainBus implements only the pins.Bus interface
type plainBus struct {
	ops []pins.Op
}

func (b *plainBus) ConfigureOutput(p pins.Pin) {
	b.ops = append(b.ops, pins.Op{Pin: p, Configure: true})
}

func (b *plainBus) SetLevel(p pins.Pin, l pins.Level) {
	b.ops = append(b.ops, pins.Op{Pin: p, Level: l})
}

func TestHoldOnHost(t *testing.T) {
	env := newEnvironment(t)
	arr := newArray(t, env, 1, array.Block)
	bus := &plainBus{}

	const hold = 2 * time.Millisecond

	mx, err := array.NewMultiplexer(env, arr, bus, pins.ArduinoNano, hold)
	test.DemandSuccess(t, err)
	mx.Setup()

	test.ExpectSuccess(t, chip(t, arr, 0).Filter().SetVolume(3))

	// the multiplexer waits for the hold duration itself
	start := time.Now()
	test.ExpectSuccess(t, mx.Tick())
	test.ExpectSuccess(t, time.Since(start) >= hold)
	test.ExpectFailure(t, mx.Tick())
}

func TestRun(t *testing.T) {
	env := newEnvironment(t)
	arr := newArray(t, env, 1, array.Block)
	bus := capture.NewCapture()

	mx, err := array.NewMultiplexer(env, arr, bus, pins.ArduinoNano, time.Microsecond)
	test.DemandSuccess(t, err)
	mx.Setup()

	err = mx.Run(context.Background(), 0)
	test.ExpectFailure(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- mx.Run(ctx, 100*time.Microsecond)
	}()

	// the block policy means the setters will wait for the multiplexer if
	// necessary
	v := voice(t, chip(t, arr, 0), 0)
	for f := 0; f < 100; f++ {
		v.SetFrequency(uint16(f + 1))
	}

	deadline := time.Now().Add(5 * time.Second)
	for arr.Pending() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectEquality(t, arr.Pending(), 0)

	cancel()
	err = <-done
	test.ExpectSuccess(t, errors.Is(err, context.Canceled))

	// frequencies 1 to 100 only change the low byte but both bytes are always
	// written
	test.ExpectEquality(t, mx.Written(), uint64(200))
}
