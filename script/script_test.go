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

package script_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sidbus/sidbus/environment"
	"github.com/sidbus/sidbus/hardware/array"
	"github.com/sidbus/sidbus/hardware/preferences"
	"github.com/sidbus/sidbus/hardware/sid"
	"github.com/sidbus/sidbus/prefs"
	"github.com/sidbus/sidbus/script"
	"github.com/sidbus/sidbus/test"
)

func newScript(t *testing.T, numChips int) (*script.Script, *array.Array) {
	t.Helper()
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment("test", p)
	test.DemandSuccess(t, err)
	env.Quiet = true

	// the reject policy means that the script never waits for a multiplexer
	arr, err := array.NewArray(env, numChips, array.Reject)
	test.DemandSuccess(t, err)

	return script.NewScript(env, arr), arr
}

func TestProgramming(t *testing.T) {
	scr, arr := newScript(t, 2)

	err := scr.Run(context.Background(), `
		assert(sid.chips() == 2)
		sid.frequency(1, 2, 0x1234)
		sid.pulsewidth(1, 2, 0x800)
		sid.waveform(1, 2, "square|triangle")
		sid.envelope(1, 2, 12, 3, 9, 15)
		sid.gate(1, 2, true)
		sid.note(2, 1, 440)
		sid.cutoff(2, 0x400)
		sid.resonance(2, 8)
		sid.route(2, 1, true)
		sid.mode(2, "lowpass|highpass")
		sid.volume(2, 15)
		sid.log("done")
	`)
	test.DemandSuccess(t, err)

	c, err := arr.Chip(0)
	test.DemandSuccess(t, err)
	v, err := c.Voice(1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v.Frequency(), uint16(0x1234))
	test.ExpectEquality(t, v.PulseWidth12(), uint16(0x800))
	test.ExpectEquality(t, v.Waveform(), sid.Square|sid.Triangle)
	test.ExpectEquality(t, v.ADSR(), uint16(0xc39f))
	test.ExpectSuccess(t, v.Gate())

	c, err = arr.Chip(1)
	test.DemandSuccess(t, err)
	v, err = c.Voice(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v.Frequency(), uint16(7493))
	test.ExpectEquality(t, c.Filter().Cutoff11(), uint16(0x400))
	test.ExpectEquality(t, c.Filter().Resonance(), uint8(8))
	routed, err := c.Filter().Routed(0)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, routed)
	test.ExpectEquality(t, c.Filter().Mode(), sid.LowPass|sid.HighPass)
	test.ExpectEquality(t, c.Filter().Volume(), uint8(15))

	test.ExpectEquality(t, arr.Dropped(), uint64(0))
	test.ExpectInequality(t, arr.Pending(), 0)
}

func TestControlAndRouting(t *testing.T) {
	scr, arr := newScript(t, 1)

	err := scr.Run(context.Background(), `
		sid.waveform(1, 3, "pulse")
		sid.control(1, 3, "sync|ringmod|test", true)
		sid.control(1, 3, "test", false)
		sid.external(1, true)
		sid.voice3off(1, true)
		sid.mode(1, "bandpass")
		sid.modeflag(1, "lowpass", true)
		sid.modeflag(1, "bandpass", false)
	`)
	test.DemandSuccess(t, err)

	c, err := arr.Chip(0)
	test.DemandSuccess(t, err)
	v, err := c.Voice(2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v.Control(), sid.Sync|sid.RingMod)
	test.ExpectEquality(t, v.Waveform(), sid.Square)
	test.ExpectSuccess(t, c.Filter().External())
	test.ExpectSuccess(t, c.Filter().Voice3Off())
	test.ExpectEquality(t, c.Filter().Mode(), sid.LowPass)

	// clearing the test bit a second time changes nothing so nothing is
	// queued
	pending := arr.Pending()
	test.DemandSuccess(t, scr.Run(context.Background(), `sid.control(1, 3, "test", false)`))
	test.ExpectEquality(t, arr.Pending(), pending)
}

func TestInvalidArguments(t *testing.T) {
	scr, _ := newScript(t, 1)

	for _, s := range []string{
		`sid.frequency(2, 1, 100)`,
		`sid.frequency(1, 4, 100)`,
		`sid.frequency(1, 1, 0x10000)`,
		`sid.pulsewidth(1, 1, 4096)`,
		`sid.waveform(1, 1, "sine")`,
		`sid.envelope(1, 1, 16, 0, 0, 0)`,
		`sid.volume(1, -1)`,
		`sid.mode(1, "notch")`,
		`sid.route(1, 0, true)`,
		`sid.control(1, 1, "filter", true)`,
		`sid.control(1, 1, "sync")`,
		`sid.modeflag(1, "lowpass|highpass", true)`,
		`sid.external(2, true)`,
		`sid.note(1, 1, 10000)`,
	} {
		test.ExpectFailure(t, scr.Run(context.Background(), s), s)
	}
}

func TestRefresh(t *testing.T) {
	scr, arr := newScript(t, 2)
	test.DemandSuccess(t, scr.Run(context.Background(), `sid.refresh()`))
	test.ExpectEquality(t, arr.Pending(), 2*sid.NumWriteRegisters)
}

func TestCancel(t *testing.T) {
	scr, _ := newScript(t, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := scr.Run(ctx, `sid.sleep(10000)`)
	test.ExpectSuccess(t, errors.Is(err, context.DeadlineExceeded))
	test.ExpectSuccess(t, time.Since(start) < 5*time.Second)
}

func TestRunFile(t *testing.T) {
	scr, arr := newScript(t, 1)

	fn := filepath.Join(t.TempDir(), "test.lua")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(`sid.volume(1, 5)`), 0600))
	test.DemandSuccess(t, scr.RunFile(context.Background(), fn))

	c, err := arr.Chip(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Filter().Volume(), uint8(5))

	test.ExpectFailure(t, scr.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")))
}
