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

package script

import (
	"context"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/environment"
	"github.com/sidbus/sidbus/hardware/array"
	"github.com/sidbus/sidbus/hardware/sid"
	"github.com/sidbus/sidbus/logger"
	"github.com/sidbus/sidbus/notes"
)

// Script is a Lua interpreter with bindings to an Array.
type Script struct {
	env *environment.Environment
	arr *array.Array

	// the clock used by sid.note() to convert Hz to a register value
	Clock notes.Clock
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(env *environment.Environment, arr *array.Array) *Script {
	return &Script{
		env:   env,
		arr:   arr,
		Clock: notes.ClockPAL,
	}
}

// Run the Lua source until it finishes or the context is done.
func (scr *Script) Run(ctx context.Context, source string) error {
	return scr.run(ctx, func(L *lua.LState) error {
		return L.DoString(source)
	})
}

// RunFile runs the named Lua file until it finishes or the context is done.
func (scr *Script) RunFile(ctx context.Context, filename string) error {
	logger.Logf(scr.env, "script", "running %s", filename)
	return scr.run(ctx, func(L *lua.LState) error {
		return L.DoFile(filename)
	})
}

func (scr *Script) run(ctx context.Context, do func(*lua.LState) error) error {
	L := lua.NewState()
	defer L.Close()

	L.SetContext(ctx)

	tbl := L.NewTable()
	L.SetFuncs(tbl, map[string]lua.LGFunction{
		"chips":      scr.chips,
		"frequency":  scr.frequency,
		"note":       scr.note,
		"pulsewidth": scr.pulsewidth,
		"waveform":   scr.waveform,
		"gate":       scr.gate,
		"control":    scr.control,
		"envelope":   scr.envelope,
		"cutoff":     scr.cutoff,
		"resonance":  scr.resonance,
		"route":      scr.route,
		"mode":       scr.mode,
		"modeflag":   scr.modeflag,
		"external":   scr.external,
		"voice3off":  scr.voice3off,
		"volume":     scr.volume,
		"refresh":    scr.refresh,
		"sleep":      scr.sleep,
		"log":        scr.log,
	})
	L.SetGlobal("sid", tbl)

	if err := do(L); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return curated.Errorf("script: %v", err)
	}

	return nil
}

// check raises a Lua error if err is not nil
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}

// chip returns the chip numbered by the argument at index n
func (scr *Script) chip(L *lua.LState, n int) *sid.SID {
	c, err := scr.arr.Chip(L.CheckInt(n) - 1)
	check(L, err)
	return c
}

// voice returns the voice numbered by the arguments at index n (chip) and n+1
// (voice)
func (scr *Script) voice(L *lua.LState, n int) *sid.Voice {
	c := scr.chip(L, n)
	v, err := c.Voice(L.CheckInt(n+1) - 1)
	check(L, err)
	return v
}

// checkUint checks that the argument at index n fits in the maximum value
func checkUint(L *lua.LState, n int, field string, max int) int {
	v := L.CheckInt(n)
	if v < 0 || v > max {
		L.ArgError(n, curated.Errorf(sid.ValueOutOfRange, field, v, max).Error())
	}
	return v
}

func (scr *Script) chips(L *lua.LState) int {
	L.Push(lua.LNumber(scr.arr.NumChips()))
	return 1
}

func (scr *Script) frequency(L *lua.LState) int {
	v := scr.voice(L, 1)
	v.SetFrequency(uint16(checkUint(L, 3, "frequency", 0xffff)))
	return 0
}

func (scr *Script) note(L *lua.LState) int {
	v := scr.voice(L, 1)
	f, err := notes.Register(float64(L.CheckNumber(3)), scr.Clock)
	check(L, err)
	v.SetFrequency(f)
	return 0
}

func (scr *Script) pulsewidth(L *lua.LState) int {
	v := scr.voice(L, 1)
	check(L, v.SetPulseWidth12(uint16(checkUint(L, 3, "pulse width", 0x0fff))))
	return 0
}

// flags parses a list of names separated by the | character
func flags(L *lua.LState, n int, names map[string]uint8) uint8 {
	s := strings.ToLower(strings.TrimSpace(L.CheckString(n)))
	if s == "none" || s == "" {
		return 0
	}
	var f uint8
	for _, p := range strings.Split(s, "|") {
		b, ok := names[strings.TrimSpace(p)]
		if !ok {
			L.ArgError(n, "unknown name: "+p)
		}
		f |= b
	}
	return f
}

func (scr *Script) waveform(L *lua.LState) int {
	v := scr.voice(L, 1)
	w := flags(L, 3, map[string]uint8{
		"noise":    uint8(sid.Noise),
		"square":   uint8(sid.Square),
		"pulse":    uint8(sid.Square),
		"sawtooth": uint8(sid.Sawtooth),
		"triangle": uint8(sid.Triangle),
	})
	check(L, v.SetWaveform(sid.Waveform(w)))
	return 0
}

func (scr *Script) gate(L *lua.LState) int {
	v := scr.voice(L, 1)
	v.SetGate(L.CheckBool(3))
	return 0
}

// control sets or clears the named control bits together. other bits in the
// control register are left alone
func (scr *Script) control(L *lua.LState) int {
	v := scr.voice(L, 1)
	c := sid.Control(flags(L, 3, map[string]uint8{
		"gate":    uint8(sid.Gate),
		"sync":    uint8(sid.Sync),
		"ringmod": uint8(sid.RingMod),
		"test":    uint8(sid.Test),
	}))
	if L.CheckBool(4) {
		c = v.Control() | c
	} else {
		c = v.Control() &^ c
	}
	check(L, v.SetControl(c))
	return 0
}

func (scr *Script) envelope(L *lua.LState) int {
	v := scr.voice(L, 1)
	check(L, v.SetEnvelope(
		uint8(checkUint(L, 3, "attack", 15)),
		uint8(checkUint(L, 4, "decay", 15)),
		uint8(checkUint(L, 5, "sustain", 15)),
		uint8(checkUint(L, 6, "release", 15)),
	))
	return 0
}

func (scr *Script) cutoff(L *lua.LState) int {
	c := scr.chip(L, 1)
	check(L, c.Filter().SetCutoff11(uint16(checkUint(L, 2, "cutoff", 0x07ff))))
	return 0
}

func (scr *Script) resonance(L *lua.LState) int {
	c := scr.chip(L, 1)
	check(L, c.Filter().SetResonance(uint8(checkUint(L, 2, "resonance", 15))))
	return 0
}

func (scr *Script) route(L *lua.LState) int {
	c := scr.chip(L, 1)
	check(L, c.Filter().SetRoute(L.CheckInt(2)-1, L.CheckBool(3)))
	return 0
}

func (scr *Script) mode(L *lua.LState) int {
	c := scr.chip(L, 1)
	m := flags(L, 2, filterModes)
	check(L, c.Filter().SetMode(sid.FilterMode(m)))
	return 0
}

var filterModes = map[string]uint8{
	"lowpass":  uint8(sid.LowPass),
	"bandpass": uint8(sid.BandPass),
	"highpass": uint8(sid.HighPass),
}

func (scr *Script) modeflag(L *lua.LState) int {
	c := scr.chip(L, 1)
	m := flags(L, 2, filterModes)
	check(L, c.Filter().SetModeFlag(sid.FilterMode(m), L.CheckBool(3)))
	return 0
}

func (scr *Script) external(L *lua.LState) int {
	c := scr.chip(L, 1)
	c.Filter().SetExternal(L.CheckBool(2))
	return 0
}

func (scr *Script) voice3off(L *lua.LState) int {
	c := scr.chip(L, 1)
	c.Filter().SetVoice3Off(L.CheckBool(2))
	return 0
}

func (scr *Script) volume(L *lua.LState) int {
	c := scr.chip(L, 1)
	check(L, c.Filter().SetVolume(uint8(checkUint(L, 2, "volume", 15))))
	return 0
}

func (scr *Script) refresh(L *lua.LState) int {
	scr.arr.Refresh()
	return 0
}

func (scr *Script) sleep(L *lua.LState) int {
	d := time.Duration(L.CheckInt(1)) * time.Millisecond

	ctx := L.Context()
	if ctx == nil {
		time.Sleep(d)
		return 0
	}

	select {
	case <-ctx.Done():
		L.RaiseError("%v", ctx.Err())
	case <-time.After(d):
	}
	return 0
}

func (scr *Script) log(L *lua.LState) int {
	logger.Log(scr.env, "script", L.CheckString(1))
	return 0
}
