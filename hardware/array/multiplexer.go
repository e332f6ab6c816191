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

package array

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/environment"
	"github.com/sidbus/sidbus/hardware/pins"
	"github.com/sidbus/sidbus/logger"
)

// Multiplexer delivers the writes queued by an Array to the chips over a
// shared bus.
type Multiplexer struct {
	env *environment.Environment
	arr *Array
	bus pins.Bus
	m   pins.Map

	// how long the chip select is held low
	hold time.Duration

	// optional interfaces implemented by the bus. nil if not implemented
	holder  pins.Holder
	flusher pins.Flusher

	written atomic.Uint64
}

// NewMultiplexer is the preferred method of initialisation for the
// Multiplexer type. The pin map must have a chip select line for every chip in
// the array. The hold duration must be at least as long as the write pulse
// required by the chips.
func NewMultiplexer(env *environment.Environment, arr *Array, bus pins.Bus, m pins.Map, hold time.Duration) (*Multiplexer, error) {
	if err := m.Validate(arr.NumChips()); err != nil {
		return nil, curated.Errorf("multiplexer: %v", err)
	}
	if hold <= 0 {
		return nil, curated.Errorf("multiplexer: hold duration must be positive (%s)", hold)
	}

	mx := &Multiplexer{
		env:  env,
		arr:  arr,
		bus:  bus,
		m:    m,
		hold: hold,
	}

	mx.holder, _ = bus.(pins.Holder)
	mx.flusher, _ = bus.(pins.Flusher)

	return mx, nil
}

func (mx *Multiplexer) String() string {
	return fmt.Sprintf("%d writes, hold %s", mx.Written(), mx.hold)
}

// Setup configures every line used by the multiplexer as an output and
// deasserts every chip select. Should be called once before the first Tick().
func (mx *Multiplexer) Setup() {
	for _, p := range mx.m.Address {
		mx.bus.ConfigureOutput(p)
	}
	for _, p := range mx.m.Data {
		mx.bus.ConfigureOutput(p)
	}
	for _, p := range mx.selects() {
		mx.bus.ConfigureOutput(p)
		mx.bus.SetLevel(p, pins.High)
	}
	mx.flush()

	logger.Logf(mx.env, "multiplexer", "bus ready: %s", mx.m)
}

// the select lines of the chips in the array. the map may have more
func (mx *Multiplexer) selects() []pins.Pin {
	return mx.m.Select[:mx.arr.NumChips()]
}

// Tick performs at most one bus cycle. Returns false if there was nothing in
// the queue.
//
// Panics if the write taken from the queue is for a chip that doesn't exist.
// The writes are created by the Array so this can only happen if the program
// is broken.
func (mx *Multiplexer) Tick() bool {
	sel := mx.selects()

	for _, p := range sel {
		mx.bus.SetLevel(p, pins.High)
	}

	w, ok := mx.arr.pop()
	if !ok {
		return false
	}

	if w.Chip < 0 || w.Chip >= len(sel) {
		panic(curated.Errorf(InvalidChip, w.Chip))
	}

	for i, p := range mx.m.Address {
		mx.bus.SetLevel(p, pins.Level(uint8(w.Register)>>i&0x01 == 0x01))
	}
	for i, p := range mx.m.Data {
		mx.bus.SetLevel(p, pins.Level(w.Value>>i&0x01 == 0x01))
	}

	mx.bus.SetLevel(sel[w.Chip], pins.Low)
	mx.wait()
	mx.bus.SetLevel(sel[w.Chip], pins.High)

	mx.flush()
	mx.written.Add(1)

	return true
}

// wait for the hold duration. the bus does the waiting if it can
func (mx *Multiplexer) wait() {
	if mx.holder != nil {
		mx.holder.Hold(mx.hold)
		return
	}

	// the hold is too short for time.Sleep() to be of any use
	start := time.Now()
	for time.Since(start) < mx.hold {
	}
}

func (mx *Multiplexer) flush() {
	if mx.flusher == nil {
		return
	}
	if err := mx.flusher.Flush(); err != nil {
		logger.Log(mx.env, "multiplexer", err)
	}
}

// Drain ticks until the queue is empty. Returns the number of writes
// delivered.
func (mx *Multiplexer) Drain() int {
	var n int
	for mx.Tick() {
		n++
	}
	return n
}

// Written returns the number of writes delivered to the bus.
func (mx *Multiplexer) Written() uint64 {
	return mx.written.Load()
}

// Run ticks the multiplexer once every period until the context is done. The
// context error is returned.
func (mx *Multiplexer) Run(ctx context.Context, period time.Duration) error {
	if period <= 0 {
		return curated.Errorf("multiplexer: tick period must be positive (%s)", period)
	}

	pulse := time.NewTicker(period)
	defer pulse.Stop()

	logger.Logf(mx.env, "multiplexer", "running with a tick period of %s", period)

	for {
		select {
		case <-ctx.Done():
			logger.Logf(mx.env, "multiplexer", "stopped after %d writes", mx.Written())
			return ctx.Err()
		case <-pulse.C:
			mx.Tick()
		}
	}
}
