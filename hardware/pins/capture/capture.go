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

package capture

import (
	"sync"
	"time"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/hardware/pins"
	"github.com/sidbus/sidbus/hardware/sid"
)

// Capture implements the pins.Bus, pins.Holder and pins.Flusher interfaces.
type Capture struct {
	crit sync.Mutex

	ops []pins.Op

	// pins in the order they were configured. one WAV channel per pin
	outputs []pins.Pin

	flushes int
}

// NewCapture is the preferred method of initialisation for the Capture type.
func NewCapture() *Capture {
	return &Capture{}
}

// ConfigureOutput implements the pins.Bus interface.
func (c *Capture) ConfigureOutput(pin pins.Pin) {
	c.crit.Lock()
	defer c.crit.Unlock()

	c.ops = append(c.ops, pins.Op{Pin: pin, Configure: true})
	for _, p := range c.outputs {
		if p == pin {
			return
		}
	}
	c.outputs = append(c.outputs, pin)
}

// SetLevel implements the pins.Bus interface.
func (c *Capture) SetLevel(pin pins.Pin, level pins.Level) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.ops = append(c.ops, pins.Op{Pin: pin, Level: level})
}

// Hold implements the pins.Holder interface. The duration is recorded and
// the function returns immediately.
func (c *Capture) Hold(d time.Duration) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.ops = append(c.ops, pins.Op{Hold: d})
}

// Flush implements the pins.Flusher interface.
func (c *Capture) Flush() error {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.flushes++
	return nil
}

// Ops returns a copy of every operation recorded so far.
func (c *Capture) Ops() []pins.Op {
	c.crit.Lock()
	defer c.crit.Unlock()
	return append([]pins.Op(nil), c.ops...)
}

// Changes returns the recorded operations with every level change that
// leaves a pin at the level it already had removed. Configuration and hold
// operations are always included.
//
// The result depends only on the writes that were put on the bus and not on
// how many idle ticks happened between them.
func (c *Capture) Changes() []pins.Op {
	c.crit.Lock()
	defer c.crit.Unlock()

	levels := make(map[pins.Pin]pins.Level)

	var ops []pins.Op
	for _, op := range c.ops {
		if !op.Configure && op.Hold == 0 {
			if l, ok := levels[op.Pin]; ok && l == op.Level {
				continue
			}
			levels[op.Pin] = op.Level
		}
		ops = append(ops, op)
	}

	return ops
}

// Flushes returns the number of times Flush() has been called.
func (c *Capture) Flushes() int {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.flushes
}

// Reset forgets every recorded operation. Configured pins are remembered.
func (c *Capture) Reset() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.ops = c.ops[:0]
	c.flushes = 0
}

// Decode interprets the recording using the pin map and returns the register
// writes it represents. A write is recognised when a chip select line goes
// low. The register and value are taken from the levels of the address and
// data lines at that moment.
func (c *Capture) Decode(m pins.Map) ([]sid.Write, error) {
	c.crit.Lock()
	defer c.crit.Unlock()

	levels := make(map[pins.Pin]pins.Level)
	for _, p := range m.Select {
		levels[p] = pins.High
	}

	var writes []sid.Write
	for _, op := range c.ops {
		if op.Configure || op.Hold > 0 {
			continue
		}

		prev, seen := levels[op.Pin]
		levels[op.Pin] = op.Level

		if op.Level != pins.Low || (seen && prev == pins.Low) {
			continue
		}

		for chip, p := range m.Select {
			if p != op.Pin {
				continue
			}

			var reg, val uint8
			for i, a := range m.Address {
				if levels[a] == pins.High {
					reg |= 1 << i
				}
			}
			for i, d := range m.Data {
				if levels[d] == pins.High {
					val |= 1 << i
				}
			}

			if int(reg) >= sid.NumRegisters {
				return writes, curated.Errorf("capture: decoded address out of range (%d)", reg)
			}

			writes = append(writes, sid.Write{Chip: chip, Register: sid.Register(reg), Value: val})
		}
	}

	return writes, nil
}
