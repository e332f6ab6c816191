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

package pins

import (
	"fmt"
	"time"
)

// Pin is the number of a physical pin on the host.
type Pin uint8

// Level is the logic level of a pin.
type Level bool

// List of valid Level values.
const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Bus is the interface to the physical lines. Implementations are not required
// to be safe for concurrent use. The multiplexer calls them from a single
// goroutine.
type Bus interface {
	ConfigureOutput(pin Pin)
	SetLevel(pin Pin, level Level)
}

// Holder is implemented by buses that can represent the time the chip select
// is held low. For example, a bus that forwards line changes to remote
// hardware will want the remote side to do the waiting. The multiplexer
// waits on the host if the bus does not implement Holder.
type Holder interface {
	Hold(d time.Duration)
}

// Flusher is implemented by buses that buffer line changes. Flush() is called
// at the end of every write cycle.
type Flusher interface {
	Flush() error
}

// Op is a single operation on a bus. Recorded by buses that keep a history of
// what they have been asked to do.
type Op struct {
	Pin   Pin
	Level Level

	// the operation is a pin configuration rather than a level change
	Configure bool

	// the operation is a hold rather than a change to a pin. Pin and Level
	// are unused
	Hold time.Duration
}

func (op Op) String() string {
	if op.Hold > 0 {
		return fmt.Sprintf("hold %s", op.Hold)
	}
	if op.Configure {
		return fmt.Sprintf("output %d", op.Pin)
	}
	return fmt.Sprintf("%d %s", op.Pin, op.Level)
}
