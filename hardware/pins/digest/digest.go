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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/sidbus/sidbus/hardware/pins"
)

// the length of the buffer isn't important but it must be longer than
// sha1.Size, which is where the previous hash is kept
const bufferLength = 1024 + sha1.Size

// Bus implements the pins.Bus and pins.Holder interfaces.
type Bus struct {
	crit   sync.Mutex
	digest [sha1.Size]byte
	buffer []byte
	ops    int
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	bus := &Bus{
		buffer: make([]byte, sha1.Size, bufferLength),
	}
	return bus
}

func (bus *Bus) String() string {
	return bus.Hash()
}

// Hash returns the hash of every operation since the last reset. Pending
// operations are included.
func (bus *Bus) Hash() string {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	if len(bus.buffer) == sha1.Size {
		return fmt.Sprintf("%x", bus.digest)
	}
	return fmt.Sprintf("%x", sha1.Sum(bus.buffer))
}

// Operations returns the number of operations since the last reset.
func (bus *Bus) Operations() int {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	return bus.ops
}

// ResetDigest forgets every operation.
func (bus *Bus) ResetDigest() {
	bus.crit.Lock()
	defer bus.crit.Unlock()
	bus.digest = [sha1.Size]byte{}
	bus.buffer = bus.buffer[:sha1.Size]
	clear(bus.buffer)
	bus.ops = 0
}

// Apply adds a previously recorded operation to the digest. See
// capture.Capture.Ops() and capture.Capture.Changes().
func (bus *Bus) Apply(op pins.Op) {
	switch {
	case op.Configure:
		bus.ConfigureOutput(op.Pin)
	case op.Hold > 0:
		bus.Hold(op.Hold)
	default:
		bus.SetLevel(op.Pin, op.Level)
	}
}

// ConfigureOutput implements the pins.Bus interface.
func (bus *Bus) ConfigureOutput(pin pins.Pin) {
	bus.add('O', byte(pin))
}

// SetLevel implements the pins.Bus interface.
func (bus *Bus) SetLevel(pin pins.Pin, level pins.Level) {
	if level == pins.High {
		bus.add('H', byte(pin))
	} else {
		bus.add('L', byte(pin))
	}
}

// Hold implements the pins.Holder interface. The function returns immediately.
func (bus *Bus) Hold(d time.Duration) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], uint64(d))
	bus.add('D', b[:n]...)
}

func (bus *Bus) add(cmd byte, arg ...byte) {
	bus.crit.Lock()
	defer bus.crit.Unlock()

	if len(bus.buffer)+1+len(arg) > bufferLength {
		bus.digest = sha1.Sum(bus.buffer)
		bus.buffer = bus.buffer[:sha1.Size]
		copy(bus.buffer, bus.digest[:])
	}
	bus.buffer = append(bus.buffer, cmd)
	bus.buffer = append(bus.buffer, arg...)
	bus.ops++
}
