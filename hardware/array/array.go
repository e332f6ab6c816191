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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/environment"
	"github.com/sidbus/sidbus/hardware/queue"
	"github.com/sidbus/sidbus/hardware/sid"
	"github.com/sidbus/sidbus/logger"
)

// Sentinal error patterns. Use curated.Is() to test for them.
const (
	InvalidChip      = "array: chip index out of range (%d)"
	InvalidChipCount = "array: number of chips must be between 1 and %d (%d)"
	InvalidPolicy    = "array: unknown overflow policy (%d)"
)

// Policy is the overflow policy of the write queue.
type Policy = queue.Policy

// List of valid Policy values.
const (
	Block  = queue.Block
	Reject = queue.Reject
)

// ParsePolicy converts the name of a policy to a Policy value.
func ParsePolicy(s string) (Policy, error) {
	return queue.ParsePolicy(s)
}

// Array is a fixed number of SID chips sharing a write queue.
type Array struct {
	env    *environment.Environment
	policy Policy

	chips []*sid.SID

	// writes waiting for the multiplexer
	writes *queue.Ring[sid.Write]

	dropped atomic.Uint64

	crit     sync.Mutex
	overflow func(sid.Write)
}

// NewArray is the preferred method of initialisation for the Array type. The
// capacity of the write queue is enough to hold a write to every write-only
// register of every chip.
func NewArray(env *environment.Environment, numChips int, policy Policy) (*Array, error) {
	if numChips < 1 || numChips > sid.MaxChips {
		return nil, curated.Errorf(InvalidChipCount, sid.MaxChips, numChips)
	}

	switch policy {
	case Block, Reject:
	default:
		return nil, curated.Errorf(InvalidPolicy, policy)
	}

	arr := &Array{
		env:    env,
		policy: policy,
		chips:  make([]*sid.SID, numChips),
	}

	var err error
	arr.writes, err = queue.NewRing[sid.Write](numChips * sid.NumWriteRegisters)
	if err != nil {
		return nil, curated.Errorf("array: %v", err)
	}

	for i := range arr.chips {
		arr.chips[i] = sid.NewSID(i, sid.SinkFunc(arr.push))
	}

	logger.Logf(env, "sid array", "%d chips, %s on overflow, queue capacity %d", numChips, policy, arr.writes.Cap())

	return arr, nil
}

func (arr *Array) String() string {
	return fmt.Sprintf("%d chips, %d pending, %d dropped", len(arr.chips), arr.Pending(), arr.Dropped())
}

// push is the sink for every chip in the array
func (arr *Array) push(chip int, reg sid.Register, value uint8) {
	w := sid.Write{Chip: chip, Register: reg, Value: value}
	if arr.writes.Put(arr.policy, w) {
		return
	}

	arr.dropped.Add(1)
	logger.Logf(arr.env, "sid array", "queue full: dropped %s", w)

	arr.crit.Lock()
	f := arr.overflow
	arr.crit.Unlock()

	if f != nil {
		f(w)
	}
}

// SetOverflowHook sets the function that is called when a write is dropped
// because the queue is full. Only used with the Reject policy. The function is
// called from the context of the setter that caused the write. A nil function
// removes the hook.
func (arr *Array) SetOverflowHook(f func(sid.Write)) {
	arr.crit.Lock()
	defer arr.crit.Unlock()
	arr.overflow = f
}

// Chip returns the indexed chip. Chips are indexed from zero.
func (arr *Array) Chip(idx int) (*sid.SID, error) {
	if idx < 0 || idx >= len(arr.chips) {
		return nil, curated.Errorf(InvalidChip, idx)
	}
	return arr.chips[idx], nil
}

// NumChips returns the number of chips in the array.
func (arr *Array) NumChips() int {
	return len(arr.chips)
}

// Policy returns the overflow policy of the array.
func (arr *Array) Policy() Policy {
	return arr.policy
}

// Pending returns the number of writes waiting for the multiplexer.
func (arr *Array) Pending() int {
	return arr.writes.Len()
}

// Dropped returns the number of writes rejected because the queue was full.
func (arr *Array) Dropped() uint64 {
	return arr.dropped.Load()
}

// Refresh queues a write to every write-only register of every chip. See
// sid.SID.Refresh().
//
// The queue is large enough for every register of every chip. With the Block
// policy the function may still wait if the queue was not empty to begin with.
func (arr *Array) Refresh() {
	for _, c := range arr.chips {
		c.Refresh()
	}
}

// Clear forgets every pending write. The shadow registers of the chips are
// not changed so the chips on the bus may no longer match them. Call Refresh()
// to bring them back in line.
//
// A producer waiting for space in the queue is woken.
func (arr *Array) Clear() {
	n := arr.writes.Len()
	arr.writes.Clear()
	if n > 0 {
		logger.Logf(arr.env, "sid array", "cleared %d pending writes", n)
	}
}

// pop is used by the multiplexer
func (arr *Array) pop() (sid.Write, bool) {
	return arr.writes.Pop()
}
