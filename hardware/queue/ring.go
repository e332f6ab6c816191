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

package queue

import (
	"sync"

	"github.com/sidbus/sidbus/curated"
)

// Sentinal error patterns. Use curated.Is() to test for them.
const (
	InvalidCapacity = "queue: capacity must be greater than zero (%d)"
)

// Ring is a bounded FIFO ring of values of type T.
type Ring[T any] struct {
	crit sync.Mutex

	// signalled whenever a slot is freed
	space *sync.Cond

	buf   []T
	read  int
	write int
	count int
}

// NewRing is the preferred method of initialisation for the Ring type.
func NewRing[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, curated.Errorf(InvalidCapacity, capacity)
	}
	r := &Ring[T]{
		buf: make([]T, capacity),
	}
	r.space = sync.NewCond(&r.crit)
	return r, nil
}

// push assumes the critical section is held and that there is space
func (r *Ring[T]) push(v T) {
	r.buf[r.write] = v
	r.write++
	if r.write >= len(r.buf) {
		r.write = 0
	}
	r.count++
}

// TryPush adds the value to the end of the ring. Returns false, without adding
// the value, if the ring is full.
func (r *Ring[T]) TryPush(v T) bool {
	r.crit.Lock()
	defer r.crit.Unlock()

	if r.count >= len(r.buf) {
		return false
	}
	r.push(v)
	return true
}

// Push adds the value to the end of the ring, waiting for space if the ring is
// full.
func (r *Ring[T]) Push(v T) {
	r.crit.Lock()
	defer r.crit.Unlock()

	for r.count >= len(r.buf) {
		r.space.Wait()
	}
	r.push(v)
}

// Pop removes and returns the value at the front of the ring. Returns false if
// the ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	r.crit.Lock()
	defer r.crit.Unlock()

	var v T
	if r.count == 0 {
		return v, false
	}

	v = r.buf[r.read]

	// zero the slot so that the ring does not keep references alive
	var z T
	r.buf[r.read] = z

	r.read++
	if r.read >= len(r.buf) {
		r.read = 0
	}
	r.count--

	r.space.Signal()

	return v, true
}

// Clear discards every value in the ring. Any goroutines waiting in Push()
// are woken.
func (r *Ring[T]) Clear() {
	r.crit.Lock()
	defer r.crit.Unlock()

	clear(r.buf)
	r.read = 0
	r.write = 0
	r.count = 0

	r.space.Broadcast()
}

// Len returns the number of values waiting in the ring.
func (r *Ring[T]) Len() int {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.count
}

// Cap returns the maximum number of values the ring can hold.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Full returns true if there is no room in the ring.
func (r *Ring[T]) Full() bool {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.count >= len(r.buf)
}

// Empty returns true if there is nothing in the ring.
func (r *Ring[T]) Empty() bool {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.count == 0
}
