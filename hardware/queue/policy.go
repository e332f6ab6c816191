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
	"strings"

	"github.com/sidbus/sidbus/curated"
)

// Policy describes what a producer does when the ring is full.
type Policy int

// List of valid Policy values.
const (
	// Block waits for the consumer to make room. See Ring.Push().
	Block Policy = iota

	// Reject discards the new value. See Ring.TryPush().
	Reject
)

// InvalidPolicy is the sentinal error pattern returned by ParsePolicy().
const InvalidPolicy = "queue: unrecognised overflow policy (%s)"

func (p Policy) String() string {
	switch p {
	case Block:
		return "block"
	case Reject:
		return "reject"
	}
	return "unknown"
}

// ParsePolicy converts the name of a policy, as returned by String(), to a
// Policy value. The comparison is not case sensitive.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return Block, nil
	case "reject":
		return Reject, nil
	}
	return Block, curated.Errorf(InvalidPolicy, s)
}

// Put adds a value to the ring according to the policy. Returns false if the
// value was rejected. Always returns true for the Block policy.
func (r *Ring[T]) Put(p Policy, v T) bool {
	if p == Reject {
		return r.TryPush(v)
	}
	r.Push(v)
	return true
}
