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

// Package queue implements a bounded first-in-first-out ring of values. It is
// used to pass register writes from the foreground context, where the chips
// are programmed, to the context that drives the bus.
//
// A full ring never overwrites a value that has not been popped. Producers
// choose what to do about a full ring by calling either TryPush(), which
// returns immediately, or Push(), which waits for the consumer to make room.
//
// Any number of goroutines may push. A single goroutine should pop. Push()
// must never be called from the popping goroutine because nothing would ever
// make room.
package queue
