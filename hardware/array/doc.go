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

// Package array ties a number of SID chips to a single shared bus.
//
// The Array type creates the chips and gives each of them a sink that tags
// every register write with the chip index and places it on a write queue
// shared by all the chips. The Multiplexer type takes writes from the front
// of the queue, one per tick, and drives the bus lines to deliver each write
// to the correct chip.
//
// Chips are programmed from the foreground context through the sid.SID type
// returned by Array.Chip(). The multiplexer is ticked from a different
// context, either a timer interrupt equivalent supplied by the program or the
// Run() function.
//
// What happens when the queue is full depends on the Policy given to
// NewArray(). The Block policy stalls the setter on the sid.SID until the
// multiplexer has made room. The Reject policy drops the write, counts it, and
// calls the overflow hook if one has been set with SetOverflowHook(). With the
// Block policy the foreground must never run in the same goroutine as the
// multiplexer.
//
// Each bus cycle is:
//
//  1. deassert all chip select lines
//  2. take one write from the queue (nothing more happens if the queue is empty)
//  3. drive the five address lines with the register address
//  4. drive the eight data lines with the value
//  5. assert the chip select line of the chip, hold, and deassert
//
// Chip select lines are active low.
package array
