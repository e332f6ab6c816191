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

// Package digest implements a pins.Bus that produces a cryptographic hash of
// the traffic on the bus instead of driving real hardware. The hash can be
// compared with the hash of a previous run. If the two differ then the
// sequence of pin operations has changed. This is the basis for regression
// tests of scripts and of the multiplexer.
//
// Operations are collected in a buffer. When the buffer is full it is hashed
// and the hash is kept at the start of the buffer, so that every operation
// since the last reset contributes to the current hash. The hash depends only
// on the sequence of operations.
package digest
