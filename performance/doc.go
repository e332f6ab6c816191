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

// Package performance measures how quickly the multiplexer can deliver
// register writes. The measurement uses a bus that hashes the pin traffic
// rather than driving real hardware, so the result is the upper limit of the
// software side of the bus. Any real bus will be slower.
//
// The check can be run through the CPU profiler, the memory profiler or the
// execution tracer. See RunProfiler().
package performance
