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

// Package statsview runs a web server showing runtime statistics of the
// program. The statistics are useful when tuning the bus rate and queue
// policy, where garbage collection pauses show up as late writes.
//
// The server is only included when the program is built with the statsview
// build tag:
//
//	go build -tags=statsview .
//
// Without the tag Available() returns false and Launch() does nothing.
package statsview
