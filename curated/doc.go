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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created by the
// Errorf() function with a specific pattern. For example:
//
//	e := curated.Errorf("voice: value out of range (%d)", 16)
//
//	if curated.Is(e, "voice: value out of range (%d)") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
// Patterns that callers are expected to test for should be stored as an
// exported const string, suitably named, next to the code that raises the
// error.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For example, an error wrapped like this:
//
//	curated.Errorf("array: %v", curated.Errorf("array: chip index out of range"))
//
// is printed as:
//
//	array: chip index out of range
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ": ". For example:
//
//	part 1: part 2: part 3
package curated
