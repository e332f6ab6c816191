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

// Package prefs facilitates the storage of preferences to disk.
//
// Preference values are created with one of the types in the package (Bool,
// String, Int or Float) and then added to a Disk instance with the Add()
// function. A key identifies the value in the preferences file.
//
//	var chips prefs.Int
//	dsk, _ := prefs.NewDisk(pth)
//	_ = dsk.Add("array.chips", &chips)
//	_ = dsk.Load(true)
//
// Values can be given hook functions, which are called before and after the
// value changes. An error from the pre hook prevents the change. This is the
// place to validate a value.
//
// The preferences file is plain text with one "key :: value" entry per line,
// sorted by key. Entries in the file that do not belong to the Disk instance
// being saved are preserved, meaning that more than one Disk can share the
// same file.
//
// Values can also be set from the command line. See PushCommandLineStack().
// Values from the command line take priority over values loaded from disk and
// are never saved.
package prefs
