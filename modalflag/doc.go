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

// Package modalflag wraps the flag package of the standard library and adds
// program modes. Each mode has its own set of flags and its own help message.
//
// The sequence of calls is NewArgs(), then the flags and sub-modes for the
// first level, then Parse(). For example, the top level of sidbus:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "CAPTURE", "DUMP")
//	prefs := md.AddString("prefs", "", "preferences for this run only")
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
// The first sub-mode is the default and is selected when the first non-flag
// argument does not name a mode. Comparison is case insensitive. After Parse()
// the selected mode is returned by Mode().
//
// Flags for the selected mode are added after calling NewMode() and are
// processed by a second call to Parse():
//
//	md.NewMode()
//	wav := md.AddString("wav", "capture.wav", "wav file to write")
//	if r, err := md.Parse(); r != modalflag.ParseContinue {
//		return err
//	}
//
// Path() returns every mode selected so far, separated by a slash. It is used
// in the banner of help messages. Arguments that are neither flags nor a mode
// are returned by RemainingArgs() and GetArg().
package modalflag
