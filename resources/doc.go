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

// Package resources contains functions to prepare paths for sidbus resources,
// such as the preferences file.
//
// The JoinPath() function returns the correct path to the resource
// directory/file specified in the arguments. It handles the creation of
// directories as required but does not otherwise touch or create files.
//
// If a directory named .sidbus exists in the current working directory then
// that is the base path. This is convenient during development and for
// portable installations. Otherwise the base path is rooted in the user's
// configuration directory. On modern Linux systems that would be something
// like:
//
//	/home/user/.config/sidbus/
package resources
