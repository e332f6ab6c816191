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

package environment

import (
	"github.com/sidbus/sidbus/hardware/preferences"
)

// Label is used to name the environment
type Label string

// MainLabel is the label of the environment used by the main program. Other
// environments, such as those used in tests, should use a different label.
const MainLabel = Label("")

// Environment is used to provide context for a chip array and its bus.
// Particularly useful when more than one array exists in the same program.
type Environment struct {
	Label Label

	// the array and bus preferences
	Prefs *preferences.Preferences

	// log entries are only made if Quiet is false
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type.
//
// The prefs argument can be nil, in which case a new Preferences instance is
// created from the global preferences file. Providing a non-nil value allows
// the preferences of more than one environment to be synchronised.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in an known default state. Useful for
// testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// IsMain returns true if the environment is intended for the main program
func (env *Environment) IsMain() bool {
	return env.Label == MainLabel
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Quiet
}
