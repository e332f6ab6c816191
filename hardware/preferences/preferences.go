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

package preferences

import (
	"time"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/hardware/pins"
	"github.com/sidbus/sidbus/hardware/queue"
	"github.com/sidbus/sidbus/hardware/sid"
	"github.com/sidbus/sidbus/prefs"
	"github.com/sidbus/sidbus/resources"
)

// Preferences defines and collates all the preference values used by the chip
// array and the bus.
type Preferences struct {
	dsk *prefs.Disk

	NumChips prefs.Int
	Overflow prefs.String

	// write pulse in microseconds. one microsecond is a full cycle of the
	// 1MHz phi2 clock, which is the minimum the chip requires
	Pulse prefs.Int

	// bus ticks per second
	Rate prefs.Int

	Pins prefs.String

	SerialDevice prefs.String
	SerialBaud   prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values are loaded from the global preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is the same as NewPreferences() but with a specific
// preferences file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.NumChips.SetHookPre(func(v prefs.Value) error {
		n := v.(int)
		if n < 1 || n > sid.MaxChips {
			return curated.Errorf("preferences: array.chips must be between 1 and %d (%d)", sid.MaxChips, n)
		}
		return nil
	})
	p.Overflow.SetHookPre(func(v prefs.Value) error {
		_, err := queue.ParsePolicy(v.(string))
		return err
	})
	p.Pulse.SetHookPre(positive("bus.pulse"))
	p.Rate.SetHookPre(positive("bus.rate"))
	p.Pins.SetHookPre(func(v prefs.Value) error {
		_, err := pins.ParseMap(v.(string))
		return err
	})
	p.SerialBaud.SetHookPre(positive("serial.baud"))

	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("array.chips", &p.NumChips)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("array.overflow", &p.Overflow)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("bus.pulse", &p.Pulse)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("bus.rate", &p.Rate)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("bus.pins", &p.Pins)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("serial.device", &p.SerialDevice)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("serial.baud", &p.SerialBaud)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

func positive(key string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if v.(int) <= 0 {
			return curated.Errorf("preferences: %s must be greater than zero (%d)", key, v)
		}
		return nil
	}
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	// the default values are all valid so the errors can be ignored
	_ = p.NumChips.Set(1)
	_ = p.Overflow.Set(queue.Block.String())
	_ = p.Pulse.Set(1)
	_ = p.Rate.Set(10000)
	_ = p.Pins.Set(pins.ArduinoNano.String())
	_ = p.SerialDevice.Set("/dev/ttyUSB0")
	_ = p.SerialBaud.Set(115200)
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Policy returns the overflow policy.
func (p *Preferences) Policy() queue.Policy {
	// the value has been validated by the hook
	policy, _ := queue.ParsePolicy(p.Overflow.String())
	return policy
}

// PinMap returns the pin map.
func (p *Preferences) PinMap() pins.Map {
	// the value has been validated by the hook
	m, _ := pins.ParseMap(p.Pins.String())
	return m
}

// WritePulse returns the write pulse as a duration.
func (p *Preferences) WritePulse() time.Duration {
	return time.Duration(p.Pulse.Get().(int)) * time.Microsecond
}

// TickPeriod returns the time between bus ticks.
func (p *Preferences) TickPeriod() time.Duration {
	return time.Second / time.Duration(p.Rate.Get().(int))
}
