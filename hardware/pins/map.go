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

package pins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sidbus/sidbus/curated"
)

// Sentinal error patterns. Use curated.Is() to test for them.
const (
	NotEnoughSelects = "pins: map has %d chip select lines but %d chips"
	DuplicatePin     = "pins: pin %d used more than once"
	InvalidMap       = "pins: invalid map: %v"
)

// The number of lines of each type.
const (
	NumAddressLines = 5
	NumDataLines    = 8
)

// Map assigns a pin to every line of the bus. Address and data lines are
// ordered least significant bit first. Select lines are ordered by chip index.
type Map struct {
	Address [NumAddressLines]Pin
	Data    [NumDataLines]Pin
	Select  []Pin
}

// ArduinoNano is the wiring used by the reference hardware. Address lines on
// A0 to A4, data lines on the digital pins either side of the phi2 clock on D6
// and chip selects on A5, D11, D12 and D13.
var ArduinoNano = Map{
	Address: [NumAddressLines]Pin{14, 15, 16, 17, 18},
	Data:    [NumDataLines]Pin{2, 3, 4, 5, 7, 8, 9, 10},
	Select:  []Pin{19, 11, 12, 13},
}

// Validate checks that the map has enough chip select lines for the number of
// chips and that no pin is used for more than one line.
func (m Map) Validate(numChips int) error {
	if len(m.Select) < numChips {
		return curated.Errorf(NotEnoughSelects, len(m.Select), numChips)
	}

	seen := make(map[Pin]bool)
	check := func(p Pin) error {
		if seen[p] {
			return curated.Errorf(DuplicatePin, p)
		}
		seen[p] = true
		return nil
	}

	for _, p := range m.Address {
		if err := check(p); err != nil {
			return err
		}
	}
	for _, p := range m.Data {
		if err := check(p); err != nil {
			return err
		}
	}
	for _, p := range m.Select[:numChips] {
		if err := check(p); err != nil {
			return err
		}
	}

	return nil
}

// String returns the map in the form accepted by ParseMap().
func (m Map) String() string {
	join := func(p []Pin) string {
		s := make([]string, len(p))
		for i := range p {
			s[i] = strconv.Itoa(int(p[i]))
		}
		return strings.Join(s, ",")
	}
	return fmt.Sprintf("addr=%s;data=%s;cs=%s", join(m.Address[:]), join(m.Data[:]), join(m.Select))
}

// ParseMap creates a Map from a string of the form:
//
//	addr=14,15,16,17,18;data=2,3,4,5,7,8,9,10;cs=19,11,12,13
//
// The string "nano" is shorthand for the ArduinoNano map. Sections can appear
// in any order but all three must be present.
func ParseMap(s string) (Map, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nano") {
		return ArduinoNano.clone(), nil
	}

	var m Map
	var haveAddr, haveData, haveSelect bool

	for _, sect := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(sect, "=")
		if !ok {
			return Map{}, curated.Errorf(InvalidMap, fmt.Sprintf("section without '=' (%s)", sect))
		}

		pins, err := parsePins(v)
		if err != nil {
			return Map{}, curated.Errorf(InvalidMap, err)
		}

		switch strings.ToLower(strings.TrimSpace(k)) {
		case "addr":
			if len(pins) != NumAddressLines {
				return Map{}, curated.Errorf(InvalidMap, fmt.Sprintf("%d address lines required", NumAddressLines))
			}
			copy(m.Address[:], pins)
			haveAddr = true
		case "data":
			if len(pins) != NumDataLines {
				return Map{}, curated.Errorf(InvalidMap, fmt.Sprintf("%d data lines required", NumDataLines))
			}
			copy(m.Data[:], pins)
			haveData = true
		case "cs":
			m.Select = pins
			haveSelect = true
		default:
			return Map{}, curated.Errorf(InvalidMap, fmt.Sprintf("unknown section (%s)", k))
		}
	}

	if !haveAddr || !haveData || !haveSelect {
		return Map{}, curated.Errorf(InvalidMap, "addr, data and cs sections are all required")
	}

	return m, nil
}

func parsePins(s string) ([]Pin, error) {
	var pins []Pin
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return nil, err
		}
		pins = append(pins, Pin(n))
	}
	return pins, nil
}

func (m Map) clone() Map {
	c := m
	c.Select = append([]Pin(nil), m.Select...)
	return c
}
