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

package sid

import (
	"fmt"

	"github.com/sidbus/sidbus/curated"
)

// Misc holds the last known values of the read-only registers of a SID.
//
// The bus driven by this module is write-only so nothing in the module reads
// these registers from the chip. A transport that can read them back should
// store the values with Latch().
type Misc struct {
	regs [NumReadRegisters]uint8
}

func (m *Misc) String() string {
	return fmt.Sprintf("potx=%02x poty=%02x osc3=%02x env3=%02x", m.PotX(), m.PotY(), m.Osc3(), m.Env3())
}

// Latch stores the value of a read-only register.
func (m *Misc) Latch(reg Register, v uint8) error {
	if reg < PotX || reg > Env3 {
		return curated.Errorf("sid: %s: not a read-only register", reg)
	}
	m.regs[reg-PotX] = v
	return nil
}

// PotX returns the last known value of the POTX register.
func (m *Misc) PotX() uint8 {
	return m.regs[PotX-PotX]
}

// PotY returns the last known value of the POTY register.
func (m *Misc) PotY() uint8 {
	return m.regs[PotY-PotX]
}

// Osc3 returns the last known value of the OSC3 register.
func (m *Misc) Osc3() uint8 {
	return m.regs[Osc3-PotX]
}

// Env3 returns the last known value of the ENV3 register.
func (m *Misc) Env3() uint8 {
	return m.regs[Env3-PotX]
}
