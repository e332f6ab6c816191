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

package notes

import (
	"math"

	"github.com/sidbus/sidbus/curated"
)

// Clock is the frequency of the chip clock in Hz.
type Clock float64

// List of common Clock values.
const (
	ClockPAL  Clock = 985248
	ClockNTSC Clock = 1022727
)

// the number of oscillator steps in one cycle of the waveform
const accumulatorSteps = 1 << 24

// ratios of one tempered semitone and one cent
var (
	semitone = math.Pow(2, 1.0/12.0)
	cent     = math.Pow(2, 1.0/1200.0)
)

// Sentinal error patterns. Use curated.Is() to test for them.
const (
	OutOfRange = "notes: %.2fHz cannot be represented with a clock of %.0fHz"
)

// AddSemitones raises (or lowers, for negative n) the frequency by a number
// of tempered semitones.
func AddSemitones(hz float64, n int) float64 {
	return hz * math.Pow(semitone, float64(n))
}

// AddCents raises (or lowers, for negative n) the frequency by n cents
// multiplied by scale.
func AddCents(hz float64, n int, scale float64) float64 {
	return hz * math.Pow(cent, scale*float64(n))
}

// MIDI returns the frequency of a MIDI note number, with note 69 being A4 at
// 440Hz.
func MIDI(note int) float64 {
	return AddSemitones(440, note-69)
}

// Register returns the value of the frequency register that produces the
// frequency in Hz most closely.
func Register(hz float64, clock Clock) (uint16, error) {
	v := math.Round(hz * accumulatorSteps / float64(clock))
	if v < 0 || v > math.MaxUint16 || math.IsNaN(v) {
		return 0, curated.Errorf(OutOfRange, hz, float64(clock))
	}
	return uint16(v), nil
}

// Hz returns the frequency produced by a value in the frequency register.
func Hz(reg uint16, clock Clock) float64 {
	return float64(reg) * float64(clock) / accumulatorSteps
}
