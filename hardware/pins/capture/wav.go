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

package capture

import (
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/hardware/pins"
	"github.com/sidbus/sidbus/logger"
)

// sample values for the two logic levels
const (
	lowSample  = 0x00
	highSample = 0xff
)

// WriteWAV encodes the recording as an 8 bit WAV file with one channel per
// configured pin. Every level change produces one frame. Every hold produces
// as many frames as fit in the hold duration at the given resolution, with a
// minimum of one.
//
// Pins that have been configured but not yet set are low.
func (c *Capture) WriteWAV(ws io.WriteSeeker, sampleRate int, resolution time.Duration) error {
	if sampleRate <= 0 {
		return curated.Errorf("capture: wav: sample rate must be positive (%d)", sampleRate)
	}
	if resolution <= 0 {
		return curated.Errorf("capture: wav: resolution must be positive (%s)", resolution)
	}

	c.crit.Lock()
	defer c.crit.Unlock()

	numChans := len(c.outputs)
	if numChans == 0 {
		return curated.Errorf("capture: wav: %v", "no pins have been configured")
	}

	channel := make(map[pins.Pin]int)
	for i, p := range c.outputs {
		channel[p] = i
	}

	frame := make([]int, numChans)
	for i := range frame {
		frame[i] = lowSample
	}

	data := make([]int, 0, len(c.ops)*numChans)
	for _, op := range c.ops {
		switch {
		case op.Configure:
		case op.Hold > 0:
			n := int(op.Hold / resolution)
			if n < 1 {
				n = 1
			}
			for i := 0; i < n; i++ {
				data = append(data, frame...)
			}
		default:
			ch, ok := channel[op.Pin]
			if !ok {
				continue
			}
			if op.Level == pins.High {
				frame[ch] = highSample
			} else {
				frame[ch] = lowSample
			}
			data = append(data, frame...)
		}
	}

	enc := wav.NewEncoder(ws, sampleRate, 8, numChans, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChans,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 8,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("capture: wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("capture: wav: %v", err)
	}

	return nil
}

// SaveWAV is a convenience function that creates the named file and calls
// WriteWAV().
func (c *Capture) SaveWAV(filename string, sampleRate int, resolution time.Duration) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("capture: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("capture: %v", err)
		}
	}()

	logger.Logf(logger.Allow, "capture", "writing bus capture to %s", filename)

	return c.WriteWAV(f, sampleRate, resolution)
}
