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

package serial

import (
	"bufio"
	"io"
	"time"

	"github.com/pkg/term"

	"github.com/sidbus/sidbus/curated"
	"github.com/sidbus/sidbus/hardware/pins"
	"github.com/sidbus/sidbus/logger"
)

// List of frame commands.
const (
	CmdOutput = 'O'
	CmdHigh   = 'H'
	CmdLow    = 'L'
	CmdDelay  = 'D'
)

// the longest delay that can be sent in a single frame
const maxDelay = 255 * time.Microsecond

// Serial implements the pins.Bus, pins.Holder and pins.Flusher interfaces.
type Serial struct {
	perm logger.Permission

	w *bufio.Writer
	c io.Closer

	// the first error encountered. once an error has occurred no further
	// frames are sent
	err error
}

// Open the named serial device at the specified baud rate. The device is put
// into raw mode.
func Open(perm logger.Permission, device string, baud int) (*Serial, error) {
	t, err := term.Open(device, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, curated.Errorf("serial pins: %v", err)
	}
	logger.Logf(perm, "serial pins", "opened %s at %d baud", device, baud)
	return NewSerial(perm, t), nil
}

// NewSerial sends frames to the io.Writer. If the writer also implements
// io.Closer then it will be closed by Close().
func NewSerial(perm logger.Permission, w io.Writer) *Serial {
	s := &Serial{
		perm: perm,
		w:    bufio.NewWriter(w),
	}
	if c, ok := w.(io.Closer); ok {
		s.c = c
	}
	return s
}

func (s *Serial) frame(cmd byte, arg uint8) {
	if s.err != nil {
		return
	}
	_, err := s.w.Write([]byte{cmd, arg})
	if err != nil {
		s.fail(err)
	}
}

func (s *Serial) fail(err error) {
	s.err = curated.Errorf("serial pins: %v", err)
	logger.Log(s.perm, "serial pins", s.err)
}

// ConfigureOutput implements the pins.Bus interface.
func (s *Serial) ConfigureOutput(pin pins.Pin) {
	s.frame(CmdOutput, uint8(pin))
}

// SetLevel implements the pins.Bus interface.
func (s *Serial) SetLevel(pin pins.Pin, level pins.Level) {
	if level == pins.High {
		s.frame(CmdHigh, uint8(pin))
	} else {
		s.frame(CmdLow, uint8(pin))
	}
}

// Hold implements the pins.Holder interface. Durations longer than can fit in
// a single frame are split over several frames. A duration of less than one
// microsecond is sent as one microsecond.
func (s *Serial) Hold(d time.Duration) {
	for d > maxDelay {
		s.frame(CmdDelay, uint8(maxDelay/time.Microsecond))
		d -= maxDelay
	}
	us := d / time.Microsecond
	if us < 1 {
		us = 1
	}
	s.frame(CmdDelay, uint8(us))
}

// Flush implements the pins.Flusher interface.
func (s *Serial) Flush() error {
	if s.err != nil {
		return s.err
	}
	if err := s.w.Flush(); err != nil {
		s.fail(err)
	}
	return s.err
}

// Err returns the first error encountered, if any.
func (s *Serial) Err() error {
	return s.err
}

// Close flushes any waiting frames and closes the underlying device.
func (s *Serial) Close() error {
	err := s.Flush()
	if s.c != nil {
		if cerr := s.c.Close(); cerr != nil && err == nil {
			err = curated.Errorf("serial pins: %v", cerr)
		}
	}
	return err
}
