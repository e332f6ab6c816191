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

package performance

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/sidbus/sidbus/environment"
	"github.com/sidbus/sidbus/hardware/array"
	"github.com/sidbus/sidbus/hardware/pins/digest"
)

// Result of a performance check.
type Result struct {
	Duration time.Duration
	Written  uint64
	Dropped  uint64
	Digest   string
}

func (r Result) String() string {
	return fmt.Sprintf("%d writes in %s (%.0f writes/s), %d dropped", r.Written, r.Duration.Round(time.Millisecond), r.Rate(), r.Dropped)
}

// Rate returns the number of writes delivered per second.
func (r Result) Rate() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Written) / r.Duration.Seconds()
}

// Check the performance of the multiplexer for the specified duration. A
// producer refreshes every chip in the array as quickly as it can while the
// multiplexer delivers the writes to the bus without pause.
//
// The array and the pin map are created from the environment's preferences.
func Check(ctx context.Context, output io.Writer, env *environment.Environment, profile Profile, duration time.Duration) (Result, error) {
	var res Result

	arr, err := array.NewArray(env, env.Prefs.NumChips.Get().(int), env.Prefs.Policy())
	if err != nil {
		return res, err
	}

	bus := digest.NewBus()
	mx, err := array.NewMultiplexer(env, arr, bus, env.Prefs.PinMap(), env.Prefs.WritePulse())
	if err != nil {
		return res, err
	}
	mx.Setup()

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	runner := func() error {
		done := make(chan bool)

		go func() {
			defer close(done)
			for ctx.Err() == nil {
				arr.Refresh()
			}
		}()

		start := time.Now()
		for ctx.Err() == nil {
			if !mx.Tick() {
				runtime.Gosched()
			}
		}
		res.Duration = time.Since(start)

		// the producer may be waiting for space in the queue
		arr.Clear()
		<-done

		return nil
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return res, err
	}

	res.Written = mx.Written()
	res.Dropped = arr.Dropped()
	res.Digest = bus.Hash()

	fmt.Fprintln(output, res)

	return res, nil
}
