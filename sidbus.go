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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/sidbus/sidbus/dump"
	"github.com/sidbus/sidbus/environment"
	"github.com/sidbus/sidbus/hardware/array"
	"github.com/sidbus/sidbus/hardware/pins"
	"github.com/sidbus/sidbus/hardware/pins/capture"
	"github.com/sidbus/sidbus/hardware/pins/digest"
	"github.com/sidbus/sidbus/hardware/pins/serial"
	"github.com/sidbus/sidbus/logger"
	"github.com/sidbus/sidbus/modalflag"
	"github.com/sidbus/sidbus/notes"
	"github.com/sidbus/sidbus/performance"
	"github.com/sidbus/sidbus/prefs"
	"github.com/sidbus/sidbus/script"
	"github.com/sidbus/sidbus/statsview"
	"github.com/sidbus/sidbus/version"
)

const additionalHelp = `Scripts are written in Lua. The sid table provides access to the chips. For
example, to play middle A on the first voice of the first chip:

	sid.volume(1, 15)
	sid.envelope(1, 1, 0, 0, 15, 0)
	sid.waveform(1, 1, "triangle")
	sid.note(1, 1, 440)
	sid.gate(1, 1, true)
	sid.sleep(1000)
	sid.gate(1, 1, false)

Preferences can be set for a single run with the -prefs flag. For example:

	-prefs "array.chips::2; bus.rate::20000"`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:])
	stop()
	os.Exit(exitVal)
}

// launch returns the value to be used with os.Exit()
func launch(ctx context.Context, args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.AddSubModes("RUN", "CAPTURE", "DUMP", "PERFORMANCE")
	md.AdditionalHelp(additionalHelp)

	cmdlinePrefs := md.AddString("prefs", "", "preferences for this run only")
	log := md.AddBool("log", false, "echo log to stderr")
	showVersion := md.AddBool("version", false, "print version and exit")
	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	if *showVersion {
		fmt.Println(version.String())
		return 0
	}

	if *log {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			logger.SetEcho(logger.NewColorizer(os.Stderr), false)
		} else {
			logger.SetEcho(os.Stderr, false)
		}
	}

	if *cmdlinePrefs != "" {
		prefs.PushCommandLineStack(*cmdlinePrefs)
	}

	if stats != nil && *stats {
		statsview.Launch(ctx, os.Stdout)
	}

	env, err := environment.NewEnvironment(environment.MainLabel, nil)
	if err != nil {
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	if *cmdlinePrefs != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Printf("! unused preferences: %s\n", unused)
		}
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md, env)
	case "CAPTURE":
		err = captureBus(ctx, md, env)
	case "DUMP":
		err = dumpArray(ctx, md, env)
	case "PERFORMANCE":
		err = perform(ctx, md, env)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("! interrupted")
			return 0
		}
		fmt.Printf("* error in %s mode: %v\n", md, err)
		return 20
	}

	return 0
}

// scriptArg returns the single script filename required by every mode
func scriptArg(md *modalflag.Modes) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", fmt.Errorf("lua script required for %s mode", md)
	case 1:
		return md.GetArg(0), nil
	default:
		return "", fmt.Errorf("too many arguments for %s mode", md)
	}
}

func parseClock(s string) (notes.Clock, error) {
	switch strings.ToUpper(s) {
	case "PAL":
		return notes.ClockPAL, nil
	case "NTSC":
		return notes.ClockNTSC, nil
	}
	return 0, fmt.Errorf("unknown clock (%s)", s)
}

func newArray(env *environment.Environment) (*array.Array, error) {
	return array.NewArray(env, env.Prefs.NumChips.Get().(int), env.Prefs.Policy())
}

// play runs the script and the multiplexer side by side. the function returns
// once the script has ended and every write has been delivered to the bus
func play(ctx context.Context, env *environment.Environment, arr *array.Array, bus pins.Bus, filename string, clock notes.Clock) error {
	mx, err := array.NewMultiplexer(env, arr, bus, env.Prefs.PinMap(), env.Prefs.WritePulse())
	if err != nil {
		return err
	}
	mx.Setup()

	scr := script.NewScript(env, arr)
	scr.Clock = clock

	// the multiplexer runs until the script has finished and the queue has
	// drained. it is not an error for the multiplexer to be stopped this way
	busCtx, stopBus := context.WithCancel(ctx)
	defer stopBus()

	g, gctx := errgroup.WithContext(busCtx)

	g.Go(func() error {
		err := mx.Run(gctx, env.Prefs.TickPeriod())
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil
		}
		return err
	})

	g.Go(func() error {
		defer stopBus()

		arr.Refresh()
		if err := scr.RunFile(gctx, filename); err != nil {
			return err
		}

		drain := time.NewTicker(env.Prefs.TickPeriod())
		defer drain.Stop()
		for arr.Pending() > 0 {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-drain.C:
			}
		}
		return nil
	})

	// a script waiting for space in the queue is woken if the bus stops
	// early. the writes are of no use at that point
	g.Go(func() error {
		<-gctx.Done()
		arr.Clear()
		return nil
	})

	err = g.Wait()

	logger.Logf(env, "sidbus", "%s, %d dropped", mx, arr.Dropped())

	if err != nil {
		return err
	}
	return ctx.Err()
}

func run(ctx context.Context, md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()

	clock := md.AddString("clock", "PAL", "clock of the chips: PAL, NTSC")
	save := md.AddBool("save", false, "save preferences on success")
	profile := md.AddString("profile", "none", "run through profiler: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := scriptArg(md)
	if err != nil {
		return err
	}

	clk, err := parseClock(*clock)
	if err != nil {
		return err
	}

	arr, err := newArray(env)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	bus, err := serial.Open(env, env.Prefs.SerialDevice.String(), env.Prefs.SerialBaud.Get().(int))
	if err != nil {
		return err
	}
	defer bus.Close()

	err = performance.RunProfiler(prf, "run", func() error {
		return play(ctx, env, arr, bus, filename, clk)
	})
	if err != nil {
		return err
	}

	if err := bus.Err(); err != nil {
		return err
	}

	if *save {
		return env.Prefs.Save()
	}

	return nil
}

func captureBus(ctx context.Context, md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()

	clock := md.AddString("clock", "PAL", "clock of the chips: PAL, NTSC")
	wav := md.AddString("wav", "capture.wav", "wav file to write the bus lines to")
	rate := md.AddInt("samplerate", 1000000, "sample rate of the wav file")
	resolution := md.AddDuration("resolution", time.Microsecond, "duration of a sample")
	writes := md.AddBool("writes", false, "print the writes decoded from the bus")
	hash := md.AddBool("digest", false, "print a digest of the bus traffic")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := scriptArg(md)
	if err != nil {
		return err
	}

	clk, err := parseClock(*clock)
	if err != nil {
		return err
	}

	arr, err := newArray(env)
	if err != nil {
		return err
	}

	bus := capture.NewCapture()

	err = play(ctx, env, arr, bus, filename, clk)
	if err != nil {
		return err
	}

	if *writes {
		ws, err := bus.Decode(env.Prefs.PinMap())
		if err != nil {
			return err
		}
		for _, w := range ws {
			fmt.Println(w)
		}
	}

	if *hash {
		fmt.Println(busDigest(bus))
	}

	return bus.SaveWAV(*wav, *rate, *resolution)
}

// busDigest returns a hash of the line changes recorded by the capture. idle
// ticks leave every line unchanged so they make no difference to the hash
func busDigest(c *capture.Capture) string {
	dig := digest.NewBus()
	for _, op := range c.Changes() {
		dig.Apply(op)
	}
	return dig.Hash()
}

func dumpArray(ctx context.Context, md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()
	md.AddSubModes("REGISTERS", "STRUCTURE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	md.NewMode()

	clock := md.AddString("clock", "PAL", "clock of the chips: PAL, NTSC")
	output := md.AddString("out", "", "file to write to. stdout if empty")

	p, err = md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	filename, err := scriptArg(md)
	if err != nil {
		return err
	}

	clk, err := parseClock(*clock)
	if err != nil {
		return err
	}

	// the queue is drained into a capture so the script never waits for
	// the bus
	arr, err := newArray(env)
	if err != nil {
		return err
	}
	err = play(ctx, env, arr, capture.NewCapture(), filename, clk)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
		styled = false
	}

	switch md.Mode() {
	case "REGISTERS":
		return dump.Registers(w, arr, styled)
	case "STRUCTURE":
		dump.Structure(w, arr)
	}

	return nil
}

func perform(ctx context.Context, md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()

	duration := md.AddDuration("duration", 5*time.Second, "run time of the check")
	profile := md.AddString("profile", "none", "run through profiler: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	_, err = performance.Check(ctx, os.Stdout, env, prf, *duration)
	return err
}
