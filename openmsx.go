// This file is part of openMSX.
//
// openMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// openMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with openMSX.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/machine"
	"github.com/jlautenbag/openMSX/hardware/memory/cartridge"
	"github.com/jlautenbag/openMSX/hardware/preferences"
	"github.com/jlautenbag/openMSX/hardware/slots"
	"github.com/jlautenbag/openMSX/hardware/sound/dac"
	"github.com/jlautenbag/openMSX/logger"
	"github.com/jlautenbag/openMSX/modalflag"
	"github.com/jlautenbag/openMSX/paths"
	"github.com/jlautenbag/openMSX/prefs"
	"github.com/jlautenbag/openMSX/romloader"
	"github.com/jlautenbag/openMSX/statsview"
	"github.com/jlautenbag/openMSX/terminal"
	"github.com/jlautenbag/openMSX/version"
	"golang.org/x/sync/errgroup"
)

// length of emulated time run between checks for key presses and, when
// running in real time, between ticks of the host clock.
const sliceSeconds = 0.02

// the directory in the resource path searched for hardware configurations.
const hardwareDir = "hardware"

// the prefix used for snapshot filenames when -save is AUTO.
const snapshotPrefix = "snapshot"

// preferencesPath returns the path of the preferences file. replaced in
// tests so that the user's preferences are not touched.
var preferencesPath = preferences.DefaultPath

// hardwarePath returns the directory searched for hardware configurations.
var hardwarePath = func() (string, error) {
	return paths.ResourcePath(hardwareDir, "")
}

func main() {
	os.Exit(launch(os.Stdout, os.Args[1:]))
}

// launch the mode selected by the command line arguments. returns the exit
// status of the program.
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "DETECT", "GRAPH", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output)

	case "DETECT":
		err = detect(md, output)

	case "GRAPH":
		err = graph(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.Version())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// loadPreferences from the default location and apply any overrides given
// on the command line.
func loadPreferences(output io.Writer, overrides string) (*preferences.Preferences, error) {
	pth, err := preferencesPath()
	if err != nil {
		return nil, err
	}

	p, err := preferences.NewPreferences(pth)
	if err != nil {
		return nil, err
	}

	unused, err := p.Apply(prefs.ParseOverrides(overrides))
	if err != nil {
		return nil, err
	}
	for _, k := range unused {
		fmt.Fprintf(output, "! unknown preference: %s\n", k)
	}

	return p, nil
}

// newMachine creates the named machine and loads the comma separated list of
// extensions into it.
func newMachine(p *preferences.Preferences, name string, extensions string) (*machine.Machine, error) {
	dir, err := hardwarePath()
	if err != nil {
		return nil, err
	}

	m, err := machine.NewMachine("", p, config.NewRepository(dir), name)
	if err != nil {
		return nil, err
	}

	for _, e := range splitList(extensions) {
		if _, err := m.LoadExtension(e, slots.AnySlot); err != nil {
			m.Destroy()
			return nil, err
		}
	}

	return m, nil
}

func splitList(s string) []string {
	var l []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			l = append(l, e)
		}
	}
	return l
}

// cartridgeConfig creates the extension configuration for a ROM cartridge.
// the cartridge covers the whole address space of whichever slot it is
// inserted into.
func cartridgeConfig(filename string, mapping string) *config.HardwareConfig {
	name := romloader.NewLoader(filename).ShortName()
	return &config.HardwareConfig{
		Name:        name,
		IsExtension: true,
		Devices: []config.DeviceConfig{
			{
				Type: "ROM",
				ID:   name,
				Params: map[string]string{
					"filename":   filename,
					"mappertype": mapping,
				},
				Placements: []config.Placement{
					{PS: config.AnySlot, SS: config.NotExpanded, Base: 0x0000, Size: 0x10000},
				},
			},
		},
	}
}

// findDAC returns the first DAC of the machine's devices.
func findDAC(m *machine.Machine) *dac.DAC {
	for _, d := range m.Devices() {
		if r, ok := d.(interface{ DAC() *dac.DAC }); ok {
			if dc := r.DAC(); dc != nil {
				return dc
			}
		}
	}
	return nil
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	overrides := md.AddString("prefs", "", "preference overrides (key::value; key::value)")
	machineName := md.AddString("machine", "default", "hardware configuration of the machine")
	extensions := md.AddString("ext", "", "comma separated list of extensions to load")
	mapping := md.AddString("mapper", "auto", "force use of cartridge mapper type")
	duration := md.AddInt("duration", 0, "emulated milliseconds to run for. zero runs until quit")
	fast := md.AddBool("fast", false, "do not limit emulation to real time")
	wav := md.AddString("dac", "", "record the cartridge DAC to wav file")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	save := md.AddString("save", "", "save snapshot to file on exit. AUTO creates a unique filename")
	load := md.AddString("load", "", "restore snapshot from file before running")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	md.AdditionalHelp("keys while running: p pause, r reset, q quit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if stats != nil && *stats {
		statsview.Launch(output)
	}

	if *duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}

	prf, err := loadPreferences(output, *overrides)
	if err != nil {
		return err
	}

	m, err := newMachine(prf, *machineName, *extensions)
	if err != nil {
		return err
	}
	defer m.Destroy()

	for _, fn := range md.RemainingArgs() {
		name, err := m.InsertExtension(romloader.NewLoader(fn).ShortName(), cartridgeConfig(fn, *mapping), slots.AnySlot)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "* inserted %s\n", name)
	}

	if *load != "" {
		data, err := os.ReadFile(*load)
		if err != nil {
			return err
		}
		if err := m.Restore(data); err != nil {
			return err
		}
	} else {
		m.PowerUp()
	}
	m.Activate(true)

	var rec *dac.DAC
	if *wav != "" {
		rec = findDAC(m)
		if rec == nil {
			return fmt.Errorf("no DAC to record")
		}
		if err := rec.Record(*wav); err != nil {
			return err
		}
	}

	end := emutime.Infinity
	if *duration > 0 {
		end = m.CurrentTime().Add(emutime.DurationFromSeconds(float64(*duration) / 1000))
	}

	start := m.CurrentTime()
	if err := emulate(m, end, *fast, output); err != nil {
		return err
	}

	if rec != nil {
		if err := rec.StopRecording(m.CurrentTime()); err != nil {
			return err
		}
	}

	if *save != "" {
		fn := *save
		if strings.EqualFold(fn, "AUTO") {
			fn = paths.UniqueFilename(snapshotPrefix, m.Config.Name) + ".json"
		}
		data, err := m.Snapshot()
		if err != nil {
			return err
		}
		if err := os.WriteFile(fn, data, 0o600); err != nil {
			return err
		}
		fmt.Fprintf(output, "* snapshot saved to %s\n", fn)
	}

	fmt.Fprintf(output, "* %s ran for %.3fs (%s)\n", m, m.CurrentTime().Sub(start).Seconds(), m.State())

	return nil
}

// emulate runs the machine until the end time is reached, the user quits or
// the program is interrupted. keyboard control is only available if stdin
// is a terminal.
func emulate(m *machine.Machine, end emutime.EmuTime, fast bool, output io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan rune, 8)

	if terminal.IsTerminal(os.Stdin) {
		kb, err := terminal.OpenKeys(os.Stdin)
		if err != nil {
			logger.Log(logger.Allow, "openmsx", err)
		} else {
			g.Go(func() error {
				defer kb.Close()
				for {
					r, err := kb.Read(ctx)
					if err != nil {
						if ctx.Err() != nil {
							return nil
						}
						return err
					}
					select {
					case keys <- r:
					case <-ctx.Done():
						return nil
					}
				}
			})
		}
	}

	g.Go(func() error {
		defer cancel()
		return loop(ctx, m, keys, end, fast, output)
	})

	return g.Wait()
}

// loop executes the machine in slices of emulated time. the machine is only
// ever touched by the goroutine running the loop.
func loop(ctx context.Context, m *machine.Machine, keys <-chan rune, end emutime.EmuTime, fast bool, output io.Writer) error {
	slice := emutime.DurationFromSeconds(sliceSeconds)

	var tick <-chan time.Time
	if !fast {
		t := time.NewTicker(time.Duration(sliceSeconds * float64(time.Second)))
		defer t.Stop()
		tick = t.C
	}

	for {
		if fast {
			select {
			case <-ctx.Done():
				return nil
			case k := <-keys:
				if handleKey(m, k, output) {
					return nil
				}
			default:
			}
		} else {
			select {
			case <-ctx.Done():
				return nil
			case k := <-keys:
				if handleKey(m, k, output) {
					return nil
				}
				continue
			case <-tick:
			}
		}

		limit := m.CurrentTime().Add(slice)
		if limit.After(end) {
			limit = end
		}
		if !m.Execute(limit) {
			return nil
		}
		if !m.CurrentTime().Before(end) {
			return nil
		}
	}
}

// handleKey returns true if the key asks for the emulation to end.
func handleKey(m *machine.Machine, k rune, output io.Writer) bool {
	switch unicode.ToLower(k) {
	case 'p':
		if m.State() == machine.Paused {
			m.Unpause()
		} else {
			m.Pause()
		}
		fmt.Fprintf(output, "\r* %s\n", m.State())
	case 'r':
		m.Reset()
		fmt.Fprintf(output, "\r* reset\n")
	case 'q':
		return true
	}
	return false
}

func detect(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	overrides := md.AddString("prefs", "", "preference overrides (key::value; key::value)")
	romdb := md.AddString("romdb", "", "ROM database to use instead of the preferred database")
	mapping := md.AddString("mapper", "auto", "force use of cartridge mapper type")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("ROM file required for %s mode", md)
	}

	prf, err := loadPreferences(output, *overrides)
	if err != nil {
		return err
	}
	if *romdb != "" {
		if err := prf.ROMDatabase.Set(*romdb); err != nil {
			return err
		}
	}

	env, err := environment.NewEnvironment("detect", prf)
	if err != nil {
		return err
	}
	env.Quiet = true

	for _, fn := range md.RemainingArgs() {
		ld := romloader.NewLoader(fn)
		if err := ld.Load(); err != nil {
			return err
		}
		det, err := cartridge.Resolve(env, *mapping, ld.Data, ld.Hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%s: %s [%s]\n", filepath.Base(fn), det, ld.Hash)
	}

	return nil
}

func graph(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	overrides := md.AddString("prefs", "", "preference overrides (key::value; key::value)")
	machineName := md.AddString("machine", "default", "hardware configuration of the machine")
	extensions := md.AddString("ext", "", "comma separated list of extensions to load")
	outfile := md.AddString("o", "", "write graph to file rather than stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := loadPreferences(output, *overrides)
	if err != nil {
		return err
	}

	m, err := newMachine(prf, *machineName, *extensions)
	if err != nil {
		return err
	}
	defer m.Destroy()

	m.PowerUp()

	w := output
	if *outfile != "" {
		f, err := os.Create(*outfile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	m.DumpGraph(w)

	return nil
}
