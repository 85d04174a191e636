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

package cpu

import (
	"fmt"

	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/state"
)

// Frequency of the processor clock.
var Frequency = emutime.Hz(3579545)

// Bus is the processor's view of memory and I/O.
type Bus interface {
	ReadMem(addr uint16, t emutime.EmuTime) uint8
	WriteMem(addr uint16, value uint8, t emutime.EmuTime)
	ReadIO(port uint8, t emutime.EmuTime) uint8
	WriteIO(port uint8, value uint8, t emutime.EmuTime)
}

// Core executes instructions.
type Core interface {
	Reset()

	// execute one instruction at the time of the clock and advance the
	// clock by the number of cycles the instruction took
	Step(bus Bus, clk *emutime.Clock)
}

// CPU is the processor shell.
type CPU struct {
	bus   Bus
	clock *emutime.Clock
	core  Core

	paused bool

	// number of instructions stepped since reset
	steps uint64
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(bus Bus, t emutime.EmuTime) *CPU {
	return &CPU{
		bus:   bus,
		clock: emutime.NewClock(Frequency, t),
	}
}

func (mc *CPU) String() string {
	s := "running"
	if mc.paused {
		s = "paused"
	}
	return fmt.Sprintf("cpu %s @ %v (%d steps)", s, mc.clock.Time(), mc.steps)
}

// SetCore sets the instruction core. A nil core makes the processor idle.
func (mc *CPU) SetCore(core Core) {
	mc.core = core
}

// Time returns the time of the processor clock.
func (mc *CPU) Time() emutime.EmuTime {
	return mc.clock.Time()
}

// Steps returns the number of instructions executed since the last reset.
func (mc *CPU) Steps() uint64 {
	return mc.steps
}

// Execute instructions until the processor clock reaches limit. Does nothing
// while paused.
func (mc *CPU) Execute(limit emutime.EmuTime) {
	if mc.paused {
		return
	}

	if mc.core == nil {
		if mc.clock.Before(limit) {
			mc.clock.Advance(limit)
		}
		return
	}

	for mc.clock.Before(limit) {
		before := mc.clock.Time()
		mc.core.Step(mc.bus, mc.clock)
		mc.steps++

		// every instruction takes at least one cycle
		if mc.clock.Time() == before {
			mc.clock.FastAdd(1)
		}
	}
}

// Pause instruction stepping.
func (mc *CPU) Pause() {
	mc.paused = true
}

// Unpause instruction stepping. The processor clock resumes from t.
func (mc *CPU) Unpause(t emutime.EmuTime) {
	if !mc.paused {
		return
	}
	mc.paused = false
	if mc.clock.Before(t) {
		mc.clock.Reset(t)
	}
}

// IsPaused returns true if instruction stepping is paused.
func (mc *CPU) IsPaused() bool {
	return mc.paused
}

// Reset the processor at time t.
func (mc *CPU) Reset(t emutime.EmuTime) {
	mc.clock.Reset(t)
	mc.steps = 0
	if mc.core != nil {
		mc.core.Reset()
	}
}

// Snapshot implements the state.Serialiser interface.
func (mc *CPU) Snapshot(a *state.Archive) {
	a.Put("paused", mc.paused)
	a.Put("steps", mc.steps)
	mc.clock.Snapshot(a.Child("clock", 1))
	if s, ok := mc.core.(state.Serialiser); ok {
		s.Snapshot(a.Child("core", 1))
	}
}

// Restore implements the state.Serialiser interface.
func (mc *CPU) Restore(a *state.Archive) error {
	if err := a.Get("paused", &mc.paused); err != nil {
		return err
	}
	if err := a.Get("steps", &mc.steps); err != nil {
		return err
	}

	c, err := a.Lookup("clock")
	if err != nil {
		return err
	}
	if err := mc.clock.Restore(c); err != nil {
		return err
	}

	if s, ok := mc.core.(state.Serialiser); ok {
		c, err := a.Lookup("core")
		if err != nil {
			return err
		}
		if err := s.Restore(c); err != nil {
			return err
		}
	}

	return nil
}
