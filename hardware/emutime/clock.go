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

package emutime

import (
	"fmt"

	"github.com/jlautenbag/openMSX/hardware/state"
)

// Clock is the time of the most recent tick of a device running at a fixed
// Frequency. A Clock is owned by exactly one device.
type Clock struct {
	freq     *Frequency
	lastTick EmuTime
}

// NewClock is the preferred method of initialisation for the Clock type.
func NewClock(freq *Frequency, t EmuTime) *Clock {
	return &Clock{
		freq:     freq,
		lastTick: t,
	}
}

func (c *Clock) String() string {
	return fmt.Sprintf("%v @ %v", c.freq, c.lastTick)
}

// Frequency returns the frequency of the clock.
func (c *Clock) Frequency() *Frequency {
	return c.freq
}

// Time returns the time of the last tick.
func (c *Clock) Time() EmuTime {
	return c.lastTick
}

// Before returns true if the last tick is earlier than t.
func (c *Clock) Before(t EmuTime) bool {
	return c.lastTick < t
}

func (c *Clock) elapsed(t EmuTime) uint64 {
	if t < c.lastTick {
		panic(fmt.Sprintf("emutime: clock at %v asked about earlier time %v", c.lastTick, t))
	}
	return uint64(t - c.lastTick)
}

// TicksUntil returns the number of whole ticks between the last tick and t.
// Panics if t is before the last tick.
func (c *Clock) TicksUntil(t EmuTime) uint64 {
	return c.freq.div.Div(c.elapsed(t))
}

// TicksUntilRoundUp is like TicksUntil but a partial tick counts as a whole
// tick.
func (c *Clock) TicksUntilRoundUp(t EmuTime) uint64 {
	return c.freq.div.Div(c.elapsed(t) + c.freq.masterTicks - 1)
}

// Advance the clock to the latest tick that is not after t. Panics if t is
// before the last tick.
func (c *Clock) Advance(t EmuTime) {
	e := c.elapsed(t)
	c.lastTick = t - EmuTime(c.freq.div.Mod(e))
}

// Add n ticks to the clock. Safe for any n that does not overflow the 64 bit
// master tick counter.
func (c *Clock) Add(n uint64) {
	c.lastTick += EmuTime(n * c.freq.masterTicks)
}

// FastAdd adds n ticks to the clock. The resulting master tick delta must fit
// in 32 bits. Use Add() for long intervals.
func (c *Clock) FastAdd(n uint64) {
	d := n * c.freq.masterTicks
	if n >= 1<<32 || d >= 1<<32 {
		panic(fmt.Sprintf("emutime: FastAdd(%d) overflows for %v", n, c.freq))
	}
	c.lastTick += EmuTime(d)
}

// Plus returns the time of the last tick plus n ticks. The clock is not
// changed.
func (c *Clock) Plus(n uint64) EmuTime {
	return c.lastTick + EmuTime(n*c.freq.masterTicks)
}

// Reset the clock to t. The new time need not be a whole number of ticks
// from the old time.
func (c *Clock) Reset(t EmuTime) {
	c.lastTick = t
}

// Snapshot implements the state.Serialiser interface.
func (c *Clock) Snapshot(a *state.Archive) {
	a.Put("lastTick", uint64(c.lastTick))
}

// Restore implements the state.Serialiser interface.
func (c *Clock) Restore(a *state.Archive) error {
	var t uint64
	if err := a.Get("lastTick", &t); err != nil {
		return err
	}
	c.lastTick = EmuTime(t)
	return nil
}
