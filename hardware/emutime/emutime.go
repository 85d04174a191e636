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
	"math"
)

// MainFreq is the number of master ticks in one second of emulated time.
const MainFreq = 3579545 * 960

// EmuTime is an absolute instant, in master ticks since power on.
type EmuTime uint64

// EmuDuration is a number of master ticks.
type EmuDuration uint64

// Zero is the first instant.
const Zero EmuTime = 0

// Infinity is an instant that is never reached.
const Infinity EmuTime = math.MaxUint64

// Add returns the instant d master ticks after t.
func (t EmuTime) Add(d EmuDuration) EmuTime {
	return t + EmuTime(d)
}

// Sub returns the duration between u and t. It panics if u is after t.
func (t EmuTime) Sub(u EmuTime) EmuDuration {
	if u > t {
		panic(fmt.Sprintf("emutime: %v is after %v", u, t))
	}
	return EmuDuration(t - u)
}

// Before returns true if t is earlier than u.
func (t EmuTime) Before(u EmuTime) bool {
	return t < u
}

// After returns true if t is later than u.
func (t EmuTime) After(u EmuTime) bool {
	return t > u
}

func (t EmuTime) String() string {
	if t == Infinity {
		return "infinity"
	}
	return fmt.Sprintf("%.9fs", float64(t)/MainFreq)
}

// Seconds returns the duration as a floating point number of seconds.
func (d EmuDuration) Seconds() float64 {
	return float64(d) / MainFreq
}

// DurationFromSeconds converts a number of seconds to the nearest duration.
func DurationFromSeconds(s float64) EmuDuration {
	return EmuDuration(math.Round(s * MainFreq))
}

func (d EmuDuration) String() string {
	return fmt.Sprintf("%.9fs", d.Seconds())
}
