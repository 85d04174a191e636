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

// Package emutime is the virtual time model. Time is counted in master ticks
// and MainFreq master ticks make one second of emulated time.
//
// EmuTime is an absolute instant and EmuDuration is the difference between
// two instants. Every timed call into emulated hardware is stamped with an
// EmuTime.
//
// Devices that tick at their own rate own a Clock. The Frequency of a Clock
// is fixed when the Frequency is created: the number of master ticks per
// device tick is computed once, with 96 bit precision and correct rounding,
// and divisions on the hot path are done by multiplying with a precomputed
// reciprocal (see DivModByConst).
//
// Asking a Clock about an instant before its last tick is a programming error
// and causes a panic.
package emutime
