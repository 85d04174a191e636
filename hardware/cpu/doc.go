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

// Package cpu is the processor shell of the emulated machine. It owns the
// processor clock, running at the Z80 rate of 3.579545MHz, and drives an
// optional instruction Core. Instruction semantics are the responsibility of
// the Core. Without a Core the processor idles, its clock following the
// machine's timeline.
//
// Pausing the processor stops instruction stepping only. The rest of the
// machine keeps running.
package cpu
