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

// Package cpuinterface is the processor's view of the machine: the MSX slot
// structure for memory and the table of I/O ports.
//
// There are four primary slots, each of which can be expanded into four
// secondary slots. Each slot is divided into four pages of 16KB. The primary
// slot register (I/O port 0xA8) selects the primary slot for each page and
// the secondary slot register of an expanded primary slot (memory address
// 0xFFFF, read back inverted) selects the secondary slot for each page.
//
// Reads go through a cache of 256 byte lines. A line is filled by asking the
// device currently visible at the line for a direct view of its memory.
// Devices must call InvalidateCache() whenever such a view becomes stale.
package cpuinterface
