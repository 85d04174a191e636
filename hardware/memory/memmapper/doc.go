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

// Package memmapper implements the memory mapper RAM of the MSX2. A memory
// mapper divides its RAM into 16KiB segments. The segment visible in each
// page of the address space is selected by the I/O ports 0xfc to 0xff, one
// port per page.
//
// The ports are shared by every memory mapper in a machine. The MapperIO
// type is the shared register file. It is created by the first MemoryMapper
// of a machine and destroyed when the last one is removed.
//
// Reading a port returns the register value with the bits above the size of
// the largest mapper set.
package memmapper
