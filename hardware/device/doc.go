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

// Package device defines the capability set of every emulated device.
//
// A Device is mapped into the processor's address space and answers memory
// reads and writes. Devices that can hand out a direct view of a 256 byte
// line of their memory do so through ReadCacheLine(). A device that changes
// what is visible under a line it has handed out must invalidate the line
// with the CacheInvalidator it was given (see the environment package).
//
// Optional capabilities are expressed by further interfaces: PowerUpper,
// PowerDowner, Destroyer and IODevice.
package device
