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

package device

import (
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/state"
)

// CacheLineSize is the size of a read cache line. Cache lines are aligned to
// their size.
const CacheLineSize = 0x100

// CacheLines is the number of cache lines in the address space.
const CacheLines = 0x10000 / CacheLineSize

// MemDevice is the memory capability of a device. Addresses are processor
// addresses.
type MemDevice interface {
	ReadMem(addr uint16, t emutime.EmuTime) uint8
	WriteMem(addr uint16, value uint8, t emutime.EmuTime)

	// read without side effects
	PeekMem(addr uint16, t emutime.EmuTime) uint8

	// returns CacheLineSize bytes for the line starting at addr, or nil if
	// the line cannot be cached. addr is aligned to CacheLineSize
	ReadCacheLine(addr uint16) []uint8
}

// Device is implemented by every emulated device.
type Device interface {
	MemDevice
	state.Serialiser

	Name() string
	SetName(name string)
	Reset(t emutime.EmuTime)
}

// PowerUpper is implemented by devices that do something on power up in
// addition to a reset.
type PowerUpper interface {
	PowerUp(t emutime.EmuTime)
}

// PowerDowner is implemented by devices that do something on power down.
type PowerDowner interface {
	PowerDown(t emutime.EmuTime)
}

// Destroyer is implemented by devices that must release resources when they
// are removed from the machine.
type Destroyer interface {
	Destroy()
}

// IODevice is implemented by devices that respond to I/O ports.
type IODevice interface {
	ReadIO(port uint8, t emutime.EmuTime) uint8
	WriteIO(port uint8, value uint8, t emutime.EmuTime)
	PeekIO(port uint8, t emutime.EmuTime) uint8
}

// CacheInvalidator is implemented by the processor's memory front end.
type CacheInvalidator interface {
	InvalidateCache(start uint16, lines int)
}

// Unmapped is the value read from addresses and ports where nothing responds.
const Unmapped = 0xff

// Base implements the name handling of the Device interface and the memory
// interface of a device with no memory. It is intended to be embedded.
type Base struct {
	name string
}

// NewBase is the preferred method of initialisation for the Base type.
func NewBase(name string) Base {
	return Base{name: name}
}

// Name implements the Device interface.
func (b *Base) Name() string {
	return b.name
}

// SetName implements the Device interface.
func (b *Base) SetName(name string) {
	b.name = name
}

// Reset implements the Device interface.
func (b *Base) Reset(_ emutime.EmuTime) {
}

// ReadMem implements the MemDevice interface.
func (b *Base) ReadMem(_ uint16, _ emutime.EmuTime) uint8 {
	return Unmapped
}

// WriteMem implements the MemDevice interface.
func (b *Base) WriteMem(_ uint16, _ uint8, _ emutime.EmuTime) {
}

// PeekMem implements the MemDevice interface.
func (b *Base) PeekMem(_ uint16, _ emutime.EmuTime) uint8 {
	return Unmapped
}

// ReadCacheLine implements the MemDevice interface.
func (b *Base) ReadCacheLine(_ uint16) []uint8 {
	return UnmappedLine
}

// Snapshot implements the state.Serialiser interface.
func (b *Base) Snapshot(_ *state.Archive) {
}

// Restore implements the state.Serialiser interface.
func (b *Base) Restore(_ *state.Archive) error {
	return nil
}

// UnmappedLine is a cache line where every byte is Unmapped. It must not be
// written to.
var UnmappedLine []uint8

func init() {
	UnmappedLine = make([]uint8, CacheLineSize)
	for i := range UnmappedLine {
		UnmappedLine[i] = Unmapped
	}
}
