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

package memmapper

import (
	"fmt"

	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/state"
)

// SharedName is the name of the MapperIO in the shared resources of a
// machine.
const SharedName = "MapperIO"

// FirstPort is the I/O port of the register for page 0. The registers for
// pages 1 to 3 follow.
const FirstPort = 0xfc

// MapperIO is the segment register file shared by the memory mappers of a
// machine.
type MapperIO struct {
	env *environment.Environment

	regs [4]uint8

	// the mappers using the registers. the read back mask depends on the
	// largest of them
	mappers []*MemoryMapper
	mask    uint8
}

func newMapperIO(env *environment.Environment) (*MapperIO, error) {
	mio := &MapperIO{env: env}
	mio.Reset()

	if env.IO != nil {
		for p := range 4 {
			if err := env.IO.RegisterIO(uint8(FirstPort+p), mio); err != nil {
				for q := range p {
					env.IO.UnregisterIO(uint8(FirstPort+q), mio)
				}
				return nil, err
			}
		}
	}

	return mio, nil
}

func (mio *MapperIO) String() string {
	return fmt.Sprintf("mapper io: %02x %02x %02x %02x (mask %02x)",
		mio.regs[0], mio.regs[1], mio.regs[2], mio.regs[3], mio.mask)
}

// Reset the registers to the values set by the BIOS of a machine with one
// mapper: page 0 to segment 3, page 3 to segment 0.
func (mio *MapperIO) Reset() {
	for page := range mio.regs {
		mio.regs[page] = uint8(3 - page)
	}
	mio.invalidate(0, 4)
}

// Segment returns the segment register for the page.
func (mio *MapperIO) Segment(page int) uint8 {
	return mio.regs[page&0x03]
}

// Mask returns the bits that are set when a register is read back.
func (mio *MapperIO) Mask() uint8 {
	return mio.mask
}

func (mio *MapperIO) register(m *MemoryMapper) {
	mio.mappers = append(mio.mappers, m)
	mio.updateMask()
}

func (mio *MapperIO) unregister(m *MemoryMapper) {
	for i, n := range mio.mappers {
		if n == m {
			mio.mappers = append(mio.mappers[:i], mio.mappers[i+1:]...)
			break
		}
	}
	mio.updateMask()
}

func (mio *MapperIO) updateMask() {
	largest := 0
	for _, m := range mio.mappers {
		largest = max(largest, m.segments)
	}
	if largest == 0 {
		mio.mask = 0
		return
	}
	mio.mask = ^uint8(largest - 1)
}

func (mio *MapperIO) invalidate(page int, pages int) {
	mio.env.InvalidateCache(uint16(page*pageSize), pages*pageSize/device.CacheLineSize)
}

// ReadIO implements the device.IODevice interface.
func (mio *MapperIO) ReadIO(port uint8, t emutime.EmuTime) uint8 {
	return mio.PeekIO(port, t)
}

// PeekIO implements the device.IODevice interface.
func (mio *MapperIO) PeekIO(port uint8, _ emutime.EmuTime) uint8 {
	return mio.regs[port&0x03] | mio.mask
}

// WriteIO implements the device.IODevice interface.
func (mio *MapperIO) WriteIO(port uint8, value uint8, _ emutime.EmuTime) {
	page := int(port & 0x03)
	if mio.regs[page] == value {
		return
	}
	mio.regs[page] = value
	mio.invalidate(page, 1)
}

// Destroy implements the device.Destroyer interface. It is called when the
// last memory mapper of the machine releases the registers.
func (mio *MapperIO) Destroy() {
	if mio.env.IO != nil {
		for p := range 4 {
			mio.env.IO.UnregisterIO(uint8(FirstPort+p), mio)
		}
	}
}

// Snapshot implements the state.Serialiser interface.
func (mio *MapperIO) Snapshot(a *state.Archive) {
	a.Put("regs", mio.regs)
}

// Restore implements the state.Serialiser interface.
func (mio *MapperIO) Restore(a *state.Archive) error {
	if err := a.Get("regs", &mio.regs); err != nil {
		return err
	}
	mio.invalidate(0, 4)
	return nil
}
