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

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/state"
	"github.com/jlautenbag/openMSX/logger"
)

// Sentinal error patterns.
const (
	BadSize     = "memmapper: %s: size must be a power of two between 16 and 4096KiB (%d)"
	WrongMapper = "memmapper: %s: shared resource is not a mapper io"
)

const (
	pageSize    = 0x4000
	defaultSize = 64
	maxSize     = 4096
)

// MemoryMapper is a RAM device with a memory mapper.
type MemoryMapper struct {
	device.Base

	env *environment.Environment
	io  *MapperIO

	ram      []uint8
	segments int
}

// NewMemoryMapper is the preferred method of initialisation for the
// MemoryMapper type. The "size" parameter is the size of the RAM in KiB.
func NewMemoryMapper(env *environment.Environment, cfg *config.DeviceConfig) (*MemoryMapper, error) {
	size, err := cfg.ParameterInt("size", defaultSize)
	if err != nil {
		return nil, err
	}
	if size < pageSize/1024 || size > maxSize || size&(size-1) != 0 {
		return nil, curated.Errorf(BadSize, cfg.ID, size)
	}

	m := &MemoryMapper{
		Base:     device.NewBase(cfg.ID),
		env:      env,
		ram:      make([]uint8, size*1024),
		segments: size * 1024 / pageSize,
	}

	m.io, err = acquireMapperIO(env, cfg.ID)
	if err != nil {
		return nil, err
	}
	m.io.register(m)

	m.clear()

	logger.Logf(env, "memmapper", "%s: %dKiB in %d segments", cfg.ID, size, m.segments)

	return m, nil
}

func acquireMapperIO(env *environment.Environment, id string) (*MapperIO, error) {
	create := func() (any, error) {
		return newMapperIO(env)
	}

	if env.Shared == nil {
		return newMapperIO(env)
	}

	v, err := env.Shared.AcquireShared(SharedName, create)
	if err != nil {
		return nil, err
	}
	mio, ok := v.(*MapperIO)
	if !ok {
		env.Shared.ReleaseShared(SharedName)
		return nil, curated.Errorf(WrongMapper, id)
	}
	return mio, nil
}

func (m *MemoryMapper) String() string {
	return fmt.Sprintf("%s: %dKiB [%d %d %d %d]", m.Name(), len(m.ram)/1024,
		m.segment(0), m.segment(1), m.segment(2), m.segment(3))
}

// Size returns the size of the RAM in bytes.
func (m *MemoryMapper) Size() int {
	return len(m.ram)
}

// Segments returns the number of 16KiB segments.
func (m *MemoryMapper) Segments() int {
	return m.segments
}

// MapperIO returns the register file used by the mapper.
func (m *MemoryMapper) MapperIO() *MapperIO {
	return m.io
}

// clear the RAM. if the RandomState preference is set then the RAM is filled
// with random values.
func (m *MemoryMapper) clear() {
	random := m.env.Prefs != nil && m.env.Prefs.RandomState.Get().(bool)
	for i := range m.ram {
		if random {
			m.ram[i] = uint8(m.env.Prefs.RandSrc.Intn(0x100))
		} else {
			m.ram[i] = 0
		}
	}
	m.env.InvalidateCache(0, device.CacheLines)
}

// the segment visible in page. segment numbers larger than the RAM wrap
// around.
func (m *MemoryMapper) segment(page int) int {
	return int(m.io.Segment(page)) & (m.segments - 1)
}

func (m *MemoryMapper) offset(addr uint16) int {
	return m.segment(int(addr>>14))*pageSize + int(addr&(pageSize-1))
}

// PowerUp implements the device.PowerUpper interface. The contents of the RAM
// are lost on power up but not on reset.
func (m *MemoryMapper) PowerUp(t emutime.EmuTime) {
	m.clear()
	m.Reset(t)
}

// Reset implements the device.Device interface.
func (m *MemoryMapper) Reset(_ emutime.EmuTime) {
	m.io.Reset()
}

// ReadMem implements the device.MemDevice interface.
func (m *MemoryMapper) ReadMem(addr uint16, _ emutime.EmuTime) uint8 {
	return m.ram[m.offset(addr)]
}

// PeekMem implements the device.MemDevice interface.
func (m *MemoryMapper) PeekMem(addr uint16, _ emutime.EmuTime) uint8 {
	return m.ram[m.offset(addr)]
}

// WriteMem implements the device.MemDevice interface.
func (m *MemoryMapper) WriteMem(addr uint16, value uint8, _ emutime.EmuTime) {
	m.ram[m.offset(addr)] = value
}

// ReadCacheLine implements the device.MemDevice interface.
func (m *MemoryMapper) ReadCacheLine(addr uint16) []uint8 {
	o := m.offset(addr)
	return m.ram[o : o+device.CacheLineSize]
}

// Destroy implements the device.Destroyer interface.
func (m *MemoryMapper) Destroy() {
	m.io.unregister(m)
	if m.env.Shared == nil {
		m.io.Destroy()
	} else {
		m.env.Shared.ReleaseShared(SharedName)
	}
}

// Snapshot implements the state.Serialiser interface. The segment registers
// are saved with the shared resources of the machine.
func (m *MemoryMapper) Snapshot(a *state.Archive) {
	a.Put("ram", m.ram)
}

// Restore implements the state.Serialiser interface.
func (m *MemoryMapper) Restore(a *state.Archive) error {
	var ram []uint8
	if err := a.Get("ram", &ram); err != nil {
		return err
	}
	if len(ram) != len(m.ram) {
		return curated.Errorf(state.BadField, "ram", fmt.Sprintf("size %d is not %d", len(ram), len(m.ram)))
	}
	copy(m.ram, ram)
	m.env.InvalidateCache(0, device.CacheLines)
	return nil
}
