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

package cpuinterface

import (
	"fmt"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/state"
)

// Sentinal error patterns.
const (
	SlotOccupied  = "cpuinterface: slot %s page %d already occupied by %s"
	BadSlot       = "cpuinterface: bad slot (%d-%d)"
	BadRange      = "cpuinterface: bad address range (base %#x size %#x)"
	PortOccupied  = "cpuinterface: I/O port %#02x already occupied"
	NotRegistered = "cpuinterface: device not registered at slot %s page %d"
	ExpandedInUse = "cpuinterface: cannot change expansion of occupied slot %d"
)

const (
	pageSize     = 0x4000
	numPages     = 4
	numSlots     = 4
	linesPerPage = pageSize / device.CacheLineSize

	primaryPort   = 0xa8
	secondaryAddr = 0xffff
	secondaryLine = secondaryAddr &^ (device.CacheLineSize - 1)

	// unexpanded primary slots use this secondary slot index
	notExpandedIdx = 0
)

// the state of a cache line.
type lineState uint8

const (
	lineUnknown lineState = iota
	lineCached
	lineUncacheable
)

// the device used for empty slots.
type unmapped struct {
	device.Base
}

// CPUInterface implements the device.CacheInvalidator interface.
type CPUInterface struct {
	expanded [numSlots]bool

	// primary slot register
	primary uint8

	// secondary slot register of each primary slot
	secondary [numSlots]uint8

	// devices by primary slot, secondary slot and page. unexpanded slots use
	// secondary slot zero
	slots [numSlots][numSlots][numPages]device.MemDevice

	// the currently visible device of each page
	visible [numPages]device.MemDevice

	io [256]device.IODevice

	lines     [device.CacheLines][]uint8
	lineState [device.CacheLines]lineState

	empty *unmapped
}

// NewCPUInterface is the preferred method of initialisation for the
// CPUInterface type.
func NewCPUInterface() *CPUInterface {
	c := &CPUInterface{
		empty: &unmapped{Base: device.NewBase("empty")},
	}
	for ps := range c.slots {
		for ss := range c.slots[ps] {
			for pg := range c.slots[ps][ss] {
				c.slots[ps][ss][pg] = c.empty
			}
		}
	}
	c.updateVisible()
	return c
}

func slotName(ps int, ss int) string {
	if ss < 0 {
		return fmt.Sprintf("%d", ps)
	}
	return fmt.Sprintf("%d-%d", ps, ss)
}

// SetExpanded sets whether a primary slot is expanded. A slot cannot be
// changed while a device is registered in it.
func (c *CPUInterface) SetExpanded(ps int, expanded bool) error {
	if ps < 0 || ps >= numSlots {
		return curated.Errorf(BadSlot, ps, -1)
	}
	for ss := range c.slots[ps] {
		for pg := range c.slots[ps][ss] {
			if c.slots[ps][ss][pg] != c.empty {
				return curated.Errorf(ExpandedInUse, ps)
			}
		}
	}
	c.expanded[ps] = expanded
	c.updateVisible()
	return nil
}

// IsExpanded returns true if the primary slot is expanded.
func (c *CPUInterface) IsExpanded(ps int) bool {
	return c.expanded[ps]
}

func (c *CPUInterface) checkSlot(ps int, ss int) (int, error) {
	if ps < 0 || ps >= numSlots {
		return 0, curated.Errorf(BadSlot, ps, ss)
	}
	if c.expanded[ps] {
		if ss < 0 || ss >= numSlots {
			return 0, curated.Errorf(BadSlot, ps, ss)
		}
		return ss, nil
	}
	if ss >= 0 {
		return 0, curated.Errorf(BadSlot, ps, ss)
	}
	return notExpandedIdx, nil
}

func checkRange(base int, size int) (int, int, error) {
	if base < 0 || size <= 0 || base+size > 0x10000 || base%pageSize != 0 || size%pageSize != 0 {
		return 0, 0, curated.Errorf(BadRange, base, size)
	}
	return base / pageSize, (base + size) / pageSize, nil
}

// Register a device in the pages covering the address range of a slot. The
// secondary slot must be -1 for an unexpanded primary slot.
func (c *CPUInterface) Register(dev device.MemDevice, ps int, ss int, base int, size int) error {
	idx, err := c.checkSlot(ps, ss)
	if err != nil {
		return err
	}
	first, last, err := checkRange(base, size)
	if err != nil {
		return err
	}

	for pg := first; pg < last; pg++ {
		if occ := c.slots[ps][idx][pg]; occ != c.empty {
			name := "unknown"
			if d, ok := occ.(device.Device); ok {
				name = d.Name()
			}
			return curated.Errorf(SlotOccupied, slotName(ps, ss), pg, name)
		}
	}

	for pg := first; pg < last; pg++ {
		c.slots[ps][idx][pg] = dev
	}
	c.updateVisible()

	return nil
}

// Unregister a device from the address range of a slot.
func (c *CPUInterface) Unregister(dev device.MemDevice, ps int, ss int, base int, size int) error {
	idx, err := c.checkSlot(ps, ss)
	if err != nil {
		return err
	}
	first, last, err := checkRange(base, size)
	if err != nil {
		return err
	}

	for pg := first; pg < last; pg++ {
		if c.slots[ps][idx][pg] != dev {
			return curated.Errorf(NotRegistered, slotName(ps, ss), pg)
		}
	}

	for pg := first; pg < last; pg++ {
		c.slots[ps][idx][pg] = c.empty
	}
	c.updateVisible()

	return nil
}

// RegisterIO implements the environment.IOBus interface.
func (c *CPUInterface) RegisterIO(port uint8, dev device.IODevice) error {
	if port == primaryPort || c.io[port] != nil {
		return curated.Errorf(PortOccupied, port)
	}
	c.io[port] = dev
	return nil
}

// UnregisterIO implements the environment.IOBus interface.
func (c *CPUInterface) UnregisterIO(port uint8, dev device.IODevice) {
	if c.io[port] == dev {
		c.io[port] = nil
	}
}

// PrimarySlot returns the primary slot selected for a page.
func (c *CPUInterface) PrimarySlot(page int) int {
	return int(c.primary>>(page*2)) & 0x03
}

// SecondarySlot returns the secondary slot selected for a page. Returns -1
// if the primary slot of the page is not expanded.
func (c *CPUInterface) SecondarySlot(page int) int {
	ps := c.PrimarySlot(page)
	if !c.expanded[ps] {
		return -1
	}
	return int(c.secondary[ps]>>(page*2)) & 0x03
}

// updateVisible recalculates the visible device of each page and invalidates
// the cache of pages that have changed.
func (c *CPUInterface) updateVisible() {
	for pg := 0; pg < numPages; pg++ {
		ps := c.PrimarySlot(pg)
		ss := notExpandedIdx
		if c.expanded[ps] {
			ss = int(c.secondary[ps]>>(pg*2)) & 0x03
		}
		dev := c.slots[ps][ss][pg]
		if dev != c.visible[pg] {
			c.visible[pg] = dev
			c.InvalidateCache(uint16(pg*pageSize), linesPerPage)
		}
	}

	// the secondary slot register is not cacheable
	c.InvalidateCache(secondaryLine, 1)
}

func (c *CPUInterface) setPrimary(value uint8) {
	c.primary = value
	c.updateVisible()
}

func (c *CPUInterface) setSecondary(value uint8) {
	c.secondary[c.PrimarySlot(3)] = value
	c.updateVisible()
}

// secondaryVisible returns true if the secondary slot register is visible at
// address 0xFFFF.
func (c *CPUInterface) secondaryVisible() bool {
	return c.expanded[c.PrimarySlot(3)]
}

// InvalidateCache implements the device.CacheInvalidator interface.
func (c *CPUInterface) InvalidateCache(start uint16, lines int) {
	first := int(start) / device.CacheLineSize
	for i := first; i < first+lines && i < device.CacheLines; i++ {
		c.lines[i] = nil
		c.lineState[i] = lineUnknown
	}
}

// CacheLine returns the cached view of the line containing addr, filling the
// cache if necessary. Returns nil if the line is not cacheable.
func (c *CPUInterface) CacheLine(addr uint16) []uint8 {
	i := int(addr) / device.CacheLineSize
	switch c.lineState[i] {
	case lineCached:
		return c.lines[i]
	case lineUncacheable:
		return nil
	}

	start := addr &^ (device.CacheLineSize - 1)
	var line []uint8
	if start != secondaryLine || !c.secondaryVisible() {
		line = c.visible[start/pageSize].ReadCacheLine(start)
	}

	if line == nil {
		c.lineState[i] = lineUncacheable
		return nil
	}
	c.lines[i] = line[:device.CacheLineSize:device.CacheLineSize]
	c.lineState[i] = lineCached
	return c.lines[i]
}

// ReadMem reads a byte from the processor's address space.
func (c *CPUInterface) ReadMem(addr uint16, t emutime.EmuTime) uint8 {
	if line := c.CacheLine(addr); line != nil {
		return line[addr&(device.CacheLineSize-1)]
	}
	if addr == secondaryAddr && c.secondaryVisible() {
		return ^c.secondary[c.PrimarySlot(3)]
	}
	return c.visible[addr/pageSize].ReadMem(addr, t)
}

// PeekMem reads a byte from the processor's address space without side
// effects.
func (c *CPUInterface) PeekMem(addr uint16, t emutime.EmuTime) uint8 {
	if addr == secondaryAddr && c.secondaryVisible() {
		return ^c.secondary[c.PrimarySlot(3)]
	}
	return c.visible[addr/pageSize].PeekMem(addr, t)
}

// WriteMem writes a byte to the processor's address space.
func (c *CPUInterface) WriteMem(addr uint16, value uint8, t emutime.EmuTime) {
	if addr == secondaryAddr && c.secondaryVisible() {
		c.setSecondary(value)
		return
	}
	c.visible[addr/pageSize].WriteMem(addr, value, t)
}

// ReadIO reads from an I/O port.
func (c *CPUInterface) ReadIO(port uint8, t emutime.EmuTime) uint8 {
	if port == primaryPort {
		return c.primary
	}
	if d := c.io[port]; d != nil {
		return d.ReadIO(port, t)
	}
	return device.Unmapped
}

// PeekIO reads from an I/O port without side effects.
func (c *CPUInterface) PeekIO(port uint8, t emutime.EmuTime) uint8 {
	if port == primaryPort {
		return c.primary
	}
	if d := c.io[port]; d != nil {
		return d.PeekIO(port, t)
	}
	return device.Unmapped
}

// WriteIO writes to an I/O port.
func (c *CPUInterface) WriteIO(port uint8, value uint8, t emutime.EmuTime) {
	if port == primaryPort {
		c.setPrimary(value)
		return
	}
	if d := c.io[port]; d != nil {
		d.WriteIO(port, value, t)
	}
}

// Reset the slot registers.
func (c *CPUInterface) Reset() {
	c.primary = 0
	c.secondary = [numSlots]uint8{}
	c.updateVisible()
	c.InvalidateCache(0, device.CacheLines)
}

// Snapshot implements the state.Serialiser interface.
func (c *CPUInterface) Snapshot(a *state.Archive) {
	a.Put("primary", c.primary)
	a.Put("secondary", c.secondary)
}

// Restore implements the state.Serialiser interface.
func (c *CPUInterface) Restore(a *state.Archive) error {
	if err := a.Get("primary", &c.primary); err != nil {
		return err
	}
	if err := a.Get("secondary", &c.secondary); err != nil {
		return err
	}
	c.updateVisible()
	c.InvalidateCache(0, device.CacheLines)
	return nil
}
