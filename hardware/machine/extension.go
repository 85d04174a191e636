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

package machine

import (
	"fmt"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/scheduler"
	"github.com/jlautenbag/openMSX/hardware/slots"
	"github.com/jlautenbag/openMSX/logger"
)

// a device and the places in the address space it has been registered.
type placedDevice struct {
	dev        device.Device
	typ        string
	placements []config.Placement
}

// Extension is a hardware configuration that has been built into the
// machine.
type Extension struct {
	// the unique name of the extension in the machine
	Name string

	Config *config.HardwareConfig

	// the cartridge slot reserved for the extension. only valid if HasSlot
	// is true
	Slot    slots.Slot
	HasSlot bool

	// in order of construction
	devices []placedDevice
}

func (ext *Extension) String() string {
	if ext.HasSlot {
		return fmt.Sprintf("%s [slot %s]", ext.Name, ext.Slot.Name)
	}
	return ext.Name
}

// Devices returns the devices of the extension in the order they were
// created.
func (ext *Extension) Devices() []device.Device {
	d := make([]device.Device, 0, len(ext.devices))
	for _, pd := range ext.devices {
		d = append(d, pd.dev)
	}
	return d
}

// resolve the placement of a device against the reserved slot.
func (ext *Extension) resolve(p config.Placement) (config.Placement, error) {
	if p.PS != config.AnySlot {
		return p, nil
	}
	if !ext.HasSlot {
		return p, curated.Errorf(BadPlacement, ext.Name, "placement in any slot without a slot reservation")
	}
	p.PS = ext.Slot.PS
	if p.SS == config.NotExpanded {
		p.SS = ext.Slot.SS
	}
	return p, nil
}

// build the devices of the configuration. on error every device that was
// created is destroyed again and the slot reservation is released.
func (m *Machine) build(hc *config.HardwareConfig, name string, slotName string) (*Extension, error) {
	ext := &Extension{
		Name:   name,
		Config: hc,
	}

	if hc.NeedsSlot() {
		s, err := m.Slots.ReserveSlot(slotName, name)
		if err != nil {
			return nil, err
		}
		ext.Slot = s
		ext.HasSlot = true
	}

	for i := range hc.Devices {
		cfg := hc.Devices[i]
		cfg.Hardware = hc.Name

		cfg.Placements = make([]config.Placement, 0, len(hc.Devices[i].Placements))
		for _, p := range hc.Devices[i].Placements {
			r, err := ext.resolve(p)
			if err != nil {
				m.unbuild(ext)
				return nil, err
			}
			cfg.Placements = append(cfg.Placements, r)
		}

		f, ok := m.factory(cfg.Type)
		if !ok {
			m.unbuild(ext)
			return nil, curated.Errorf(UnknownDevice, name, cfg.Type)
		}

		dev, err := f(m.env, &cfg)
		if err != nil {
			m.unbuild(ext)
			return nil, err
		}

		m.AddDevice(dev)
		ext.devices = append(ext.devices, placedDevice{dev: dev, typ: cfg.Type})
		pd := &ext.devices[len(ext.devices)-1]

		for _, p := range cfg.Placements {
			if err := m.CPUInterface.Register(dev, p.PS, p.SS, p.Base, p.Size); err != nil {
				m.unbuild(ext)
				return nil, curated.Errorf(BadPlacement, name, err)
			}
			pd.placements = append(pd.placements, p)
		}
	}

	// devices added to a running machine are powered up immediately
	if m.powered {
		t := m.CurrentTime()
		for _, pd := range ext.devices {
			if p, ok := pd.dev.(device.PowerUpper); ok {
				p.PowerUp(t)
			} else {
				pd.dev.Reset(t)
			}
		}
	}

	return ext, nil
}

// unbuild destroys the devices of the extension in the reverse order of
// construction and releases the slot reservation.
func (m *Machine) unbuild(ext *Extension) {
	for i := len(ext.devices) - 1; i >= 0; i-- {
		pd := ext.devices[i]
		for j := len(pd.placements) - 1; j >= 0; j-- {
			p := pd.placements[j]
			if err := m.CPUInterface.Unregister(pd.dev, p.PS, p.SS, p.Base, p.Size); err != nil {
				logger.Log(m, "machine", err)
			}
		}
		if s, ok := pd.dev.(scheduler.Schedulable); ok {
			m.Scheduler.RemoveSyncPoints(s)
		}
		m.RemoveDevice(pd.dev)
		if d, ok := pd.dev.(device.Destroyer); ok {
			d.Destroy()
		}
	}
	ext.devices = nil

	if ext.HasSlot {
		m.Slots.ReleaseSlot(ext.Name)
		ext.HasSlot = false
	}
}

// LoadExtension finds the named extension configuration in the repository
// and inserts it into the machine. The slot name can be "any" or empty for
// the first free cartridge slot. Returns the unique name of the extension.
func (m *Machine) LoadExtension(name string, slot string) (string, error) {
	hc, err := m.repo.Find(name)
	if err != nil {
		if curated.Is(err, config.NotFound) {
			return "", curated.Errorf(ExtensionNotFound, name)
		}
		return "", err
	}
	return m.InsertExtension(name, hc, slot)
}

// InsertExtension builds the extension configuration into the machine.
// Returns the unique name of the extension. On error the machine is
// unchanged.
func (m *Machine) InsertExtension(name string, hc *config.HardwareConfig, slot string) (string, error) {
	if m.destroyed {
		return "", curated.Errorf(TornDown)
	}
	if !hc.IsExtension {
		return "", curated.Errorf(NotExtension, hc.Name)
	}

	unique := name
	for n := 2; m.FindExtension(unique) != nil; n++ {
		unique = fmt.Sprintf("%s (%d)", name, n)
	}

	ext, err := m.build(hc, unique, slot)
	if err != nil {
		return "", err
	}
	m.extensions = append(m.extensions, ext)

	logger.Logf(m, "machine", "inserted extension %s", ext)

	return ext.Name, nil
}

// RemoveExtension destroys the devices of the named extension and releases
// its cartridge slot.
func (m *Machine) RemoveExtension(name string) error {
	for i, ext := range m.extensions {
		if strings.EqualFold(ext.Name, name) {
			m.unbuild(ext)
			m.extensions = append(m.extensions[:i], m.extensions[i+1:]...)
			logger.Logf(m, "machine", "removed extension %s", ext.Name)
			return nil
		}
	}
	return curated.Errorf(ExtensionNotFound, name)
}

// Extensions returns the loaded extensions in the order they were loaded.
func (m *Machine) Extensions() []*Extension {
	e := make([]*Extension, len(m.extensions))
	copy(e, m.extensions)
	return e
}

// FindExtension returns the extension with the name. Names are not case
// sensitive. Returns nil if there is no such extension.
func (m *Machine) FindExtension(name string) *Extension {
	for _, ext := range m.extensions {
		if strings.EqualFold(ext.Name, name) {
			return ext
		}
	}
	return nil
}
