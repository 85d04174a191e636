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

	"github.com/jlautenbag/openMSX/hardware/device"
)

// AddDevice adds a device to the registry. If the name of the device is
// already in use then the device is renamed by adding a number in brackets,
// starting at 2.
func (m *Machine) AddDevice(dev device.Device) {
	name := dev.Name()
	if m.FindDevice(name) != nil {
		for n := 2; ; n++ {
			alt := fmt.Sprintf("%s (%d)", name, n)
			if m.FindDevice(alt) == nil {
				name = alt
				break
			}
		}
		dev.SetName(name)
	}
	m.devices = append(m.devices, dev)
}

// RemoveDevice removes a device from the registry. The device is not
// destroyed.
func (m *Machine) RemoveDevice(dev device.Device) {
	for i, d := range m.devices {
		if d == dev {
			m.devices = append(m.devices[:i], m.devices[i+1:]...)
			return
		}
	}
}

// FindDevice returns the device with the name. Names are not case
// sensitive. Returns nil if there is no such device.
func (m *Machine) FindDevice(name string) device.Device {
	for _, d := range m.devices {
		if strings.EqualFold(d.Name(), name) {
			return d
		}
	}
	return nil
}

// Devices returns the live devices in the order they were added.
func (m *Machine) Devices() []device.Device {
	d := make([]device.Device, len(m.devices))
	copy(d, m.devices)
	return d
}
