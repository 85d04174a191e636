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
	"strings"
	"sync"

	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/memory/cartridge"
	"github.com/jlautenbag/openMSX/hardware/memory/memmapper"
)

// Factory creates a device from its configuration.
type Factory func(env *environment.Environment, cfg *config.DeviceConfig) (device.Device, error)

var (
	factoriesLock sync.Mutex
	factories     = map[string]Factory{
		"rom": func(env *environment.Environment, cfg *config.DeviceConfig) (device.Device, error) {
			return cartridge.NewROM(env, cfg)
		},
		"fmpac": func(env *environment.Environment, cfg *config.DeviceConfig) (device.Device, error) {
			return cartridge.NewFMPAC(env, cfg)
		},
		"memorymapper": func(env *environment.Environment, cfg *config.DeviceConfig) (device.Device, error) {
			return memmapper.NewMemoryMapper(env, cfg)
		},
	}
)

// RegisterFactory adds or replaces the factory for a device type. Device
// types are not case sensitive. Machines created afterwards can use the
// device type.
func RegisterFactory(deviceType string, f Factory) {
	factoriesLock.Lock()
	defer factoriesLock.Unlock()
	factories[strings.ToLower(deviceType)] = f
}

// DeviceTypes returns the device types that have a factory.
func DeviceTypes() []string {
	factoriesLock.Lock()
	defer factoriesLock.Unlock()
	t := make([]string, 0, len(factories))
	for k := range factories {
		t = append(t, k)
	}
	return t
}

func defaultFactories() map[string]Factory {
	factoriesLock.Lock()
	defer factoriesLock.Unlock()
	f := make(map[string]Factory, len(factories))
	for k, v := range factories {
		f[k] = v
	}
	return f
}

func (m *Machine) factory(deviceType string) (Factory, bool) {
	f, ok := m.factories[strings.ToLower(deviceType)]
	return f, ok
}
