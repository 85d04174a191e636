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

package config

import (
	"fmt"
)

// ExternalSlot is a cartridge slot of a machine.
type ExternalSlot struct {
	PS int
	SS int
}

// HardwareConfig is the configuration of a machine or of an extension.
type HardwareConfig struct {
	Name        string
	IsExtension bool

	// primary slots that are expanded. machines only
	Expanded []int

	// cartridge slots in the order they are named (a, b, c, ...). machines
	// only
	ExternalSlots []ExternalSlot

	Devices []DeviceConfig
}

func (hc *HardwareConfig) String() string {
	if hc.IsExtension {
		return fmt.Sprintf("extension %s", hc.Name)
	}
	return fmt.Sprintf("machine %s", hc.Name)
}

// NeedsSlot returns true if any device of the configuration is placed in an
// external slot chosen at load time.
func (hc *HardwareConfig) NeedsSlot() bool {
	for i := range hc.Devices {
		if hc.Devices[i].HasAnySlot() {
			return true
		}
	}
	return false
}
