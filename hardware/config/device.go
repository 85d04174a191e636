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
	"strconv"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
)

// Sentinal error patterns.
const (
	MissingParameter = "config: %s: missing parameter (%s)"
	BadParameter     = "config: %s: parameter %s: %v"
)

// AnySlot as the primary slot of a Placement means the device goes in
// whichever external slot is reserved when the extension is loaded.
const AnySlot = -1

// NotExpanded as the secondary slot of a Placement means the primary slot is
// not expanded.
const NotExpanded = -1

// Placement of a device in the processor's address space.
type Placement struct {
	PS   int
	SS   int
	Base int
	Size int
}

func (p Placement) String() string {
	ps := fmt.Sprintf("%d", p.PS)
	if p.PS == AnySlot {
		ps = "any"
	}
	if p.SS == NotExpanded {
		return fmt.Sprintf("%s 0x%04x-0x%04x", ps, p.Base, p.Base+p.Size-1)
	}
	return fmt.Sprintf("%s-%d 0x%04x-0x%04x", ps, p.SS, p.Base, p.Base+p.Size-1)
}

// DeviceConfig is the configuration of a single device.
type DeviceConfig struct {
	// the type of device (ROM, FMPAC, MemoryMapper, etc.)
	Type string

	// identifier of the device. used as the device name
	ID string

	// device parameters. keys are lower case
	Params map[string]string

	// where the device appears in the address space
	Placements []Placement

	// inline image data. used by ROM devices instead of loading a file
	Data []byte

	// the name of the hardware configuration the device is part of
	Hardware string
}

func (dc *DeviceConfig) String() string {
	return fmt.Sprintf("%s (%s)", dc.ID, dc.Type)
}

// Parameter returns the value of a required parameter.
func (dc *DeviceConfig) Parameter(name string) (string, error) {
	v, ok := dc.Params[strings.ToLower(name)]
	if !ok {
		return "", curated.Errorf(MissingParameter, dc.ID, name)
	}
	return v, nil
}

// ParameterDefault returns the value of an optional parameter.
func (dc *DeviceConfig) ParameterDefault(name string, def string) string {
	v, ok := dc.Params[strings.ToLower(name)]
	if !ok {
		return def
	}
	return v
}

// ParameterInt returns the value of an optional integer parameter. Values can
// be written in decimal or with a 0x prefix.
func (dc *DeviceConfig) ParameterInt(name string, def int) (int, error) {
	v, ok := dc.Params[strings.ToLower(name)]
	if !ok {
		return def, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
	if err != nil {
		return def, curated.Errorf(BadParameter, dc.ID, name, err)
	}
	return int(n), nil
}

// ParameterBool returns the value of an optional boolean parameter.
func (dc *DeviceConfig) ParameterBool(name string, def bool) (bool, error) {
	v, ok := dc.Params[strings.ToLower(name)]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def, curated.Errorf(BadParameter, dc.ID, name, err)
	}
	return b, nil
}

// HasAnySlot returns true if any placement of the device is in an external
// slot chosen at load time.
func (dc *DeviceConfig) HasAnySlot() bool {
	for _, p := range dc.Placements {
		if p.PS == AnySlot {
			return true
		}
	}
	return false
}
