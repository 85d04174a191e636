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
	"math"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/jlautenbag/openMSX/curated"
)

// Sentinal error patterns.
const (
	BadConfig = "config: %s: %v"
)

// the name of the global variable holding the configuration table.
const hardwareGlobal = "hardware"

func newLuaState() (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}

	for _, lib := range libs {
		err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			L.Close()
			return nil, err
		}
	}

	return L, nil
}

// Parse a hardware configuration from Lua source. The name is used if the
// configuration does not name itself.
func Parse(name string, src string) (*HardwareConfig, error) {
	L, err := newLuaState()
	if err != nil {
		return nil, curated.Errorf(BadConfig, name, err)
	}
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return nil, curated.Errorf(BadConfig, name, err)
	}

	tbl, ok := L.GetGlobal(hardwareGlobal).(*lua.LTable)
	if !ok {
		return nil, curated.Errorf(BadConfig, name, fmt.Sprintf("no %s table", hardwareGlobal))
	}

	hc := &HardwareConfig{Name: name}

	if n, ok := tbl.RawGetString("name").(lua.LString); ok && n != "" {
		hc.Name = string(n)
	}

	switch strings.ToLower(lua.LVAsString(tbl.RawGetString("type"))) {
	case "machine":
	case "extension":
		hc.IsExtension = true
	default:
		return nil, curated.Errorf(BadConfig, name, "type must be machine or extension")
	}

	if err := parseSlots(hc, tbl); err != nil {
		return nil, curated.Errorf(BadConfig, name, err)
	}

	devs, ok := tbl.RawGetString("devices").(*lua.LTable)
	if !ok {
		return nil, curated.Errorf(BadConfig, name, "no devices table")
	}

	for i := 1; i <= devs.Len(); i++ {
		d, ok := devs.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, curated.Errorf(BadConfig, name, fmt.Sprintf("device %d is not a table", i))
		}
		dc, err := parseDevice(d)
		if err != nil {
			return nil, curated.Errorf(BadConfig, name, fmt.Errorf("device %d: %w", i, err))
		}
		dc.Hardware = hc.Name
		if dc.HasAnySlot() && !hc.IsExtension {
			return nil, curated.Errorf(BadConfig, name, "machine devices cannot use any slot")
		}
		hc.Devices = append(hc.Devices, dc)
	}

	return hc, nil
}

func parseSlots(hc *HardwareConfig, tbl *lua.LTable) error {
	if exp, ok := tbl.RawGetString("expanded").(*lua.LTable); ok {
		for i := 1; i <= exp.Len(); i++ {
			ps, err := luaInt(exp.RawGetInt(i))
			if err != nil || ps < 0 || ps > 3 {
				return fmt.Errorf("bad expanded slot %v", exp.RawGetInt(i))
			}
			hc.Expanded = append(hc.Expanded, ps)
		}
	}

	if slots, ok := tbl.RawGetString("slots").(*lua.LTable); ok {
		for i := 1; i <= slots.Len(); i++ {
			s, ok := slots.RawGetInt(i).(*lua.LTable)
			if !ok {
				return fmt.Errorf("slot %d is not a table", i)
			}
			ps, err := luaInt(s.RawGetString("ps"))
			if err != nil || ps < 0 || ps > 3 {
				return fmt.Errorf("slot %d: bad primary slot", i)
			}
			es := ExternalSlot{PS: ps, SS: NotExpanded}
			if v := s.RawGetString("ss"); v != lua.LNil {
				es.SS, err = luaInt(v)
				if err != nil || es.SS < 0 || es.SS > 3 {
					return fmt.Errorf("slot %d: bad secondary slot", i)
				}
			}
			hc.ExternalSlots = append(hc.ExternalSlots, es)
		}
	}

	return nil
}

func parseDevice(d *lua.LTable) (DeviceConfig, error) {
	dc := DeviceConfig{
		Type:   lua.LVAsString(d.RawGetString("type")),
		ID:     lua.LVAsString(d.RawGetString("id")),
		Params: make(map[string]string),
	}

	if dc.Type == "" {
		return dc, fmt.Errorf("missing type")
	}
	if dc.ID == "" {
		dc.ID = dc.Type
	}

	if params, ok := d.RawGetString("params").(*lua.LTable); ok {
		var err error
		params.ForEach(func(k lua.LValue, v lua.LValue) {
			if err != nil {
				return
			}
			key, ok := k.(lua.LString)
			if !ok {
				err = fmt.Errorf("parameter names must be strings")
				return
			}
			var s string
			s, err = luaString(v)
			dc.Params[strings.ToLower(string(key))] = s
		})
		if err != nil {
			return dc, err
		}
	}

	if data, ok := d.RawGetString("data").(lua.LString); ok {
		dc.Data = []byte(string(data))
	}

	if mem, ok := d.RawGetString("mem").(*lua.LTable); ok {
		for i := 1; i <= mem.Len(); i++ {
			m, ok := mem.RawGetInt(i).(*lua.LTable)
			if !ok {
				return dc, fmt.Errorf("mem %d is not a table", i)
			}
			p, err := parsePlacement(m)
			if err != nil {
				return dc, fmt.Errorf("mem %d: %w", i, err)
			}
			dc.Placements = append(dc.Placements, p)
		}
	}

	return dc, nil
}

func parsePlacement(m *lua.LTable) (Placement, error) {
	p := Placement{SS: NotExpanded, Base: 0x0000, Size: 0x10000}

	switch v := m.RawGetString("ps").(type) {
	case lua.LString:
		if strings.ToLower(string(v)) != "any" {
			return p, fmt.Errorf("bad primary slot (%s)", v)
		}
		p.PS = AnySlot
	default:
		ps, err := luaInt(v)
		if err != nil || ps < 0 || ps > 3 {
			return p, fmt.Errorf("bad primary slot (%v)", v)
		}
		p.PS = ps
	}

	if v := m.RawGetString("ss"); v != lua.LNil {
		ss, err := luaInt(v)
		if err != nil || ss < 0 || ss > 3 {
			return p, fmt.Errorf("bad secondary slot (%v)", v)
		}
		p.SS = ss
	}

	var err error
	if v := m.RawGetString("base"); v != lua.LNil {
		if p.Base, err = luaInt(v); err != nil {
			return p, err
		}
	}
	if v := m.RawGetString("size"); v != lua.LNil {
		if p.Size, err = luaInt(v); err != nil {
			return p, err
		}
	}

	if p.Base < 0 || p.Size <= 0 || p.Base+p.Size > 0x10000 || p.Base&0x3fff != 0 || p.Size&0x3fff != 0 {
		return p, fmt.Errorf("placement must be whole pages (base %#x size %#x)", p.Base, p.Size)
	}

	return p, nil
}

func luaInt(v lua.LValue) (int, error) {
	switch v := v.(type) {
	case lua.LNumber:
		f := float64(v)
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("not an integer (%v)", f)
		}
		return int(f), nil
	case lua.LString:
		n, err := strconv.ParseInt(strings.TrimSpace(string(v)), 0, 64)
		return int(n), err
	}
	return 0, fmt.Errorf("not an integer (%v)", v)
}

func luaString(v lua.LValue) (string, error) {
	switch v := v.(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return strconv.FormatInt(int64(f), 10), nil
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case lua.LBool:
		return strconv.FormatBool(bool(v)), nil
	}
	return "", fmt.Errorf("unsupported parameter value (%s)", v.Type())
}
