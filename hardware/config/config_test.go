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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/test"
)

const gameSrc = `
hardware = {
	type = "extension",
	name = "Game",
	devices = {
		{
			type = "ROM",
			id = "game",
			params = { mappertype = "KonamiSCC", volume = 15, sram = true, offset = "0x10" },
			data = string.rep("\255", 0x2000),
			mem = { { ps = "any", base = 0x4000, size = 0x8000 } },
		},
	},
}
`

func TestParse(t *testing.T) {
	hc, err := config.Parse("game", gameSrc)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, hc.Name, "Game")
	test.ExpectSuccess(t, hc.IsExtension)
	test.ExpectSuccess(t, hc.NeedsSlot())
	test.DemandEquality(t, len(hc.Devices), 1)

	dc := &hc.Devices[0]
	test.ExpectEquality(t, dc.Type, "ROM")
	test.ExpectEquality(t, dc.ID, "game")
	test.ExpectEquality(t, dc.Hardware, "Game")
	test.ExpectEquality(t, len(dc.Data), 0x2000)
	test.ExpectEquality(t, dc.Data[0], uint8(0xff))

	v, err := dc.Parameter("MapperType")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, "KonamiSCC")

	_, err = dc.Parameter("filename")
	test.ExpectSuccess(t, curated.Is(err, config.MissingParameter))
	test.ExpectEquality(t, dc.ParameterDefault("filename", "none"), "none")

	n, err := dc.ParameterInt("volume", 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 15)
	n, err = dc.ParameterInt("offset", 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 16)
	n, err = dc.ParameterInt("missing", 7)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 7)
	_, err = dc.ParameterInt("mappertype", 0)
	test.ExpectSuccess(t, curated.Is(err, config.BadParameter))

	b, err := dc.ParameterBool("sram", false)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, b)

	test.DemandEquality(t, len(dc.Placements), 1)
	p := dc.Placements[0]
	test.ExpectEquality(t, p.PS, config.AnySlot)
	test.ExpectEquality(t, p.SS, config.NotExpanded)
	test.ExpectEquality(t, p.Base, 0x4000)
	test.ExpectEquality(t, p.Size, 0x8000)
	test.ExpectEquality(t, p.String(), "any 0x4000-0xbfff")
}

func TestParseMachine(t *testing.T) {
	r := config.NewRepository("")
	hc, err := r.Find("default")
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, hc.IsExtension)
	test.ExpectFailure(t, hc.NeedsSlot())
	test.DemandEquality(t, len(hc.Expanded), 1)
	test.ExpectEquality(t, hc.Expanded[0], 3)
	test.DemandEquality(t, len(hc.ExternalSlots), 2)
	test.ExpectEquality(t, hc.ExternalSlots[1], config.ExternalSlot{PS: 2, SS: config.NotExpanded})
	test.DemandEquality(t, len(hc.Devices), 1)
	test.ExpectEquality(t, hc.Devices[0].Placements[0].String(), "3-2 0x0000-0xffff")
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		`this is not lua`,
		`x = 1`,
		`hardware = { type = "toaster", devices = {} }`,
		`hardware = { type = "extension" }`,
		`hardware = { type = "extension", devices = { { id = "no type" } } }`,
		`hardware = { type = "extension", devices = { { type = "ROM", mem = { { ps = 5 } } } } }`,
		`hardware = { type = "extension", devices = { { type = "ROM", mem = { { ps = 1, base = 0x1000 } } } } }`,
		`hardware = { type = "machine", devices = { { type = "ROM", mem = { { ps = "any" } } } } }`,
		`hardware = { type = "machine", slots = { { ps = 9 } }, devices = {} }`,
		`hardware = { type = "extension", devices = { { type = "ROM", params = { x = {} } } } }`,
	}
	for i, src := range bad {
		_, err := config.Parse("bad", src)
		test.ExpectSuccess(t, curated.Is(err, config.BadConfig), i)
	}
}

func TestRepository(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "ondisk.lua"), []byte(`hardware = { type = "extension", devices = {} }`), 0o600))

	r := config.NewRepository(dir)
	r.Register("Registered", gameSrc)

	hc, err := r.Find("registered")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, hc.Name, "Game")

	hc, err = r.Find("ondisk")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, hc.Name, "ondisk")

	_, err = r.Find("fmpac")
	test.ExpectSuccess(t, err)

	_, err = r.Find("missing")
	test.ExpectSuccess(t, curated.Is(err, config.NotFound))

	_, err = r.Find("../ondisk")
	test.ExpectSuccess(t, curated.Is(err, config.NotFound))

	names := r.Names()
	test.DemandEquality(t, len(names), 5)
	test.ExpectEquality(t, names[0], "default")
	test.ExpectEquality(t, names[1], "fmpac")
	test.ExpectEquality(t, names[2], "ondisk")
	test.ExpectEquality(t, names[3], "ram512")
	test.ExpectEquality(t, names[4], "registered")
}
