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

package cartridge_test

import (
	"os"
	"testing"

	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/memory/cartridge"
	"github.com/jlautenbag/openMSX/test"
)

func fmpacConfig(data []uint8) *config.DeviceConfig {
	return &config.DeviceConfig{
		Type:   "FMPAC",
		ID:     "FM-PAC",
		Params: map[string]string{"sramname": "fmpac.pac"},
		Placements: []config.Placement{
			{PS: 1, SS: config.NotExpanded, Base: 0x4000, Size: 0x4000},
		},
		Data: data,
	}
}

func TestFMPACBanks(t *testing.T) {
	env, _ := newEnv(t)
	rom, err := cartridge.NewFMPAC(env, fmpacConfig(image(0x10000)))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rom.MapperType(), cartridge.FMPAC)

	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0))
	rom.WriteMem(0x7ff7, 0x06, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(4))
	test.ExpectEquality(t, rom.ReadMem(0x7ff7, emutime.Zero), uint8(2))
	test.ExpectEquality(t, rom.ReadCacheLine(0x7f00) == nil, true)
	test.ExpectEquality(t, rom.ReadCacheLine(0x4000) == nil, false)

	rom.Reset(emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0))
}

func TestFMPACBlankROM(t *testing.T) {
	env, _ := newEnv(t)
	rom, err := cartridge.NewFMPAC(env, fmpacConfig(nil))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0xff))
}

func TestFMPACRegisters(t *testing.T) {
	env, _ := newEnv(t)
	rom, err := cartridge.NewFMPAC(env, fmpacConfig(image(0x10000)))
	test.DemandSuccess(t, err)

	// the register latch is disabled after a reset
	rom.WriteMem(0x7ff4, 0x10, emutime.Zero)
	rom.WriteMem(0x7ff5, 0x77, emutime.Zero)
	test.ExpectEquality(t, rom.FMRegister(0x10), uint8(0))

	rom.WriteMem(0x7ff6, 0xff, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x7ff6, emutime.Zero), uint8(0x11))
	rom.WriteMem(0x7ff4, 0x10, emutime.Zero)
	rom.WriteMem(0x7ff5, 0x77, emutime.Zero)
	test.ExpectEquality(t, rom.FMRegister(0x10), uint8(0x77))

	// write only
	test.ExpectEquality(t, rom.ReadMem(0x7ff4, emutime.Zero), uint8(0xff))
	test.ExpectEquality(t, rom.ReadMem(0x7ff5, emutime.Zero), uint8(0xff))
}

func TestFMPACSRAM(t *testing.T) {
	env, inv := newEnv(t)
	rom, err := cartridge.NewFMPAC(env, fmpacConfig(image(0x10000)))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, rom.SRAMEnabled())

	// SRAM is not visible until enabled
	rom.WriteMem(0x4000, 0x12, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0))

	inv.clear()
	rom.WriteMem(0x5ffe, 0x4d, emutime.Zero)
	test.ExpectFailure(t, rom.SRAMEnabled())
	rom.WriteMem(0x5fff, 0x69, emutime.Zero)
	test.ExpectSuccess(t, rom.SRAMEnabled())
	test.ExpectSuccess(t, inv.invalidated(0x4000))

	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0xff))
	test.ExpectEquality(t, rom.ReadCacheLine(0x4000) == nil, true)
	rom.WriteMem(0x4000, 0x12, emutime.Zero)
	rom.WriteMem(0x5ffd, 0x34, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0x12))
	test.ExpectEquality(t, rom.ReadMem(0x5ffd, emutime.Zero), uint8(0x34))

	// the enable registers are not part of the SRAM
	test.ExpectEquality(t, rom.ReadMem(0x5ffe, emutime.Zero), uint8(0))

	rom.Destroy()

	d, err := os.ReadFile(rom.SRAM().Path())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(d[:16]), "PAC2 BACKUP DATA")
	test.ExpectEquality(t, len(d), 16+0x1ffe)

	// a new FM-PAC loads the SRAM image
	rom, err = cartridge.NewFMPAC(env, fmpacConfig(image(0x10000)))
	test.DemandSuccess(t, err)
	rom.WriteMem(0x5ffe, 0x4d, emutime.Zero)
	rom.WriteMem(0x5fff, 0x69, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0x12))

	rom.WriteMem(0x5fff, 0x00, emutime.Zero)
	test.ExpectFailure(t, rom.SRAMEnabled())
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0))
}

func TestFMPACSnapshot(t *testing.T) {
	roundTrip(t, "FMPAC", 0x10000, [][2]int{
		{0x5ffe, 0x4d}, {0x5fff, 0x69}, {0x4010, 0x21},
		{0x7ff7, 1}, {0x7ff6, 1}, {0x7ff4, 3}, {0x7ff5, 0x44},
	})
}
