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

package cartridge

import (
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/emutime"
)

// The FM-PAC (Panasoft SW-M004) has 64KiB of ROM in four 16KiB banks, 8KiB
// of battery backed SRAM and a YM2413 sound chip. Only the register latch of
// the sound chip is emulated.
//
// Registers:
//
//	0x5ffe, 0x5fff	writing 0x4d and 0x69 enables the SRAM in 0x4000 to 0x5ffd
//	0x7ff4		YM2413 register select. write only
//	0x7ff5		YM2413 register data. write only
//	0x7ff6		enable. bit 0 enables the YM2413 registers
//	0x7ff7		ROM bank
//
// The ROM bank is mirrored in every page. The cartridge only decodes the low
// 14 bits of the address.
const (
	fmpacROMSize  = 0x10000
	fmpacSRAMSize = 0x1ffe
	fmpacHeader   = "PAC2 BACKUP DATA"

	fmpacNumRegs = 0x40
)

// the state of the FM-PAC registers. fields are exported so that the state
// can be serialised.
type fmpacRegs struct {
	R5ffe       uint8               `json:"r5ffe"`
	R5fff       uint8               `json:"r5fff"`
	SRAMEnabled bool                `json:"sramEnabled"`
	Enable      uint8               `json:"enable"`
	Bank        uint8               `json:"bank"`
	FMAddr      uint8               `json:"fmAddr"`
	FMRegs      [fmpacNumRegs]uint8 `json:"fmRegs"`
}

// FMRegister returns the value last written to a YM2413 register of an
// FM-PAC. Returns 0 for other cartridges.
func (rom *ROM) FMRegister(reg int) uint8 {
	if rom.mapper != FMPAC || reg < 0 || reg >= fmpacNumRegs {
		return 0
	}
	return rom.fmpac.FMRegs[reg]
}

// SRAMEnabled returns true if the SRAM of an FM-PAC is visible.
func (rom *ROM) SRAMEnabled() bool {
	return rom.mapper == FMPAC && rom.fmpac.SRAMEnabled
}

func (rom *ROM) setFMPACBank(bank uint8) {
	rom.fmpac.Bank = bank & 0x03
	for page := range 4 {
		rom.setROM16kB(page, int(rom.fmpac.Bank))
	}
}

func resetFMPAC(rom *ROM) {
	rom.fmpac.SRAMEnabled = false
	rom.fmpac.Enable = 0
	rom.fmpac.FMAddr = 0
	rom.fmpac.FMRegs = [fmpacNumRegs]uint8{}
	rom.setFMPACBank(0)
}

func (rom *ROM) checkFMPACSRAM() {
	en := rom.fmpac.R5ffe == 0x4d && rom.fmpac.R5fff == 0x69
	if en != rom.fmpac.SRAMEnabled {
		rom.fmpac.SRAMEnabled = en
		rom.invalidate(0, 0x10000)
	}
}

func writeFMPAC(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	switch addr & 0x3fff {
	case 0x1ffe:
		rom.fmpac.R5ffe = value
		rom.checkFMPACSRAM()
	case 0x1fff:
		rom.fmpac.R5fff = value
		rom.checkFMPACSRAM()
	case 0x3ff4:
		if rom.fmpac.Enable&0x01 != 0 {
			rom.fmpac.FMAddr = value & (fmpacNumRegs - 1)
		}
	case 0x3ff5:
		if rom.fmpac.Enable&0x01 != 0 {
			rom.fmpac.FMRegs[rom.fmpac.FMAddr] = value
		}
	case 0x3ff6:
		rom.fmpac.Enable = value & 0x11
	case 0x3ff7:
		rom.setFMPACBank(value)
	default:
		if rom.fmpac.SRAMEnabled && addr&0x3fff < fmpacSRAMSize {
			rom.sram.Write(int(addr&0x3fff), value)
		}
	}
}

func readFMPAC(rom *ROM, addr uint16) (uint8, bool) {
	a := addr & 0x3fff
	switch a {
	case 0x3ff4, 0x3ff5:
		return device.Unmapped, true
	case 0x3ff6:
		return rom.fmpac.Enable, true
	case 0x3ff7:
		return rom.fmpac.Bank, true
	}
	if rom.fmpac.SRAMEnabled && a < fmpacSRAMSize {
		return rom.sram.Read(int(a)), true
	}
	return 0, false
}

// the SRAM can't be cached because it is smaller than the 8KiB it is mapped
// in. the registers are in the last cache line of the page.
func uncacheableFMPAC(rom *ROM, addr uint16) bool {
	a := addr & 0x3fff
	if a >= 0x3f00 {
		return true
	}
	return rom.fmpac.SRAMEnabled && a < 0x2000
}
