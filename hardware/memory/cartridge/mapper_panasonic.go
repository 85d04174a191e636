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

import "github.com/jlautenbag/openMSX/hardware/emutime"

// Panasonic system mapper, as used for the internal software of the
// Panasonic turbo R machines. Eight 8KiB regions cover the whole address
// space. Bank numbers are 9 bits.
//
// Registers:
//
//	0x6000 - 0x7fef	low 8 bits of the bank. the region is selected by bits
//			10 to 12 of the address
//	0x7ff0 - 0x7ff7	read the low 8 bits of the bank for regions 0 to 7
//	0x7ff8		the 9th bit of the bank. one bit per region
//	0x7ff9		control byte
//
// Bits of the control byte decide which registers can be read:
//
//	bit 2	0x7ff0 - 0x7ff7
//	bit 3	0x7ff9
//	bit 4	0x7ff8
func resetPanasonic(rom *ROM) {
	rom.panasonicCtrl = 0
	for region := range rom.panasonicBank {
		rom.panasonicBank[region] = region
		rom.setROM8kB(region, region)
	}
}

func writePanasonic(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	switch {
	case addr >= 0x6000 && addr < 0x7ff0:
		region := int(addr&0x1c00) >> 10
		rom.panasonicBank[region] = rom.panasonicBank[region]&^0xff | int(value)
		rom.setROM8kB(region, rom.panasonicBank[region])
	case addr == 0x7ff8:
		for region := range rom.panasonicBank {
			if value&1 != 0 {
				rom.panasonicBank[region] |= 0x100
			} else {
				rom.panasonicBank[region] &^= 0x100
			}
			rom.setROM8kB(region, rom.panasonicBank[region])
			value >>= 1
		}
	case addr == 0x7ff9:
		rom.panasonicCtrl = value
	}
}

func readPanasonic(rom *ROM, addr uint16) (uint8, bool) {
	switch {
	case rom.panasonicCtrl&0x04 != 0 && addr >= 0x7ff0 && addr < 0x7ff8:
		return uint8(rom.panasonicBank[addr&7]), true
	case rom.panasonicCtrl&0x10 != 0 && addr == 0x7ff8:
		var v uint8
		for region, bank := range rom.panasonicBank {
			if bank&0x100 != 0 {
				v |= 1 << region
			}
		}
		return v, true
	case rom.panasonicCtrl&0x08 != 0 && addr == 0x7ff9:
		return rom.panasonicCtrl, true
	}
	return 0, false
}

// the registers are all in the cache line at 0x7f00.
func uncacheablePanasonic(_ *ROM, addr uint16) bool {
	return addr&0xff00 == 0x7f00
}
