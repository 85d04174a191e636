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

// ASCII 8KiB cartridges. examples: Valis, Dragon Slayer, Outrun, Ashguine 2.
//
// The bank select addresses for the four 8KiB regions in 0x4000 to 0xbfff:
//
//	0x6000 - 0x67ff
//	0x6800 - 0x6fff
//	0x7000 - 0x77ff
//	0x7800 - 0x7fff
func writeASCII8kB(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if addr >= 0x6000 && addr < 0x8000 {
		region := int((addr>>11)&3) + 2
		rom.setROM8kB(region, int(value))
	}
}

// is addr one of the bank select addresses of an ASCII 16KiB cartridge.
func ascii16Select(addr uint16) bool {
	return addr >= 0x6000 && addr < 0x7800 && addr&0x0800 == 0
}

// ASCII 16KiB cartridges. examples: Xevious, Fantasy Zone 2, Return of
// Ishitar, Androgynus, Gallforce.
//
// The bank select addresses for the two 16KiB pages in 0x4000 to 0xbfff:
//
//	0x6000 - 0x67ff
//	0x7000 - 0x77ff
func writeASCII16kB(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if ascii16Select(addr) {
		region := int((addr>>12)&1) + 1
		rom.setROM16kB(region, int(value))
	}
}

// R-Type. The first 16KiB page is fixed to bank 0x17. Writes to 0x7000 to
// 0x7fff select the bank in page 2. Bit 4 selects the ROM chip. The bank
// number is bits 0 to 2 if bit 4 is set and bits 0 to 3 otherwise.
func writeRType(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if addr >= 0x7000 && addr < 0x8000 {
		if value&0x10 != 0 {
			value &= 0x17
		} else {
			value &= 0x1f
		}
		rom.setROM16kB(2, int(value))
	}
}

// Hydlide 2. An ASCII 16KiB cartridge with 2KiB of SRAM. Selecting bank 0x10
// maps the SRAM in the page. The SRAM is mirrored throughout the page.
//
// SRAM mapped in page 1 can be written. SRAM mapped in page 2 is read only.
func writeHydlide2(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if ascii16Select(addr) {
		region := int((addr>>12)&1) + 1
		mask := uint8(0x0c)
		if region == 2 {
			mask = 0x30
		}
		if value == 0x10 {
			rom.setBank8kB(2*region, sramBuffer, 0)
			rom.setBank8kB(2*region+1, sramBuffer, 0)
			rom.regioSRAM |= mask
		} else {
			rom.setROM16kB(region, int(value))
			rom.regioSRAM &^= mask
		}
		return
	}

	if (1<<(addr>>13))&rom.regioSRAM&0x0c != 0 {
		for a := int(addr & 0x7ff); a < sramSize; a += 0x800 {
			rom.sram.Write(a, value)
		}
	}
}

// ASCII 8KiB cartridges with 8KiB of SRAM. examples: Xanadu, Royal Blood.
//
// The bank select addresses are the same as ASCII8kB. The SRAM is selected
// by setting the bit above the highest ROM bank bit. The SRAM can only be
// written if it is selected in a region in 0x8000 to 0xbfff.
func writeASCII8SRAM(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if addr >= 0x6000 && addr < 0x8000 {
		region := int((addr>>11)&3) + 2
		enable := uint8(len(rom.rom) / 0x2000)
		if value&enable != 0 {
			rom.setBank8kB(region, sramBuffer, 0)
			rom.regioSRAM |= 1 << region
		} else {
			rom.setROM8kB(region, int(value))
			rom.regioSRAM &^= 1 << region
		}
		return
	}

	if (1<<(addr>>13))&rom.regioSRAM&0x30 != 0 {
		rom.sram.Write(int(addr&0x1fff), value)
	}
}
