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

// Package cartridge implements MSX cartridges with bank switched ROM. The
// behaviour of a cartridge is decided by its mapper type. The mapper decides
// how writes to the cartridge's address space change which part of the ROM
// (or battery backed SRAM) is visible at each address.
//
// The address space of a cartridge is divided into sixteen 4KiB banks. Each
// bank refers to a 4KiB area of one of the buffers owned by the cartridge:
// the ROM image, the SRAM or a filler buffer of unmapped memory. Mappers with
// larger banks set several consecutive banks at once.
//
// Supported mapper types are listed below. The strings in quotation marks are
// the names that should be used in the "mappertype" parameter of a ROM device.
// Names are not case sensitive and some types have alternative names. An
// empty parameter or "auto" tells the cartridge to look in the ROM database
// and then to make a best guess.
//
//	Plain			"Plain"		no bank switching. 64KiB or less
//	Generic 8KiB		"Generic8kB"
//	Generic 16KiB		"Generic16kB"
//	Konami with SCC		"KonamiSCC"	also "Konami5"
//	Konami without SCC	"Konami"	also "Konami4"
//	ASCII 8KiB		"ASCII8"
//	ASCII 16KiB		"ASCII16"
//	R-Type			"RType"
//	Hydlide 2		"Hydlide2"	ASCII 16KiB with 2KiB SRAM
//	ASCII 8KiB with SRAM	"ASCII8SRAM"	Xanadu, Royal Blood
//	Game Master 2		"GameMaster2"	8KiB SRAM in 4KiB halves
//	Konami Synthesizer	"Synthesizer"	DAC at 0x4000
//	Konami Majutsushi	"Majutsushi"	DAC at 0x5000 - 0x5fff
//	Cross Blaim		"CrossBlaim"
//	Panasonic		"Panasonic"	system mapper with 9 bit banks
//	FM-PAC			"FMPAC"		battery backed SRAM and FM register latch
//
// The ROM database is consulted for ROM images that do not specify a mapper
// type. See the romdb package.
package cartridge
