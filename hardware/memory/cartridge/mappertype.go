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
	"strings"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/hardware/emutime"
)

// Sentinal error patterns.
const (
	UnknownMapperType = "cartridge: unknown mapper type (%s)"
	MalformedDatabase = "cartridge: %v"
	BadImage          = "cartridge: %s: %v"
)

// MapperType identifies the bank switching hardware of a cartridge.
type MapperType int

// List of valid MapperType values.
const (
	Plain MapperType = iota
	Generic8kB
	Generic16kB
	KonamiSCC
	Konami
	ASCII8kB
	ASCII16kB
	RType
	Hydlide2
	ASCII8SRAM
	GameMaster2
	Synthesizer
	Majutsushi
	CrossBlaim
	Panasonic
	FMPAC
	numMapperTypes
)

var mapperNames = [numMapperTypes]string{
	Plain:       "Plain",
	Generic8kB:  "Generic8kB",
	Generic16kB: "Generic16kB",
	KonamiSCC:   "KonamiSCC",
	Konami:      "Konami",
	ASCII8kB:    "ASCII8",
	ASCII16kB:   "ASCII16",
	RType:       "RType",
	Hydlide2:    "Hydlide2",
	ASCII8SRAM:  "ASCII8SRAM",
	GameMaster2: "GameMaster2",
	Synthesizer: "Synthesizer",
	Majutsushi:  "Majutsushi",
	CrossBlaim:  "CrossBlaim",
	Panasonic:   "Panasonic",
	FMPAC:       "FMPAC",
}

// alternative names. keys are lower case.
var mapperAliases = map[string]MapperType{
	"konami5":   KonamiSCC,
	"scc":       KonamiSCC,
	"konami4":   Konami,
	"8kb":       Generic8kB,
	"16kb":      Generic16kB,
	"ascii8kb":  ASCII8kB,
	"ascii16kb": ASCII16kB,
	"r-type":    RType,
	"ascii8-8":  ASCII8SRAM,
	"rc755":     GameMaster2,
	"fm-pac":    FMPAC,
	"mirrored":  Plain,
	"normal":    Plain,
}

func (mt MapperType) String() string {
	if mt < 0 || mt >= numMapperTypes {
		return "unknown"
	}
	return mapperNames[mt]
}

// ParseMapperType returns the MapperType for a name or alias. Names are not
// case sensitive.
func ParseMapperType(s string) (MapperType, error) {
	s = strings.TrimSpace(s)
	for mt, n := range mapperNames {
		if strings.EqualFold(s, n) {
			return MapperType(mt), nil
		}
	}
	if mt, ok := mapperAliases[strings.ToLower(s)]; ok {
		return mt, nil
	}
	return Plain, curated.Errorf(UnknownMapperType, s)
}

// MapperTypes returns the names of all supported mapper types.
func MapperTypes() []string {
	return append([]string{}, mapperNames[:]...)
}

// HasSRAM returns true if cartridges of the mapper type have battery backed
// memory.
func (mt MapperType) HasSRAM() bool {
	return handlers[mt].sramSize > 0
}

// HasDAC returns true if cartridges of the mapper type have a DAC.
func (mt MapperType) HasDAC() bool {
	return handlers[mt].dac
}

// HasSCC returns true if cartridges of the mapper type have an SCC.
func (mt MapperType) HasSCC() bool {
	return mt == KonamiSCC
}

// handler is the behaviour of one mapper type. the write function is
// mandatory. the other functions can be nil.
type handler struct {
	// size of the SRAM in bytes and the header of the SRAM image
	sramSize   int
	sramHeader string

	dac bool

	// sets the bank table after a reset. generic reset is used if nil
	reset func(rom *ROM)

	write func(rom *ROM, addr uint16, value uint8, t emutime.EmuTime)

	// special registers. the bool is false if addr is not a register
	read func(rom *ROM, addr uint16) (uint8, bool)

	// returns true if the cache line starting at addr can't be cached
	uncacheable func(rom *ROM, addr uint16) bool
}

// the size of the SRAM used by most mappers with battery backed memory.
const sramSize = 0x2000

var handlers = [numMapperTypes]handler{
	Plain:       {reset: resetPlain, write: writeNothing},
	Generic8kB:  {write: writeGeneric8kB},
	Generic16kB: {write: writeGeneric16kB},
	KonamiSCC:   {write: writeKonamiSCC},
	Konami:      {write: writeKonami},
	ASCII8kB:    {write: writeASCII8kB},
	ASCII16kB:   {write: writeASCII16kB},
	RType:       {write: writeRType},
	Hydlide2:    {sramSize: sramSize, write: writeHydlide2},
	ASCII8SRAM:  {sramSize: sramSize, write: writeASCII8SRAM},
	GameMaster2: {sramSize: sramSize, write: writeGameMaster2},
	Synthesizer: {dac: true, write: writeSynthesizer},
	Majutsushi:  {dac: true, write: writeMajutsushi},
	CrossBlaim:  {write: writeCrossBlaim},
	Panasonic: {
		reset:       resetPanasonic,
		write:       writePanasonic,
		read:        readPanasonic,
		uncacheable: uncacheablePanasonic,
	},
	FMPAC: {
		sramSize:    fmpacSRAMSize,
		sramHeader:  fmpacHeader,
		reset:       resetFMPAC,
		write:       writeFMPAC,
		read:        readFMPAC,
		uncacheable: uncacheableFMPAC,
	},
}
