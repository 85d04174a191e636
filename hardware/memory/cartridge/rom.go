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
	"fmt"
	"math/bits"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/memory/sram"
	"github.com/jlautenbag/openMSX/hardware/sound/dac"
	"github.com/jlautenbag/openMSX/hardware/sound/scc"
	"github.com/jlautenbag/openMSX/hardware/state"
	"github.com/jlautenbag/openMSX/logger"
	"github.com/jlautenbag/openMSX/romloader"
)

const (
	bankSize = 0x1000
	numBanks = 0x10000 / bankSize

	// the smallest ROM image after padding
	minImageSize = 0x2000

	// the SCC window of KonamiSCC cartridges
	sccStart = 0x9800
	sccEnd   = 0xa000
)

// the buffers that a bank can refer to.
type bufferID uint8

const (
	romBuffer bufferID = iota
	sramBuffer
	unmappedBuffer
)

func (id bufferID) String() string {
	switch id {
	case romBuffer:
		return "R"
	case sramBuffer:
		return "S"
	}
	return "-"
}

// bankRef is an entry in the bank table. Offset is in bytes from the start of
// the buffer.
type bankRef struct {
	Buf    bufferID `json:"buf"`
	Offset int      `json:"offset"`
}

// ROM is a cartridge with bank switched ROM.
type ROM struct {
	device.Base

	env *environment.Environment

	mapper MapperType
	h      *handler

	// how the mapper type was decided
	detection Detection

	Filename string
	Hash     string

	// the ROM image padded to a power of two. imageSize is the size of the
	// image before padding
	rom       []uint8
	imageSize int

	// lowest page the cartridge is placed in. used by the Plain mapper
	lowestPage int

	unmapped []uint8

	// nil if the mapper type has no SRAM
	sram *sram.SRAM

	table [numBanks]bankRef

	// nil if the mapper type has no SCC
	scc        *scc.SCC
	sccEnabled bool

	// nil if the mapper type has no DAC
	dac *dac.DAC

	// one bit per 8KiB region. a set bit means SRAM is mapped in the region
	regioSRAM uint8

	panasonicBank [8]int
	panasonicCtrl uint8

	fmpac fmpacRegs
}

// NewROM is the preferred method of initialisation for the ROM type. The
// image is read from the file named by the "filename" parameter or from the
// inline data of the configuration.
func NewROM(env *environment.Environment, cfg *config.DeviceConfig) (*ROM, error) {
	ld, err := loaderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := ld.Load(); err != nil {
		return nil, curated.Errorf(BadImage, cfg.ID, err)
	}

	det, err := Resolve(env, cfg.ParameterDefault("mappertype", "auto"), ld.Data, ld.Hash)
	if err != nil {
		return nil, curated.Errorf(BadImage, cfg.ID, err)
	}

	return newROM(env, cfg, ld, det)
}

// NewFMPAC creates an FM-PAC cartridge. The "filename" parameter is
// optional. Without it the ROM is blank.
func NewFMPAC(env *environment.Environment, cfg *config.DeviceConfig) (*ROM, error) {
	ld := romloader.NewInlineLoader(cfg.ID, blank(fmpacROMSize))
	if _, ok := cfg.Params["filename"]; ok || len(cfg.Data) > 0 {
		var err error
		ld, err = loaderFromConfig(cfg)
		if err != nil {
			return nil, err
		}
	}
	if err := ld.Load(); err != nil {
		return nil, curated.Errorf(BadImage, cfg.ID, err)
	}
	return newROM(env, cfg, ld, Detection{Type: FMPAC, Method: Explicit})
}

func loaderFromConfig(cfg *config.DeviceConfig) (romloader.Loader, error) {
	var ld romloader.Loader
	if len(cfg.Data) > 0 {
		ld = romloader.NewInlineLoader(cfg.ID, append([]uint8{}, cfg.Data...))
	} else {
		fn, err := cfg.Parameter("filename")
		if err != nil {
			return ld, err
		}
		ld = romloader.NewLoader(fn)
	}
	ld.Hash = strings.ToLower(cfg.ParameterDefault("sha1", ""))
	return ld, nil
}

func blank(size int) []uint8 {
	b := make([]uint8, size)
	for i := range b {
		b[i] = device.Unmapped
	}
	return b
}

// padImage returns the image padded with unmapped bytes to a power of two
// size.
func padImage(data []uint8) []uint8 {
	size := max(len(data), minImageSize)
	if size&(size-1) != 0 {
		size = 1 << bits.Len(uint(size))
	}
	rom := blank(size)
	copy(rom, data)
	return rom
}

func newROM(env *environment.Environment, cfg *config.DeviceConfig, ld romloader.Loader, det Detection) (*ROM, error) {
	rom := &ROM{
		Base:       device.NewBase(cfg.ID),
		env:        env,
		mapper:     det.Type,
		h:          &handlers[det.Type],
		detection:  det,
		Filename:   ld.Filename,
		Hash:       ld.Hash,
		rom:        padImage(ld.Data),
		imageSize:  len(ld.Data),
		lowestPage: 4,
		unmapped:   blank(0x4000),
	}

	for _, p := range cfg.Placements {
		rom.lowestPage = min(rom.lowestPage, p.Base>>14)
	}

	if rom.h.sramSize > 0 {
		load, err := cfg.ParameterBool("loadsram", true)
		if err != nil {
			return nil, err
		}
		save, err := cfg.ParameterBool("savesram", true)
		if err != nil {
			return nil, err
		}
		name := cfg.ParameterDefault("sramname", defaultSRAMName(rom.mapper, ld))
		hw := cfg.Hardware
		if hw == "" {
			hw = "cartridge"
		}
		rom.sram = sram.NewSRAM(env, hw, name, rom.h.sramSize, rom.h.sramHeader, load, save)
	}

	t := env.CurrentTime()

	if rom.mapper.HasSCC() {
		rom.scc = scc.NewSCC()
	}
	if rom.h.dac {
		rom.dac = dac.NewDAC(env, t)
	}

	logger.Logf(env, "cartridge", "%s: %s", cfg.ID, rom.detection)

	rom.Reset(t)

	return rom, nil
}

func defaultSRAMName(mt MapperType, ld romloader.Loader) string {
	if mt == FMPAC {
		return "fmpac.pac"
	}
	return ld.ShortName() + ".sram"
}

func (rom *ROM) String() string {
	return fmt.Sprintf("%s: %s [%s]", rom.Name(), rom.mapper, rom.MappedBanks())
}

// MapperType returns the mapper type of the cartridge.
func (rom *ROM) MapperType() MapperType {
	return rom.mapper
}

// Detection returns how the mapper type of the cartridge was decided.
func (rom *ROM) Detection() Detection {
	return rom.detection
}

// SCC returns the sound chip of the cartridge. Returns nil if the cartridge
// has no SCC.
func (rom *ROM) SCC() *scc.SCC {
	return rom.scc
}

// DAC returns the DAC of the cartridge. Returns nil if the cartridge has no
// DAC.
func (rom *ROM) DAC() *dac.DAC {
	return rom.dac
}

// SRAM returns the battery backed memory of the cartridge. Returns nil if the
// cartridge has no SRAM.
func (rom *ROM) SRAM() *sram.SRAM {
	return rom.sram
}

// MappedBanks returns a summary of the bank table. Each 4KiB bank is shown
// as the buffer and the 4KiB block number in that buffer.
func (rom *ROM) MappedBanks() string {
	s := strings.Builder{}
	for i, b := range rom.table {
		if i > 0 {
			s.WriteRune(' ')
		}
		if b.Buf == unmappedBuffer {
			s.WriteRune('-')
		} else {
			s.WriteString(fmt.Sprintf("%s%d", b.Buf, b.Offset/bankSize))
		}
	}
	return s.String()
}

func (rom *ROM) buffer(id bufferID) []uint8 {
	switch id {
	case romBuffer:
		return rom.rom
	case sramBuffer:
		return rom.sram.Bytes()
	}
	return rom.unmapped
}

// the byte at addr in the bank table.
func (rom *ROM) readBank(addr uint16) uint8 {
	b := rom.table[addr/bankSize]
	return rom.buffer(b.Buf)[b.Offset+int(addr&(bankSize-1))]
}

func (rom *ROM) inSCCWindow(addr uint16) bool {
	return rom.sccEnabled && addr >= sccStart && addr < sccEnd
}

// Reset implements the device.Device interface.
func (rom *ROM) Reset(t emutime.EmuTime) {
	if rom.scc != nil {
		rom.scc.Reset(t)
	}
	rom.sccEnabled = false
	if rom.dac != nil {
		rom.dac.Reset(t)
	}

	// SRAM is not selected after a reset in any known cartridge
	rom.regioSRAM = 0

	if rom.h.reset != nil {
		rom.h.reset(rom)
	} else {
		resetGeneric(rom)
	}
}

// ReadMem implements the device.MemDevice interface.
func (rom *ROM) ReadMem(addr uint16, t emutime.EmuTime) uint8 {
	if rom.inSCCWindow(addr) {
		return rom.scc.Read(uint8(addr), t)
	}
	if rom.h.read != nil {
		if v, ok := rom.h.read(rom, addr); ok {
			return v
		}
	}
	return rom.readBank(addr)
}

// PeekMem implements the device.MemDevice interface.
func (rom *ROM) PeekMem(addr uint16, _ emutime.EmuTime) uint8 {
	if rom.inSCCWindow(addr) {
		return rom.scc.Peek(uint8(addr))
	}
	if rom.h.read != nil {
		if v, ok := rom.h.read(rom, addr); ok {
			return v
		}
	}
	return rom.readBank(addr)
}

// WriteMem implements the device.MemDevice interface.
func (rom *ROM) WriteMem(addr uint16, value uint8, t emutime.EmuTime) {
	rom.h.write(rom, addr, value, t)
}

// ReadCacheLine implements the device.MemDevice interface.
func (rom *ROM) ReadCacheLine(addr uint16) []uint8 {
	if rom.inSCCWindow(addr) {
		return nil
	}
	if rom.h.uncacheable != nil && rom.h.uncacheable(rom, addr) {
		return nil
	}
	b := rom.table[addr/bankSize]
	start := b.Offset + int(addr&(bankSize-1))
	return rom.buffer(b.Buf)[start : start+device.CacheLineSize]
}

// Destroy implements the device.Destroyer interface. Battery backed memory
// is written to disk.
func (rom *ROM) Destroy() {
	if rom.dac != nil {
		if err := rom.dac.StopRecording(rom.env.CurrentTime()); err != nil {
			logger.Log(rom.env, "cartridge", err)
		}
	}
	if rom.sram != nil {
		rom.sram.Destroy()
	}
}

// invalidate the read cache for size bytes starting at start.
func (rom *ROM) invalidate(start int, size int) {
	rom.env.InvalidateCache(uint16(start), size/device.CacheLineSize)
}

func (rom *ROM) setBank4kB(region int, buf bufferID, offset int) {
	rom.table[region] = bankRef{Buf: buf, Offset: offset}
	rom.invalidate(region*0x1000, 0x1000)
}

func (rom *ROM) setBank8kB(region int, buf bufferID, offset int) {
	rom.table[2*region] = bankRef{Buf: buf, Offset: offset}
	rom.table[2*region+1] = bankRef{Buf: buf, Offset: offset + 0x1000}
	rom.invalidate(region*0x2000, 0x2000)
}

func (rom *ROM) setBank16kB(region int, buf bufferID, offset int) {
	for i := range 4 {
		rom.table[4*region+i] = bankRef{Buf: buf, Offset: offset + i*0x1000}
	}
	rom.invalidate(region*0x4000, 0x4000)
}

func (rom *ROM) setUnmapped16kB(region int) {
	rom.setBank16kB(region, unmappedBuffer, 0)
}

// wrap a block number to the number of blocks of blockSize in the ROM. the
// number of blocks is always a power of two.
func (rom *ROM) wrap(block int, blockSize int) int {
	n := len(rom.rom) / blockSize
	if block < n {
		return block
	}
	return block & (n - 1)
}

func (rom *ROM) setROM8kB(region int, block int) {
	rom.setBank8kB(region, romBuffer, rom.wrap(block, 0x2000)*0x2000)
}

func (rom *ROM) setROM16kB(region int, block int) {
	// an 8KiB image is mirrored in both halves of the 16KiB region
	if len(rom.rom) < 0x4000 {
		rom.setROM8kB(2*region, 0)
		rom.setROM8kB(2*region+1, 0)
		return
	}
	rom.setBank16kB(region, romBuffer, rom.wrap(block, 0x4000)*0x4000)
}

// the version of the cartridge snapshot.
const snapshotVersion = 1

// Snapshot implements the state.Serialiser interface.
func (rom *ROM) Snapshot(a *state.Archive) {
	a.Put("mapper", rom.mapper.String())
	a.Put("hash", rom.Hash)
	a.Put("table", rom.table)
	a.Put("sccEnabled", rom.sccEnabled)
	a.Put("regioSRAM", rom.regioSRAM)

	switch rom.mapper {
	case Panasonic:
		a.Put("panasonicBank", rom.panasonicBank)
		a.Put("panasonicCtrl", rom.panasonicCtrl)
	case FMPAC:
		a.Put("fmpac", rom.fmpac)
	}

	if rom.sram != nil {
		rom.sram.Snapshot(a.Child("sram", snapshotVersion))
	}
	if rom.scc != nil {
		rom.scc.Snapshot(a.Child("scc", snapshotVersion))
	}
	if rom.dac != nil {
		rom.dac.Snapshot(a.Child("dac", snapshotVersion))
	}
}

// Restore implements the state.Serialiser interface. The cartridge must have
// been created with the same configuration as the snapshotted cartridge.
func (rom *ROM) Restore(a *state.Archive) error {
	var mapper string
	if err := a.Get("mapper", &mapper); err != nil {
		return err
	}
	if mapper != rom.mapper.String() {
		return curated.Errorf(state.BadField, "mapper", fmt.Sprintf("%s does not match %s", mapper, rom.mapper))
	}

	var hash string
	if err := a.Get("hash", &hash); err != nil {
		return err
	}
	if hash != rom.Hash {
		return curated.Errorf(state.BadField, "hash", "ROM image does not match")
	}

	var table [numBanks]bankRef
	if err := a.Get("table", &table); err != nil {
		return err
	}
	for i, b := range table {
		if b.Buf > unmappedBuffer || (b.Buf == sramBuffer && rom.sram == nil) {
			return curated.Errorf(state.BadField, "table", fmt.Sprintf("bank %d: bad buffer", i))
		}
		if b.Offset < 0 || b.Offset%bankSize != 0 || b.Offset+bankSize > len(rom.buffer(b.Buf)) {
			return curated.Errorf(state.BadField, "table", fmt.Sprintf("bank %d: bad offset %#x", i, b.Offset))
		}
	}

	var sccEnabled bool
	if err := a.Get("sccEnabled", &sccEnabled); err != nil {
		return err
	}
	if sccEnabled && rom.scc == nil {
		return curated.Errorf(state.BadField, "sccEnabled", "cartridge has no SCC")
	}
	if err := a.Get("regioSRAM", &rom.regioSRAM); err != nil {
		return err
	}

	switch rom.mapper {
	case Panasonic:
		if err := a.Get("panasonicBank", &rom.panasonicBank); err != nil {
			return err
		}
		if err := a.Get("panasonicCtrl", &rom.panasonicCtrl); err != nil {
			return err
		}
	case FMPAC:
		if err := a.Get("fmpac", &rom.fmpac); err != nil {
			return err
		}
	}

	if rom.sram != nil {
		c, err := a.Lookup("sram")
		if err != nil {
			return err
		}
		if err := rom.sram.Restore(c); err != nil {
			return err
		}
	}
	if rom.scc != nil {
		c, err := a.Lookup("scc")
		if err != nil {
			return err
		}
		if err := rom.scc.Restore(c); err != nil {
			return err
		}
	}
	if rom.dac != nil {
		c, err := a.Lookup("dac")
		if err != nil {
			return err
		}
		if err := rom.dac.Restore(c); err != nil {
			return err
		}
	}

	rom.table = table
	rom.sccEnabled = sccEnabled
	rom.invalidate(0, 0x10000)

	return nil
}
