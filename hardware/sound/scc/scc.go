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

package scc

import (
	"fmt"
	"strings"

	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/state"
)

// NumChannels is the number of sound channels of the SCC.
const NumChannels = 5

// WaveLength is the number of samples in a wave table.
const WaveLength = 32

// the number of wave tables. the last channel has no wave table of its own.
const numWaves = 4

// the value read from write-only registers.
const writeOnly = 0xff

// SCC is the register file of the sound chip.
type SCC struct {
	wave        [numWaves][WaveLength]int8
	freq        [NumChannels]uint16
	volume      [NumChannels]uint8
	enable      uint8
	deformation uint8
}

// NewSCC is the preferred method of initialisation for the SCC type.
func NewSCC() *SCC {
	return &SCC{}
}

func (scc *SCC) String() string {
	s := strings.Builder{}
	for ch := range NumChannels {
		on := "-"
		if scc.Enabled(ch) {
			on = "+"
		}
		s.WriteString(fmt.Sprintf("%d%s f=%03x v=%x ", ch+1, on, scc.freq[ch], scc.volume[ch]))
	}
	return strings.TrimSpace(s.String())
}

// Reset the sound chip. The wave tables are not affected.
func (scc *SCC) Reset(_ emutime.EmuTime) {
	scc.freq = [NumChannels]uint16{}
	scc.volume = [NumChannels]uint8{}
	scc.enable = 0
	scc.deformation = 0
}

// Read a register. The address is the offset in the 256 byte window.
func (scc *SCC) Read(addr uint8, _ emutime.EmuTime) uint8 {
	return scc.Peek(addr)
}

// Peek is the same as Read(). Reading from the SCC has no side effects.
func (scc *SCC) Peek(addr uint8) uint8 {
	if addr < 0x80 {
		return uint8(scc.wave[addr>>5][addr&0x1f])
	}
	return writeOnly
}

// Write a register. The address is the offset in the 256 byte window.
func (scc *SCC) Write(addr uint8, value uint8, _ emutime.EmuTime) {
	switch {
	case addr < 0x80:
		scc.wave[addr>>5][addr&0x1f] = int8(value)
	case addr < 0xa0:
		scc.writeControl(addr&0x0f, value)
	case addr >= 0xc0 && addr < 0xe0:
		scc.deformation = value
	}
}

func (scc *SCC) writeControl(reg uint8, value uint8) {
	switch {
	case reg < 0x0a:
		ch := reg >> 1
		if reg&1 == 0 {
			scc.freq[ch] = (scc.freq[ch] & 0xf00) | uint16(value)
		} else {
			scc.freq[ch] = (scc.freq[ch] & 0x0ff) | uint16(value&0x0f)<<8
		}
	case reg < 0x0f:
		scc.volume[reg-0x0a] = value & 0x0f
	default:
		scc.enable = value & 0x1f
	}
}

// Wave returns a copy of the wave table used by the channel.
func (scc *SCC) Wave(ch int) [WaveLength]int8 {
	if ch >= numWaves {
		ch = numWaves - 1
	}
	return scc.wave[ch]
}

// Frequency returns the 12 bit frequency divider of the channel.
func (scc *SCC) Frequency(ch int) uint16 {
	return scc.freq[ch]
}

// Volume returns the 4 bit volume of the channel.
func (scc *SCC) Volume(ch int) uint8 {
	return scc.volume[ch]
}

// Enabled returns true if the channel is enabled.
func (scc *SCC) Enabled(ch int) bool {
	return scc.enable&(1<<ch) != 0
}

// Deformation returns the value of the deformation register.
func (scc *SCC) Deformation() uint8 {
	return scc.deformation
}

// Snapshot implements the state.Serialiser interface.
func (scc *SCC) Snapshot(a *state.Archive) {
	a.Put("wave", scc.wave)
	a.Put("freq", scc.freq)
	a.Put("volume", scc.volume)
	a.Put("enable", scc.enable)
	a.Put("deformation", scc.deformation)
}

// Restore implements the state.Serialiser interface.
func (scc *SCC) Restore(a *state.Archive) error {
	if err := a.Get("wave", &scc.wave); err != nil {
		return err
	}
	if err := a.Get("freq", &scc.freq); err != nil {
		return err
	}
	if err := a.Get("volume", &scc.volume); err != nil {
		return err
	}
	if err := a.Get("enable", &scc.enable); err != nil {
		return err
	}
	return a.Get("deformation", &scc.deformation)
}
