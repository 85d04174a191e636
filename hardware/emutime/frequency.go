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

package emutime

import (
	"fmt"
	"math/bits"

	"github.com/jlautenbag/openMSX/curated"
)

// Sentinal error patterns.
const (
	InvalidFrequency = "emutime: invalid frequency (%d/%d Hz): %v"
)

// Frequency is a tick rate of nom/denom Hz.
type Frequency struct {
	nom   uint64
	denom uint64

	// master ticks per tick. always fits in 32 bits
	masterTicks uint64

	div DivModByConst
}

// NewFrequency creates a Frequency of nom/denom Hz. The number of master
// ticks per tick is round(MainFreq * denom / nom), computed without loss of
// precision. Frequencies where that number is zero or does not fit in 32 bits
// are rejected.
func NewFrequency(nom uint64, denom uint64) (*Frequency, error) {
	if nom == 0 || denom == 0 {
		return nil, curated.Errorf(InvalidFrequency, nom, denom, "zero term")
	}

	hi, lo := bits.Mul64(MainFreq, denom)
	var carry uint64
	lo, carry = bits.Add64(lo, nom/2, 0)
	hi += carry

	if hi >= nom {
		return nil, curated.Errorf(InvalidFrequency, nom, denom, "too slow")
	}
	mt, _ := bits.Div64(hi, lo, nom)

	if mt == 0 {
		return nil, curated.Errorf(InvalidFrequency, nom, denom, "faster than master clock")
	}
	if mt >= 1<<32 {
		return nil, curated.Errorf(InvalidFrequency, nom, denom, "too slow")
	}

	return &Frequency{
		nom:         nom,
		denom:       denom,
		masterTicks: mt,
		div:         NewDivModByConst(mt),
	}, nil
}

// MustFrequency is like NewFrequency but panics on error. For use with
// constant frequencies.
func MustFrequency(nom uint64, denom uint64) *Frequency {
	f, err := NewFrequency(nom, denom)
	if err != nil {
		panic(err)
	}
	return f
}

// Hz creates a Frequency of a whole number of Hz.
func Hz(f uint64) *Frequency {
	return MustFrequency(f, 1)
}

func (f *Frequency) String() string {
	if f.denom == 1 {
		return fmt.Sprintf("%dHz", f.nom)
	}
	return fmt.Sprintf("%d/%dHz", f.nom, f.denom)
}

// MasterTicks returns the number of master ticks per tick.
func (f *Frequency) MasterTicks() uint64 {
	return f.masterTicks
}

// Duration of n ticks.
func (f *Frequency) Duration(n uint64) EmuDuration {
	return EmuDuration(n * f.masterTicks)
}

// Ticks returns the number of whole ticks in the duration.
func (f *Frequency) Ticks(d EmuDuration) uint64 {
	return f.div.Div(uint64(d))
}
