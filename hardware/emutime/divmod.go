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
	"math/bits"
)

// DivModByConst divides by a constant using a multiply by a precomputed
// reciprocal followed by a shift. The result is exact for every 64 bit
// dividend.
type DivModByConst struct {
	divisor uint64
	magic   uint64
	shift   uint
	pow2    bool

	// the magic number needed 65 bits. the division uses the add-and-shift
	// variant
	add bool
}

// NewDivModByConst creates a divider for d. It panics if d is zero.
func NewDivModByConst(d uint64) DivModByConst {
	if d == 0 {
		panic("emutime: division by zero")
	}

	k := uint(63 - bits.LeadingZeros64(d))

	if d&(d-1) == 0 {
		return DivModByConst{
			divisor: d,
			shift:   k,
			pow2:    true,
		}
	}

	// (2^(64+k)) / d. the high word 2^k is always less than d
	m, rem := bits.Div64(1<<k, 0, d)

	dm := DivModByConst{
		divisor: d,
		shift:   k,
	}

	if e := d - rem; e < 1<<k {
		dm.magic = m + 1
		return dm
	}

	// 2^(64+k+1) / d
	m += m
	r2 := rem + rem
	if r2 >= d || r2 < rem {
		m++
	}
	dm.magic = m + 1
	dm.add = true

	return dm
}

// Divisor returns the constant the DivModByConst was created for.
func (dm DivModByConst) Divisor() uint64 {
	return dm.divisor
}

// Div returns n / divisor.
func (dm DivModByConst) Div(n uint64) uint64 {
	if dm.pow2 {
		return n >> dm.shift
	}

	q, _ := bits.Mul64(dm.magic, n)
	if dm.add {
		t := ((n - q) >> 1) + q
		return t >> dm.shift
	}
	return q >> dm.shift
}

// Mod returns n % divisor.
func (dm DivModByConst) Mod(n uint64) uint64 {
	return n - dm.Div(n)*dm.divisor
}

// DivMod returns both n / divisor and n % divisor.
func (dm DivModByConst) DivMod(n uint64) (uint64, uint64) {
	q := dm.Div(n)
	return q, n - q*dm.divisor
}
