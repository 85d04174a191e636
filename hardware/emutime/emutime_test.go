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

package emutime_test

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/test"
)

func TestDivModByConst(t *testing.T) {
	divisors := []uint64{
		1, 2, 3, 5, 7, 10, 64, 959, 960, 77922, 3579545,
		1000000007, 1<<32 - 1, 1<<32 + 1, 1<<40 + 1, 1 << 63,
		math.MaxUint64 - 1, math.MaxUint64,
	}

	rnd := rand.New(rand.NewSource(1))

	for _, d := range divisors {
		dm := emutime.NewDivModByConst(d)
		test.ExpectEquality(t, dm.Divisor(), d)

		numerators := []uint64{0, 1, d - 1, d, d + 1, math.MaxUint64, math.MaxUint64 - 1}
		for i := 0; i < 10000; i++ {
			numerators = append(numerators, rnd.Uint64())
			numerators = append(numerators, rnd.Uint64()>>uint(rnd.Intn(64)))
		}

		for _, n := range numerators {
			if !test.ExpectEquality(t, dm.Div(n), n/d, d, n) {
				return
			}
			q, r := dm.DivMod(n)
			test.ExpectEquality(t, q, n/d, d, n)
			test.ExpectEquality(t, r, n%d, d, n)
			test.ExpectEquality(t, dm.Mod(n), n%d, d, n)
		}
	}
}

// reference is round(MainFreq * denom / nom) using arbitrary precision.
func reference(nom uint64, denom uint64) *big.Int {
	x := new(big.Int).Mul(big.NewInt(emutime.MainFreq), new(big.Int).SetUint64(denom))
	x.Mul(x, big.NewInt(2))
	x.Add(x, new(big.Int).SetUint64(nom))
	return x.Div(x, new(big.Int).Mul(new(big.Int).SetUint64(nom), big.NewInt(2)))
}

var frequencies = [][2]uint64{
	{3579545, 1},
	{44100, 1},
	{96000, 1},
	{50, 1},
	{3579545, 2},
	{3579545, 6},
	{21477270, 4},
	{10738635, 3},
	{1, 1},
	{math.MaxUint64, 1 << 40},
}

func TestMasterTicks(t *testing.T) {
	for _, f := range frequencies {
		freq, err := emutime.NewFrequency(f[0], f[1])
		test.DemandSuccess(t, err, f)
		ref := reference(f[0], f[1])
		test.ExpectSuccess(t, ref.IsUint64(), f)
		test.ExpectEquality(t, freq.MasterTicks(), ref.Uint64(), f)
	}

	test.ExpectEquality(t, emutime.Hz(emutime.MainFreq).MasterTicks(), uint64(1))
	test.ExpectEquality(t, emutime.Hz(3579545).MasterTicks(), uint64(960))
}

func TestBadFrequency(t *testing.T) {
	// zero terms
	_, err := emutime.NewFrequency(0, 1)
	test.ExpectFailure(t, err)
	_, err = emutime.NewFrequency(1, 0)
	test.ExpectFailure(t, err)

	// tick length does not fit in 32 bits
	_, err = emutime.NewFrequency(1, 2)
	test.ExpectFailure(t, err)
	_, err = emutime.NewFrequency(1, math.MaxUint64)
	test.ExpectFailure(t, err)

	// faster than the master clock
	_, err = emutime.NewFrequency(emutime.MainFreq*3, 1)
	test.ExpectFailure(t, err)
}

func TestNoDrift(t *testing.T) {
	const ticks = 1000000000

	for _, f := range frequencies {
		freq := emutime.MustFrequency(f[0], f[1])

		start := emutime.EmuTime(12345)
		clk := emutime.NewClock(freq, start)

		// add in chunks small enough for FastAdd. slow frequencies use the
		// overflow safe Add()
		add := clk.FastAdd
		chunk := uint64((1<<32 - 1) / freq.MasterTicks())
		if chunk < 1000 {
			add = clk.Add
			chunk = 1000000
		} else if chunk > 1000000 {
			chunk = 1000000
		}
		var done uint64
		for done < ticks {
			n := chunk
			if ticks-done < n {
				n = ticks - done
			}
			add(n)
			done += n
		}

		ref := new(big.Int).Mul(big.NewInt(ticks), reference(f[0], f[1]))
		ref.Add(ref, big.NewInt(int64(start)))
		test.ExpectSuccess(t, ref.IsUint64(), f)
		test.ExpectEquality(t, uint64(clk.Time()), ref.Uint64(), f)

		// a second clock covering the same interval in one step
		clk2 := emutime.NewClock(freq, start)
		test.ExpectEquality(t, clk2.TicksUntil(clk.Time()), uint64(ticks), f)
		test.ExpectEquality(t, clk2.Plus(ticks), clk.Time(), f)
		clk2.Advance(clk.Time())
		test.ExpectEquality(t, clk2.Time(), clk.Time(), f)

		clk3 := emutime.NewClock(freq, start)
		clk3.Add(ticks)
		test.ExpectEquality(t, clk3.Time(), clk.Time(), f)
	}
}

func TestAdvance(t *testing.T) {
	freq := emutime.Hz(44100)
	mt := freq.MasterTicks()

	clk := emutime.NewClock(freq, emutime.Zero)

	// advance to a time between ticks
	target := emutime.EmuTime(10*mt + mt/2)
	clk.Advance(target)
	test.ExpectEquality(t, clk.Time(), emutime.EmuTime(10*mt))
	test.ExpectEquality(t, clk.TicksUntil(target), uint64(0))
	test.ExpectSuccess(t, clk.Before(target))

	// advance to a tick boundary
	target = emutime.EmuTime(20 * mt)
	clk.Advance(target)
	test.ExpectEquality(t, clk.Time(), target)
	test.ExpectEquality(t, clk.TicksUntil(target), uint64(0))
	test.ExpectFailure(t, clk.Before(target))
}

func TestTicksUntilMonotonic(t *testing.T) {
	freq := emutime.MustFrequency(3579545, 6)
	clk := emutime.NewClock(freq, emutime.EmuTime(777))

	var prev uint64
	for d := uint64(0); d < 50000; d += 37 {
		n := clk.TicksUntil(clk.Time().Add(emutime.EmuDuration(d)))
		if n < prev {
			t.Fatalf("TicksUntil decreased from %d to %d", prev, n)
		}
		prev = n
	}
}

func TestTicksUntilRoundUp(t *testing.T) {
	freq := emutime.Hz(3579545)
	clk := emutime.NewClock(freq, emutime.Zero)

	test.ExpectEquality(t, clk.TicksUntilRoundUp(0), uint64(0))
	test.ExpectEquality(t, clk.TicksUntilRoundUp(1), uint64(1))
	test.ExpectEquality(t, clk.TicksUntilRoundUp(960), uint64(1))
	test.ExpectEquality(t, clk.TicksUntilRoundUp(961), uint64(2))
	test.ExpectEquality(t, clk.TicksUntil(961), uint64(1))
}

func TestReset(t *testing.T) {
	clk := emutime.NewClock(emutime.Hz(44100), emutime.Zero)
	clk.Add(100)
	clk.Reset(emutime.EmuTime(5))
	test.ExpectEquality(t, clk.Time(), emutime.EmuTime(5))

	// reset to an earlier time is allowed
	clk.Reset(emutime.Zero)
	test.ExpectEquality(t, clk.Time(), emutime.Zero)
}

func expectPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	f()
}

func TestPreconditions(t *testing.T) {
	clk := emutime.NewClock(emutime.Hz(44100), emutime.EmuTime(1000000))

	expectPanic(t, func() { clk.TicksUntil(emutime.Zero) })
	expectPanic(t, func() { clk.TicksUntilRoundUp(emutime.Zero) })
	expectPanic(t, func() { clk.Advance(emutime.Zero) })
	expectPanic(t, func() { clk.FastAdd(1 << 20) })
	expectPanic(t, func() { emutime.EmuTime(0).Sub(1) })
	expectPanic(t, func() { emutime.NewDivModByConst(0) })
	expectPanic(t, func() { emutime.MustFrequency(0, 0) })
}

func TestDuration(t *testing.T) {
	freq := emutime.Hz(3579545)
	test.ExpectEquality(t, freq.Duration(3579545), emutime.EmuDuration(emutime.MainFreq))
	test.ExpectEquality(t, freq.Duration(3579545).Seconds(), 1.0)
	test.ExpectEquality(t, freq.Ticks(emutime.DurationFromSeconds(0.5)), uint64(3579545/2))
	test.ExpectEquality(t, emutime.EmuTime(100).Sub(40), emutime.EmuDuration(60))
	test.ExpectEquality(t, emutime.EmuTime(40).Add(60), emutime.EmuTime(100))
	test.ExpectEquality(t, emutime.Infinity.String(), "infinity")
}
