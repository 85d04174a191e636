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

package scc_test

import (
	"testing"

	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/sound/scc"
	"github.com/jlautenbag/openMSX/hardware/state"
	"github.com/jlautenbag/openMSX/test"
)

func TestWaveTables(t *testing.T) {
	s := scc.NewSCC()
	s.Write(0x00, 0x11, emutime.Zero)
	s.Write(0x3f, 0x80, emutime.Zero)
	s.Write(0x7f, 0x7f, emutime.Zero)

	test.ExpectEquality(t, s.Read(0x00, emutime.Zero), uint8(0x11))
	test.ExpectEquality(t, s.Read(0x3f, emutime.Zero), uint8(0x80))
	test.ExpectEquality(t, s.Wave(1)[31], int8(-128))

	// channels 4 and 5 share a wave table
	test.ExpectEquality(t, s.Wave(3)[31], int8(0x7f))
	test.ExpectEquality(t, s.Wave(4)[31], int8(0x7f))
}

func TestControlRegisters(t *testing.T) {
	s := scc.NewSCC()
	s.Write(0x80, 0x34, emutime.Zero)
	s.Write(0x81, 0xf2, emutime.Zero)
	s.Write(0x8a, 0xff, emutime.Zero)
	s.Write(0x8f, 0x05, emutime.Zero)
	s.Write(0xc0, 0x20, emutime.Zero)

	test.ExpectEquality(t, s.Frequency(0), uint16(0x234))
	test.ExpectEquality(t, s.Volume(0), uint8(0x0f))
	test.ExpectSuccess(t, s.Enabled(0))
	test.ExpectFailure(t, s.Enabled(1))
	test.ExpectSuccess(t, s.Enabled(2))
	test.ExpectEquality(t, s.Deformation(), uint8(0x20))

	// mirror of the control registers
	s.Write(0x9e, 0x07, emutime.Zero)
	test.ExpectEquality(t, s.Volume(4), uint8(0x07))

	// control registers can't be read
	for _, addr := range []uint8{0x80, 0x8f, 0x9f, 0xc0, 0xff} {
		test.ExpectEquality(t, s.Read(addr, emutime.Zero), uint8(0xff), addr)
	}

	s.Reset(emutime.Zero)
	test.ExpectEquality(t, s.Frequency(0), uint16(0))
	test.ExpectFailure(t, s.Enabled(0))
}

func TestSnapshot(t *testing.T) {
	s := scc.NewSCC()
	s.Write(0x05, 0x55, emutime.Zero)
	s.Write(0x83, 0x0a, emutime.Zero)

	a := state.NewArchive(1)
	s.Snapshot(a)
	d, err := a.Marshal()
	test.DemandSuccess(t, err)

	b, err := state.Unmarshal(d)
	test.DemandSuccess(t, err)
	r := scc.NewSCC()
	test.DemandSuccess(t, r.Restore(b))
	test.ExpectEquality(t, r.Peek(0x05), uint8(0x55))
	test.ExpectEquality(t, r.Frequency(1), uint16(0xa00))
	test.ExpectEquality(t, r.String(), s.String())
}
