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

// Package dac implements an 8 bit DAC as used by cartridges that play
// samples by writing to a fixed address. The output level is resampled at
// SampleRate and can be recorded to a WAV file.
package dac

import (
	"fmt"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/state"
	"github.com/jlautenbag/openMSX/logger"
	"github.com/jlautenbag/openMSX/wavwriter"
)

// SampleRate is the rate at which the output level is sampled.
const SampleRate = 44100

// Center is the level of the DAC after a reset. It is the level for silence.
const Center = 0x80

var sampleFreq = emutime.Hz(SampleRate)

// DAC is an 8 bit digital to analogue converter.
type DAC struct {
	perm  logger.Permission
	clock *emutime.Clock
	level uint8

	// nil if the DAC is not being recorded
	rec *wavwriter.WavWriter
}

// NewDAC is the preferred method of initialisation for the DAC type.
func NewDAC(perm logger.Permission, t emutime.EmuTime) *DAC {
	return &DAC{
		perm:  perm,
		clock: emutime.NewClock(sampleFreq, t),
		level: Center,
	}
}

func (dac *DAC) String() string {
	return fmt.Sprintf("level %#02x", dac.level)
}

// Level returns the current output level.
func (dac *DAC) Level() uint8 {
	return dac.level
}

// Reset the DAC to the silent level.
func (dac *DAC) Reset(t emutime.EmuTime) {
	dac.Write(Center, t)
}

// Write a new level. The old level is output until t.
func (dac *DAC) Write(value uint8, t emutime.EmuTime) {
	dac.sync(t)
	dac.level = value
}

// sync outputs the current level for every sample period until t.
func (dac *DAC) sync(t emutime.EmuTime) {
	if !dac.clock.Before(t) {
		return
	}
	if dac.rec != nil {
		s := int16((int(dac.level) - Center) << 8)
		for range dac.clock.TicksUntil(t) {
			dac.rec.Add(s)
		}
	}
	dac.clock.Advance(t)
}

// Record the output of the DAC to a WAV file. The file is written when
// recording stops.
func (dac *DAC) Record(filename string) error {
	if dac.rec != nil {
		return curated.Errorf("dac: %v", "already recording")
	}
	var err error
	dac.rec, err = wavwriter.New(filename, SampleRate)
	if err != nil {
		return curated.Errorf("dac: %v", err)
	}
	logger.Logf(dac.perm, "dac", "recording to %s", filename)
	return nil
}

// IsRecording returns true if the DAC is being recorded.
func (dac *DAC) IsRecording() bool {
	return dac.rec != nil
}

// StopRecording outputs samples until t and writes the recording to disk.
func (dac *DAC) StopRecording(t emutime.EmuTime) error {
	if dac.rec == nil {
		return nil
	}
	dac.sync(t)
	rec := dac.rec
	dac.rec = nil
	if err := rec.EndMixing(); err != nil {
		return curated.Errorf("dac: %v", err)
	}
	logger.Logf(dac.perm, "dac", "%d samples written to %s", rec.Len(), rec.Filename())
	return nil
}

// Snapshot implements the state.Serialiser interface.
func (dac *DAC) Snapshot(a *state.Archive) {
	a.Put("level", dac.level)
	dac.clock.Snapshot(a.Child("clock", 1))
}

// Restore implements the state.Serialiser interface.
func (dac *DAC) Restore(a *state.Archive) error {
	if err := a.Get("level", &dac.level); err != nil {
		return err
	}
	c, err := a.Lookup("clock")
	if err != nil {
		return err
	}
	return dac.clock.Restore(c)
}
