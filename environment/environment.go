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

// Package environment is the context given to every device of an emulated
// machine. It gives access to the services of the machine (scheduler, cache
// invalidation, I/O port registration, shared resources and user names) and
// to the preferences of the emulation.
//
// Environment implements logger.Permission. An environment created for a
// secondary emulation (for mapper detection or for tests) can be made quiet.
package environment

import (
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/preferences"
	"github.com/jlautenbag/openMSX/hardware/scheduler"
)

// Label is used to name the environment.
type Label string

// IOBus is implemented by the processor's I/O front end.
type IOBus interface {
	RegisterIO(port uint8, dev device.IODevice) error
	UnregisterIO(port uint8, dev device.IODevice)
}

// SharedStore gives access to reference counted per-machine resources.
type SharedStore interface {
	// returns the named resource, calling create if this is the first
	// request for the name
	AcquireShared(name string, create func() (any, error)) (any, error)

	// releases one reference. the resource is destroyed when the last
	// reference is released
	ReleaseShared(name string)
}

// UserNames allocates names unique among live instances of the same kind of
// hardware.
type UserNames interface {
	UserName(hwName string) string
	FreeUserName(hwName string, userName string)
}

// Environment is used to provide context for an emulation.
type Environment struct {
	Label Label

	// the emulation preferences
	Prefs *preferences.Preferences

	Scheduler *scheduler.Scheduler
	Cache     device.CacheInvalidator
	IO        IOBus
	Shared    SharedStore
	Names     UserNames

	// suppress log entries
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. If prefs is nil then a new Preferences instance that is
// never saved to disk is created.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label:     label,
		Scheduler: scheduler.NewScheduler(),
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}
	env.Prefs = prefs

	return env, nil
}

// CurrentTime returns the time the machine's timeline has reached.
func (env *Environment) CurrentTime() emutime.EmuTime {
	return env.Scheduler.CurrentTime()
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Quiet
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == ""
}

// InvalidateCache forwards to the cache invalidator if there is one.
func (env *Environment) InvalidateCache(start uint16, lines int) {
	if env.Cache != nil {
		env.Cache.InvalidateCache(start, lines)
	}
}
