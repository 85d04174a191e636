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

package machine

import (
	"fmt"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/cpu"
	"github.com/jlautenbag/openMSX/hardware/cpuinterface"
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/preferences"
	"github.com/jlautenbag/openMSX/hardware/scheduler"
	"github.com/jlautenbag/openMSX/hardware/slots"
	"github.com/jlautenbag/openMSX/logger"
)

// Sentinal error patterns.
const (
	NotMachine        = "machine: %s is not a machine configuration"
	NotExtension      = "machine: %s is not an extension configuration"
	ExtensionNotFound = "machine: extension not found (%s)"
	DeviceNotFound    = "machine: device not found (%s)"
	UnknownDevice     = "machine: %s: unknown device type (%s)"
	BadPlacement      = "machine: %s: %v"
	TornDown          = "machine: machine has been torn down"
)

// State of the machine.
type State int

// List of valid State values.
const (
	Unpowered State = iota
	Powered
	Active
	Paused
	Destroyed
)

func (s State) String() string {
	switch s {
	case Unpowered:
		return "unpowered"
	case Powered:
		return "powered"
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Destroyed:
		return "destroyed"
	}
	return "unknown"
}

// Machine is an emulated MSX.
type Machine struct {
	env  *environment.Environment
	repo *config.Repository

	// the machine configuration
	Config *config.HardwareConfig

	Scheduler    *scheduler.Scheduler
	CPUInterface *cpuinterface.CPUInterface
	CPU          *cpu.CPU
	Slots        *slots.Manager

	factories map[string]Factory

	// the devices of the machine configuration
	base *Extension

	// loaded extensions in the order they were loaded
	extensions []*Extension

	// every live device in the order it was added. no ownership
	devices []device.Device

	shared    map[string]*sharedEntry
	userNames map[string]map[string]bool

	// teardown functions for the components that are not devices, in the
	// order they were created
	teardown []func()

	powered   bool
	active    bool
	paused    bool
	destroyed bool
}

// NewMachine creates the machine with the named configuration. The
// configuration is found in the repository. The label is used by the
// environment to distinguish the main emulation from other instances. A nil
// prefs creates a default set of preferences.
func NewMachine(label environment.Label, prefs *preferences.Preferences, repo *config.Repository, name string) (*Machine, error) {
	hc, err := repo.Find(name)
	if err != nil {
		return nil, err
	}
	return NewMachineFromConfig(label, prefs, repo, hc)
}

// NewMachineFromConfig creates a machine from a configuration that has
// already been parsed. The repository is used to find extensions.
func NewMachineFromConfig(label environment.Label, prefs *preferences.Preferences, repo *config.Repository, hc *config.HardwareConfig) (*Machine, error) {
	if hc.IsExtension {
		return nil, curated.Errorf(NotMachine, hc.Name)
	}

	env, err := environment.NewEnvironment(label, prefs)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		env:       env,
		repo:      repo,
		Config:    hc,
		Scheduler: env.Scheduler,
		factories: defaultFactories(),
		shared:    make(map[string]*sharedEntry),
		userNames: make(map[string]map[string]bool),
	}

	// the order of construction is the reverse of the order of teardown
	m.teardown = append(m.teardown, func() { m.Scheduler.Reset(m.Scheduler.CurrentTime()) })

	m.CPUInterface = cpuinterface.NewCPUInterface()
	env.Cache = m.CPUInterface
	env.IO = m.CPUInterface
	env.Shared = m
	env.Names = m
	m.teardown = append(m.teardown, func() {
		m.CPUInterface.Reset()
		env.Cache = nil
		env.IO = nil
	})

	m.CPU = cpu.NewCPU(m.CPUInterface, m.CurrentTime())
	m.teardown = append(m.teardown, func() { m.CPU.Pause() })

	for _, ps := range hc.Expanded {
		if err := m.CPUInterface.SetExpanded(ps, true); err != nil {
			return nil, curated.Errorf(BadPlacement, hc.Name, err)
		}
	}

	m.Slots = slots.NewManager(hc.ExternalSlots)

	m.base, err = m.build(hc, hc.Name, "")
	if err != nil {
		return nil, err
	}

	logger.Logf(m, "machine", "%s created with %d devices", hc.Name, len(m.base.devices))

	return m, nil
}

func (m *Machine) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s [%s]", m.Config.Name, m.State()))
	for _, e := range m.extensions {
		s.WriteString(fmt.Sprintf(" + %s", e.Name))
	}
	return s.String()
}

// AllowLogging implements the logger.Permission interface.
func (m *Machine) AllowLogging() bool {
	return m.env.AllowLogging()
}

// Environment returns the environment shared by the devices of the machine.
func (m *Machine) Environment() *environment.Environment {
	return m.env
}

// CurrentTime returns the time the machine's scheduler has reached.
func (m *Machine) CurrentTime() emutime.EmuTime {
	return m.Scheduler.CurrentTime()
}

// State returns the current state of the machine.
func (m *Machine) State() State {
	switch {
	case m.destroyed:
		return Destroyed
	case !m.powered:
		return Unpowered
	case m.paused:
		return Paused
	case m.active:
		return Active
	}
	return Powered
}

// PowerUp the machine. Every device is reset at the current time. Devices
// that implement device.PowerUpper have their PowerUp() function called
// instead. Does nothing if the machine is already powered.
func (m *Machine) PowerUp() {
	if m.powered || m.destroyed {
		return
	}
	m.powered = true

	t := m.CurrentTime()
	m.resetCore(t)
	for _, d := range m.devices {
		if p, ok := d.(device.PowerUpper); ok {
			p.PowerUp(t)
		} else {
			d.Reset(t)
		}
	}

	logger.Logf(m, "machine", "%s powered up", m.Config.Name)
}

// PowerDown the machine. Devices that implement device.PowerDowner are
// notified. Pending sync points are discarded.
func (m *Machine) PowerDown() {
	if !m.powered {
		return
	}
	m.powered = false
	m.paused = false

	t := m.CurrentTime()
	for i := len(m.devices) - 1; i >= 0; i-- {
		if p, ok := m.devices[i].(device.PowerDowner); ok {
			p.PowerDown(t)
		}
	}
	m.Scheduler.Reset(t)

	logger.Logf(m, "machine", "%s powered down", m.Config.Name)
}

// Reset every device of the machine at the current time. Pending sync
// points are discarded.
func (m *Machine) Reset() {
	if m.destroyed {
		return
	}
	t := m.CurrentTime()
	m.resetCore(t)
	for _, d := range m.devices {
		d.Reset(t)
	}
	logger.Logf(m, "machine", "%s reset", m.Config.Name)
}

func (m *Machine) resetCore(t emutime.EmuTime) {
	m.Scheduler.Reset(t)
	m.CPUInterface.Reset()
	m.CPU.Reset(t)
	m.paused = false
	if m.CPU.IsPaused() {
		m.CPU.Unpause(t)
	}
}

// Pause the processor. Every other device continues to run when Execute()
// is called.
func (m *Machine) Pause() {
	if !m.powered || m.paused {
		return
	}
	m.paused = true
	m.CPU.Pause()
}

// Unpause the processor.
func (m *Machine) Unpause() {
	if !m.paused {
		return
	}
	m.paused = false
	m.CPU.Unpause(m.CurrentTime())
}

// Activate or deactivate the machine. Only an active machine advances when
// Execute() is called.
func (m *Machine) Activate(active bool) {
	if m.destroyed {
		return
	}
	m.active = active
}

// IsActive returns true if the machine has been activated.
func (m *Machine) IsActive() bool {
	return m.active
}

// Execute advances the machine to the limit. Sync points are delivered in
// time order and the processor runs between them. Returns false if the
// machine is not powered and active, in which case nothing happens.
func (m *Machine) Execute(limit emutime.EmuTime) bool {
	if !m.powered || !m.active || m.destroyed {
		return false
	}

	for m.CurrentTime() < limit {
		next := min(m.Scheduler.Next(), limit)
		m.CPU.Execute(next)
		m.Scheduler.Schedule(next)
	}

	return true
}

// Destroy the machine. Extensions are removed in the reverse of the order
// they were loaded, then the devices of the machine configuration are
// destroyed and finally the core components. The machine cannot be used
// afterwards.
func (m *Machine) Destroy() {
	if m.destroyed {
		return
	}

	m.PowerDown()

	for i := len(m.extensions) - 1; i >= 0; i-- {
		m.unbuild(m.extensions[i])
	}
	m.extensions = nil

	if m.base != nil {
		m.unbuild(m.base)
		m.base = nil
	}

	for i := len(m.teardown) - 1; i >= 0; i-- {
		m.teardown[i]()
	}
	m.teardown = nil

	m.destroyed = true
	m.active = false

	logger.Logf(m, "machine", "%s destroyed", m.Config.Name)
}
