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
	"sort"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/slots"
	"github.com/jlautenbag/openMSX/hardware/state"
	"github.com/jlautenbag/openMSX/logger"
)

// Sentinal error patterns.
const (
	UnsupportedVersion = "machine: unsupported snapshot version (%d)"
	WrongMachine       = "machine: snapshot is of machine %s not %s"
	DeviceMismatch     = "machine: snapshot of extension %s has %d devices not %d"
)

// Version of the snapshot format.
//
//	1	extensions stored by configuration name
//	2	extensions stored with their configuration and slot
//	3	pause state
//	4	shared resources. device names of extensions are optional
const Version = 4

type extensionRecord struct {
	Name   string                 `json:"name"`
	Slot   string                 `json:"slot,omitempty"`
	Config *config.HardwareConfig `json:"config"`

	// names of the devices in order of construction. device names depend
	// on the order extensions were loaded in so they are not recreated by
	// building the configuration
	Devices []string `json:"devices,omitempty"`
}

// Snapshot the state of the machine. The snapshot includes the extensions
// that are loaded and the state of every device.
func (m *Machine) Snapshot() ([]byte, error) {
	if m.destroyed {
		return nil, curated.Errorf(TornDown)
	}

	a := state.NewArchive(Version)
	a.Put("machine", m.Config.Name)
	a.Put("powered", m.powered)
	a.Put("active", m.active)
	a.Put("paused", m.paused)

	recs := make([]extensionRecord, 0, len(m.extensions))
	for _, ext := range m.extensions {
		r := extensionRecord{Name: ext.Name, Config: ext.Config}
		for _, pd := range ext.devices {
			r.Devices = append(r.Devices, pd.dev.Name())
		}
		if ext.HasSlot {
			r.Slot = ext.Slot.Name
		}
		recs = append(recs, r)
	}
	a.Put("extensions", recs)

	m.Scheduler.Snapshot(a.Child("scheduler", 1))
	m.CPUInterface.Snapshot(a.Child("cpuinterface", 1))
	m.CPU.Snapshot(a.Child("cpu", 1))

	sh := a.Child("shared", 1)
	for _, n := range m.sharedNames() {
		if s, ok := m.shared[n].payload.(state.Serialiser); ok {
			s.Snapshot(sh.Child(n, 1))
		}
	}

	dv := a.Child("devices", 1)
	for _, d := range m.devices {
		d.Snapshot(dv.Child(d.Name(), 1))
	}

	return a.Marshal()
}

func (m *Machine) sharedNames() []string {
	n := make([]string, 0, len(m.shared))
	for k := range m.shared {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// migrate an archive from an older version to the current version.
func (m *Machine) migrate(a *state.Archive) error {
	if a.Version < 2 {
		var names []string
		if err := a.Get("extensions", &names); err != nil {
			return err
		}
		recs := make([]extensionRecord, 0, len(names))
		for _, n := range names {
			hc, err := m.repo.Find(n)
			if err != nil {
				return curated.Errorf(ExtensionNotFound, n)
			}
			recs = append(recs, extensionRecord{Name: n, Slot: slots.AnySlot, Config: hc})
		}
		a.Put("extensions", recs)
	}

	if a.Version < 3 {
		a.Put("paused", false)
	}

	if a.Version < 4 {
		a.Child("shared", 1)
	}

	a.Version = Version
	return nil
}

// the interface of a shared resource that can be reset.
type resetter interface {
	Reset()
}

// the values of a snapshot that are applied to the machine after the
// extensions have been rebuilt.
type snapshotFlags struct {
	powered bool
	active  bool
	paused  bool
}

// Restore the state of the machine from a snapshot. Extensions are removed
// and loaded so that they match the snapshot. If the snapshot cannot be
// restored the machine is returned to the state it was in before the call.
func (m *Machine) Restore(data []byte) error {
	if m.destroyed {
		return curated.Errorf(TornDown)
	}

	a, recs, flags, err := m.decode(data)
	if err != nil {
		return err
	}
	if err := m.validate(a, recs); err != nil {
		return err
	}

	prev, err := m.Snapshot()
	if err != nil {
		return err
	}

	if err := m.restore(a, recs, flags); err != nil {
		if rerr := m.rollback(prev); rerr != nil {
			logger.Logf(m, "machine", "cannot return to state before restore: %v", rerr)
		}
		return err
	}

	logger.Logf(m, "machine", "%s restored", m.Config.Name)

	return nil
}

// decode a snapshot and migrate it to the current version.
func (m *Machine) decode(data []byte) (*state.Archive, []extensionRecord, snapshotFlags, error) {
	var flags snapshotFlags

	a, err := state.Unmarshal(data)
	if err != nil {
		return nil, nil, flags, err
	}
	if a.Version < 1 || a.Version > Version {
		return nil, nil, flags, curated.Errorf(UnsupportedVersion, a.Version)
	}
	if a.Version < Version {
		logger.Logf(m, "machine", "migrating snapshot from version %d", a.Version)
		if err := m.migrate(a); err != nil {
			return nil, nil, flags, err
		}
	}

	var name string
	if err := a.Get("machine", &name); err != nil {
		return nil, nil, flags, err
	}
	if !strings.EqualFold(name, m.Config.Name) {
		return nil, nil, flags, curated.Errorf(WrongMachine, name, m.Config.Name)
	}

	var recs []extensionRecord
	if err := a.Get("extensions", &recs); err != nil {
		return nil, nil, flags, err
	}

	if err := a.Get("powered", &flags.powered); err != nil {
		return nil, nil, flags, err
	}
	if err := a.Get("active", &flags.active); err != nil {
		return nil, nil, flags, err
	}
	if err := a.Get("paused", &flags.paused); err != nil {
		return nil, nil, flags, err
	}

	return a, recs, flags, nil
}

// validate the parts of the snapshot that can be checked without changing
// the machine.
func (m *Machine) validate(a *state.Archive, recs []extensionRecord) error {
	for _, r := range recs {
		if r.Config == nil {
			return curated.Errorf(ExtensionNotFound, r.Name)
		}
	}

	for _, n := range []string{"scheduler", "cpuinterface", "cpu", "shared"} {
		if _, err := a.Lookup(n); err != nil {
			return err
		}
	}

	dv, err := a.Lookup("devices")
	if err != nil {
		return err
	}
	if m.base != nil {
		for _, d := range m.base.Devices() {
			if _, err := dv.Lookup(d.Name()); err != nil {
				return err
			}
		}
	}
	for _, r := range recs {
		for _, n := range r.Devices {
			if _, err := dv.Lookup(n); err != nil {
				return err
			}
		}
	}

	return nil
}

// rollback to a snapshot taken by the machine itself.
func (m *Machine) rollback(prev []byte) error {
	a, recs, flags, err := m.decode(prev)
	if err != nil {
		return err
	}
	return m.restore(a, recs, flags)
}

func (m *Machine) restore(a *state.Archive, recs []extensionRecord, flags snapshotFlags) error {
	// replace the extensions with the ones in the snapshot
	for i := len(m.extensions) - 1; i >= 0; i-- {
		m.unbuild(m.extensions[i])
	}
	m.extensions = m.extensions[:0]
	for _, r := range recs {
		if r.Config == nil {
			return curated.Errorf(ExtensionNotFound, r.Name)
		}
		ext, err := m.build(r.Config, r.Name, r.Slot)
		if err != nil {
			return err
		}
		m.extensions = append(m.extensions, ext)
	}

	// names are applied once every extension has been built. the names in
	// the snapshot are unique so the final set of names is unique
	for i, r := range recs {
		if len(r.Devices) == 0 {
			continue
		}
		ext := m.extensions[i]
		if len(r.Devices) != len(ext.devices) {
			return curated.Errorf(DeviceMismatch, r.Name, len(r.Devices), len(ext.devices))
		}
		for j, n := range r.Devices {
			ext.devices[j].dev.SetName(n)
		}
	}

	for _, c := range []struct {
		name string
		s    state.Serialiser
	}{
		{"scheduler", m.Scheduler},
		{"cpuinterface", m.CPUInterface},
		{"cpu", m.CPU},
	} {
		ca, err := a.Lookup(c.name)
		if err != nil {
			return err
		}
		if err := c.s.Restore(ca); err != nil {
			return err
		}
	}

	sh, err := a.Lookup("shared")
	if err != nil {
		return err
	}
	for _, n := range m.sharedNames() {
		p := m.shared[n].payload
		c, err := sh.Lookup(n)
		if err != nil {
			if r, ok := p.(resetter); ok {
				r.Reset()
			}
			continue
		}
		if s, ok := p.(state.Serialiser); ok {
			if err := s.Restore(c); err != nil {
				return err
			}
		}
	}

	dv, err := a.Lookup("devices")
	if err != nil {
		return err
	}
	for _, d := range m.devices {
		c, err := dv.Lookup(d.Name())
		if err != nil {
			return err
		}
		if err := d.Restore(c); err != nil {
			return err
		}
	}

	m.powered = flags.powered
	m.active = flags.active
	m.paused = flags.paused && flags.powered
	if m.paused {
		m.CPU.Pause()
	}

	return nil
}
