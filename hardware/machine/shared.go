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

	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/logger"
)

type sharedEntry struct {
	payload any
	count   int
}

// AcquireShared implements the environment.SharedStore interface. The first
// request for a name creates the payload. Every request must be matched by a
// call to ReleaseShared().
func (m *Machine) AcquireShared(name string, create func() (any, error)) (any, error) {
	if e, ok := m.shared[name]; ok {
		e.count++
		return e.payload, nil
	}

	p, err := create()
	if err != nil {
		return nil, err
	}
	m.shared[name] = &sharedEntry{payload: p, count: 1}
	logger.Logf(m, "machine", "created shared resource %s", name)

	return p, nil
}

// ReleaseShared implements the environment.SharedStore interface. The
// payload is destroyed when the last reference is released, if it implements
// the device.Destroyer interface.
func (m *Machine) ReleaseShared(name string) {
	e, ok := m.shared[name]
	if !ok {
		panic(fmt.Sprintf("machine: release of unknown shared resource (%s)", name))
	}

	e.count--
	if e.count > 0 {
		return
	}

	delete(m.shared, name)
	if d, ok := e.payload.(device.Destroyer); ok {
		d.Destroy()
	}
	logger.Logf(m, "machine", "destroyed shared resource %s", name)
}

// SharedCount returns the number of references to the named shared
// resource. Returns zero if the resource doesn't exist.
func (m *Machine) SharedCount(name string) int {
	if e, ok := m.shared[name]; ok {
		return e.count
	}
	return 0
}
