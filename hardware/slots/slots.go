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

// Package slots manages the reservation of a machine's cartridge slots. The
// slots are named a, b, c, ... in the order the machine configuration lists
// them.
package slots

import (
	"fmt"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/hardware/config"
)

// Sentinal error patterns.
const (
	SlotUnavailable = "slots: slot %s unavailable: %v"
)

// AnySlot can be given to ReserveSlot() to reserve the first free slot.
const AnySlot = "any"

// Slot is a cartridge slot.
type Slot struct {
	Name  string
	PS    int
	SS    int
	Owner string
}

func (s Slot) String() string {
	owner := "empty"
	if s.Owner != "" {
		owner = s.Owner
	}
	if s.SS == config.NotExpanded {
		return fmt.Sprintf("%s: %d (%s)", s.Name, s.PS, owner)
	}
	return fmt.Sprintf("%s: %d-%d (%s)", s.Name, s.PS, s.SS, owner)
}

// Manager owns the cartridge slots of one machine.
type Manager struct {
	slots []Slot
}

// NewManager is the preferred method of initialisation for the Manager type.
func NewManager(external []config.ExternalSlot) *Manager {
	m := &Manager{}
	for i, e := range external {
		m.slots = append(m.slots, Slot{
			Name: string(rune('a' + i)),
			PS:   e.PS,
			SS:   e.SS,
		})
	}
	return m
}

// ReserveSlot reserves the named slot for the owner.
func (m *Manager) ReserveSlot(name string, owner string) (Slot, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	if name == AnySlot || name == "" {
		for i := range m.slots {
			if m.slots[i].Owner == "" {
				m.slots[i].Owner = owner
				return m.slots[i], nil
			}
		}
		return Slot{}, curated.Errorf(SlotUnavailable, AnySlot, "all slots in use")
	}

	for i := range m.slots {
		if m.slots[i].Name == name {
			if m.slots[i].Owner != "" {
				return Slot{}, curated.Errorf(SlotUnavailable, name, fmt.Sprintf("in use by %s", m.slots[i].Owner))
			}
			m.slots[i].Owner = owner
			return m.slots[i], nil
		}
	}

	return Slot{}, curated.Errorf(SlotUnavailable, name, "no such slot")
}

// ReleaseSlot releases all slots reserved by the owner.
func (m *Manager) ReleaseSlot(owner string) {
	for i := range m.slots {
		if m.slots[i].Owner == owner {
			m.slots[i].Owner = ""
		}
	}
}

// Slots returns a copy of the slot list.
func (m *Manager) Slots() []Slot {
	s := make([]Slot, len(m.slots))
	copy(s, m.slots)
	return s
}
