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
	"io"

	"github.com/bradleyjkemp/memviz"
)

type graphDevice struct {
	Name       string
	Type       string
	Placements []string
	Detail     string
}

type graphHardware struct {
	Name    string
	Slot    string
	Devices []*graphDevice
}

type graphMachine struct {
	Name       string
	State      string
	Time       string
	Base       *graphHardware
	Extensions []*graphHardware
	Shared     map[string]int
	Slots      []string
}

func graphOf(ext *Extension) *graphHardware {
	g := &graphHardware{Name: ext.Name}
	if ext.HasSlot {
		g.Slot = ext.Slot.Name
	}
	for _, pd := range ext.devices {
		d := &graphDevice{
			Name: pd.dev.Name(),
			Type: pd.typ,
		}
		for _, p := range pd.placements {
			d.Placements = append(d.Placements, p.String())
		}
		if s, ok := pd.dev.(fmt.Stringer); ok {
			d.Detail = s.String()
		}
		g.Devices = append(g.Devices, d)
	}
	return g
}

// DumpGraph writes a graphviz description of the machine's hardware to w.
func (m *Machine) DumpGraph(w io.Writer) {
	g := &graphMachine{
		Name:   m.Config.Name,
		State:  m.State().String(),
		Time:   m.CurrentTime().String(),
		Shared: make(map[string]int),
	}
	if m.base != nil {
		g.Base = graphOf(m.base)
	}
	for _, ext := range m.extensions {
		g.Extensions = append(g.Extensions, graphOf(ext))
	}
	for n, e := range m.shared {
		g.Shared[n] = e.count
	}
	for _, s := range m.Slots.Slots() {
		g.Slots = append(g.Slots, s.String())
	}
	memviz.Map(w, g)
}
