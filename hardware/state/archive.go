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

package state

import (
	"encoding/json"
	"sort"

	"github.com/jlautenbag/openMSX/curated"
)

// Sentinal error patterns.
const (
	MissingField = "state: missing field (%s)"
	MissingChild = "state: missing child (%s)"
	BadField     = "state: field %s: %v"
	Malformed    = "state: malformed archive: %v"
)

// Serialiser is implemented by every component that can be saved and
// restored.
type Serialiser interface {
	Snapshot(a *Archive)
	Restore(a *Archive) error
}

// Archive is a versioned collection of named fields and named child
// archives.
type Archive struct {
	Version  int                        `json:"version"`
	Fields   map[string]json.RawMessage `json:"fields,omitempty"`
	Children map[string]*Archive        `json:"children,omitempty"`

	// the first error encountered by Put()
	err error
}

// NewArchive is the preferred method of initialisation for the Archive type.
func NewArchive(version int) *Archive {
	return &Archive{
		Version:  version,
		Fields:   make(map[string]json.RawMessage),
		Children: make(map[string]*Archive),
	}
}

// Put value under the field name. Any existing value for the name is
// replaced.
func (a *Archive) Put(name string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		if a.err == nil {
			a.err = curated.Errorf(BadField, name, err)
		}
		return
	}
	a.Fields[name] = b
}

// Get the named field and store it in v, which must be a pointer.
func (a *Archive) Get(name string, v any) error {
	b, ok := a.Fields[name]
	if !ok {
		return curated.Errorf(MissingField, name)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return curated.Errorf(BadField, name, err)
	}
	return nil
}

// Has returns true if the named field exists.
func (a *Archive) Has(name string) bool {
	_, ok := a.Fields[name]
	return ok
}

// Child returns a new child archive with the name and version. Any existing
// child with the same name is replaced.
func (a *Archive) Child(name string, version int) *Archive {
	c := NewArchive(version)
	a.Children[name] = c
	return c
}

// Lookup the named child archive.
func (a *Archive) Lookup(name string) (*Archive, error) {
	c, ok := a.Children[name]
	if !ok {
		return nil, curated.Errorf(MissingChild, name)
	}
	return c, nil
}

// ChildNames returns the names of all child archives, sorted.
func (a *Archive) ChildNames() []string {
	n := make([]string, 0, len(a.Children))
	for k := range a.Children {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// firstError returns the first Put() error in the archive tree.
func (a *Archive) firstError() error {
	if a.err != nil {
		return a.err
	}
	for _, n := range a.ChildNames() {
		if err := a.Children[n].firstError(); err != nil {
			return err
		}
	}
	return nil
}

// Marshal the archive tree.
func (a *Archive) Marshal() ([]byte, error) {
	if err := a.firstError(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, curated.Errorf(Malformed, err)
	}
	return b, nil
}

// Unmarshal data created by Marshal().
func Unmarshal(data []byte) (*Archive, error) {
	a := &Archive{}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, curated.Errorf(Malformed, err)
	}
	a.normalise()
	return a, nil
}

// normalise makes sure the maps of every archive in the tree are usable.
func (a *Archive) normalise() {
	if a.Fields == nil {
		a.Fields = make(map[string]json.RawMessage)
	}
	if a.Children == nil {
		a.Children = make(map[string]*Archive)
	}
	for _, c := range a.Children {
		c.normalise()
	}
}
