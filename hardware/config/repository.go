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

package config

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
)

// Sentinal error patterns.
const (
	NotFound = "config: hardware configuration not found (%s)"
)

// the file extension of configuration files.
const fileExt = ".lua"

//go:embed builtin/*.lua
var builtin embed.FS

// Repository finds hardware configurations by name. Configurations are
// looked for in the registered sources, then in the repository directory,
// then in the configurations built into the program.
type Repository struct {
	dir     string
	sources map[string]string
}

// NewRepository is the preferred method of initialisation for the Repository
// type. An empty dir means no configuration files are read from disk.
func NewRepository(dir string) *Repository {
	return &Repository{
		dir:     dir,
		sources: make(map[string]string),
	}
}

// Register Lua source under a name. An existing registration with the same
// name is replaced.
func (r *Repository) Register(name string, src string) {
	r.sources[strings.ToLower(name)] = src
}

// Find the named configuration. Returns an error matching NotFound if there
// is no configuration with the name.
func (r *Repository) Find(name string) (*HardwareConfig, error) {
	key := strings.ToLower(name)

	if src, ok := r.sources[key]; ok {
		return Parse(name, src)
	}

	if r.dir != "" && !strings.ContainsAny(key, `/\`) {
		src, err := os.ReadFile(filepath.Join(r.dir, key+fileExt))
		if err == nil {
			return Parse(name, string(src))
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(BadConfig, name, err)
		}
	}

	src, err := builtin.ReadFile(path.Join("builtin", key+fileExt))
	if err == nil {
		return Parse(name, string(src))
	}

	return nil, curated.Errorf(NotFound, name)
}

// Names returns the names of all configurations known to the repository,
// sorted.
func (r *Repository) Names() []string {
	names := make(map[string]bool)
	for k := range r.sources {
		names[k] = true
	}

	add := func(entries []fs.DirEntry) {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), fileExt) {
				names[strings.TrimSuffix(e.Name(), fileExt)] = true
			}
		}
	}

	if r.dir != "" {
		if entries, err := os.ReadDir(r.dir); err == nil {
			add(entries)
		}
	}
	if entries, err := builtin.ReadDir("builtin"); err == nil {
		add(entries)
	}

	n := make([]string, 0, len(names))
	for k := range names {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
