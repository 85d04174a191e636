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

// Package preferences holds the preference values used by the emulated
// hardware. Values are stored on disk with the prefs package.
package preferences

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jlautenbag/openMSX/paths"
	"github.com/jlautenbag/openMSX/prefs"
)

// the name of the preferences file in the resource directory.
const prefsFile = "preferences"

// Preferences defines and collates all the preference values used by the
// emulated hardware.
type Preferences struct {
	dsk *prefs.Disk

	// write battery backed memory to disk when the owning device is destroyed
	SaveSRAM prefs.Bool

	// directory for battery backed memory images. empty string means the
	// "persistent" directory in the resource path
	PersistentDir prefs.String

	// ROM signature database file. empty string means no database
	ROMDatabase prefs.String

	// use heuristic mapper detection if the ROM database is malformed. if
	// false then a malformed database is an error
	GuessOnMalformed prefs.Bool

	// initialise RAM with random values rather than zero
	RandomState prefs.Bool

	// random values generated in the hardware packages should use the
	// following number source
	RandSrc *rand.Rand

	// the number used to seed RandSrc
	RandSeed int64
}

// DefaultPath returns the path of the preferences file in the resource
// directory.
func DefaultPath() (string, error) {
	return paths.ResourcePath("", prefsFile)
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. An empty path creates preferences that are never saved
// to or loaded from disk.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.Reseed(0)

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Add("hardware.savesram", &p.SaveSRAM); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("hardware.persistentdir", &p.PersistentDir); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("cartridge.romdatabase", &p.ROMDatabase); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("cartridge.guessonmalformed", &p.GuessOnMalformed); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("hardware.randomstate", &p.RandomState); err != nil {
		return nil, err
	}

	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() error {
	if err := p.SaveSRAM.Set(true); err != nil {
		return err
	}
	if err := p.PersistentDir.Set(""); err != nil {
		return err
	}
	if err := p.ROMDatabase.Set(""); err != nil {
		return err
	}
	if err := p.GuessOnMalformed.Set(true); err != nil {
		return err
	}
	return p.RandomState.Set(false)
}

// Reseed initialises the random number generator. Use a seed value of 0 to
// initialise with the current time.
func (p *Preferences) Reseed(seed int64) {
	if seed == 0 {
		p.RandSeed = time.Now().UnixNano()
	} else {
		p.RandSeed = seed
	}
	p.RandSrc = rand.New(rand.NewSource(p.RandSeed))
}

// Apply preference values given on the command line. Returns the keys that
// were not recognised.
func (p *Preferences) Apply(o prefs.Overrides) ([]string, error) {
	return p.dsk.Apply(o)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// PersistentPath returns the path of a battery backed memory image for the
// named hardware.
func (p *Preferences) PersistentPath(hwName string, file string) (string, error) {
	if dir := p.PersistentDir.String(); dir != "" {
		pth := filepath.Join(dir, hwName)
		if err := os.MkdirAll(pth, 0o700); err != nil {
			return "", err
		}
		return filepath.Join(pth, file), nil
	}
	return paths.ResourcePath(filepath.Join("persistent", hwName), file)
}
