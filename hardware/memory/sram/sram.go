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

package sram

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/state"
	"github.com/jlautenbag/openMSX/logger"
)

// Blank is the value of every byte in SRAM that has never been written.
const Blank = 0xff

// SRAM is a fixed size area of battery backed memory.
type SRAM struct {
	env *environment.Environment

	// the hardware the SRAM belongs to and the user name allocated for it
	hwName   string
	userName string

	// file name of the image inside the persistent directory
	name string

	// the full path of the image. empty if there is no image
	path string

	header []byte
	data   []uint8

	// write the image when the SRAM is destroyed. subject to the SaveSRAM
	// preference
	save bool
}

// NewSRAM is the preferred method of initialisation for the SRAM type. The
// name is the file name of the image in the persistent directory of the
// hardware. An empty name creates SRAM that is never loaded or saved.
func NewSRAM(env *environment.Environment, hwName string, name string, size int, header string, load bool, save bool) *SRAM {
	s := &SRAM{
		env:    env,
		hwName: hwName,
		name:   name,
		header: []byte(header),
		data:   make([]uint8, size),
		save:   save,
	}
	s.Erase()

	if name == "" {
		return s
	}

	if env.Names != nil {
		s.userName = env.Names.UserName(hwName)
	}

	var err error
	s.path, err = env.Prefs.PersistentPath(filepath.Join(hwName, s.userName), name)
	if err != nil {
		logger.Logf(env, "sram", "%s: %v", name, err)
		s.path = ""
		return s
	}

	if load {
		if err := s.load(); err != nil {
			logger.Logf(env, "sram", "%v: starting blank", err)
			s.Erase()
		} else {
			logger.Logf(env, "sram", "loaded %s", s.path)
		}
	}

	return s
}

func (s *SRAM) String() string {
	if s.path == "" {
		return fmt.Sprintf("%d bytes", len(s.data))
	}
	return fmt.Sprintf("%d bytes (%s)", len(s.data), s.path)
}

// Path returns the path of the image on disk. Returns the empty string if
// the SRAM has no image.
func (s *SRAM) Path() string {
	return s.path
}

// Size returns the number of bytes of memory.
func (s *SRAM) Size() int {
	return len(s.data)
}

// Read the byte at offset addr.
func (s *SRAM) Read(addr int) uint8 {
	return s.data[addr]
}

// Write a byte at offset addr.
func (s *SRAM) Write(addr int, value uint8) {
	s.data[addr] = value
}

// Bytes returns the memory. Callers may read from the slice but must use
// Write() to change it.
func (s *SRAM) Bytes() []uint8 {
	return s.data
}

// Erase sets every byte to Blank.
func (s *SRAM) Erase() {
	for i := range s.data {
		s.data[i] = Blank
	}
}

func (s *SRAM) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return curated.Errorf("sram: %v", err)
	}
	defer f.Close()

	if len(s.header) > 0 {
		hdr := make([]byte, len(s.header))
		if _, err := io.ReadFull(f, hdr); err != nil {
			return curated.Errorf("sram: %s: %v", s.name, err)
		}
		if !bytes.Equal(hdr, s.header) {
			return curated.Errorf("sram: %s: %v", s.name, "unrecognised header")
		}
	}

	if _, err := io.ReadFull(f, s.data); err != nil {
		return curated.Errorf("sram: %s: %v", s.name, err)
	}

	return nil
}

// Flush writes the image to disk.
func (s *SRAM) Flush() error {
	if s.path == "" {
		return nil
	}

	f, err := os.Create(s.path)
	if err != nil {
		return curated.Errorf("sram: %v", err)
	}

	if len(s.header) > 0 {
		if _, err := f.Write(s.header); err != nil {
			_ = f.Close()
			return curated.Errorf("sram: %s: %v", s.name, err)
		}
	}
	if _, err := f.Write(s.data); err != nil {
		_ = f.Close()
		return curated.Errorf("sram: %s: %v", s.name, err)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf("sram: %s: %v", s.name, err)
	}

	logger.Logf(s.env, "sram", "saved %s", s.path)

	return nil
}

// Destroy writes the image to disk if required and releases the user name
// of the SRAM.
func (s *SRAM) Destroy() {
	if s.save && s.env.Prefs.SaveSRAM.Get().(bool) {
		if err := s.Flush(); err != nil {
			logger.Log(s.env, "sram", err)
		}
	}
	if s.userName != "" && s.env.Names != nil {
		s.env.Names.FreeUserName(s.hwName, s.userName)
		s.userName = ""
	}
}

// Snapshot implements the state.Serialiser interface.
func (s *SRAM) Snapshot(a *state.Archive) {
	a.Put("data", s.data)
}

// Restore implements the state.Serialiser interface.
func (s *SRAM) Restore(a *state.Archive) error {
	var data []uint8
	if err := a.Get("data", &data); err != nil {
		return err
	}
	if len(data) != len(s.data) {
		return curated.Errorf(state.BadField, "data", fmt.Sprintf("%d bytes of SRAM, expected %d", len(data), len(s.data)))
	}
	copy(s.data, data)
	return nil
}
