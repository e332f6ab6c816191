// This file is part of sidbus.
//
// sidbus is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sidbus is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with sidbus.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sidbus/sidbus/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file while sidbus is running ***"

// the separator between key and value on every line of the preferences file
const keySep = " :: "

// Sentinal error patterns. Use curated.Is() to test for them.
const (
	NoPrefsFile   = "prefs: no prefs file (%s)"
	DuplicateKey  = "prefs: key already added (%s)"
	InvalidLine   = "prefs: %s: invalid line (%d)"
	ValueRejected = "prefs: %s: %v"
)

// Disk represents preference values as stored on disk.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref

	// keys with values taken from the command line
	cmdline map[string]bool
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k].String()))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path:    path,
		entries: make(map[string]pref),
		cmdline: make(map[string]bool),
	}
	return dsk, nil
}

// Path returns the filename of the preferences file.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add preference value to list of values to store/load from Disk. The key
// argument specifies the name of the value on disk.
//
// If the key has a value on the command line stack (see
// PushCommandLineStack()) then that value is set immediately.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return curated.Errorf(ValueRejected, key, err)
		}
		dsk.cmdline[key] = true
	}

	return nil
}

// keys returns the sorted list of keys. must be called with the critical
// section held
func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// read the preferences file into a map of key/value strings
func (dsk *Disk) read() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return nil, curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	kv := make(map[string]string)

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		s := scanner.Text()
		if line == 1 && s == WarningBoilerPlate {
			continue
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		k, v, ok := strings.Cut(s, keySep)
		if !ok {
			return nil, curated.Errorf(InvalidLine, dsk.path, line)
		}
		kv[strings.TrimSpace(k)] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("prefs: %v", err)
	}

	return kv, nil
}

// Save current preference values to disk. Entries already in the file that
// were not added to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	kv, err := dsk.read()
	if err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
		kv = make(map[string]string)
	}

	for k, p := range dsk.entries {
		// values from the command line are not saved. whatever was on disk
		// remains on disk
		if dsk.cmdline[k] {
			continue
		}
		kv[k] = p.String()
	}

	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, kv[k]))
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0600); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load preference values from disk. If saveOnFail is true and the file does
// not exist then the current values are saved to a new file. The NoPrefsFile
// error is returned in either case.
//
// Values set from the command line are not changed.
func (dsk *Disk) Load(saveOnFail bool) error {
	dsk.crit.Lock()
	kv, err := dsk.read()
	dsk.crit.Unlock()

	if err != nil {
		if curated.Is(err, NoPrefsFile) && saveOnFail {
			if serr := dsk.Save(); serr != nil {
				return serr
			}
		}
		return err
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for k, p := range dsk.entries {
		v, ok := kv[k]
		if !ok {
			continue
		}
		if dsk.cmdline[k] {
			continue
		}
		if err := p.Set(v); err != nil {
			return curated.Errorf(ValueRejected, k, err)
		}
	}

	return nil
}
