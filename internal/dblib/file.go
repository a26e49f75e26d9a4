// Package dblib builds and writes Altium database link (.DbLib) files.
//
// A File is an ordered list of named sections, each an ordered list of
// key/value entries. Nothing is sorted: the output follows insertion order
// so the same input always produces byte-identical text.
package dblib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Entry is one Key=Value line.
type Entry struct {
	Key   string
	Value string
}

// Section is one [Name] block.
type Section struct {
	Name    string
	Entries []Entry
}

// Set appends a key/value entry, or replaces the value if key already exists.
func (s *Section) Set(key, value string) *Section {
	for i := range s.Entries {
		if s.Entries[i].Key == key {
			s.Entries[i].Value = value
			return s
		}
	}
	s.Entries = append(s.Entries, Entry{Key: key, Value: value})
	return s
}

// Get returns the value stored under key.
func (s *Section) Get(key string) (string, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// File is an ordered sequence of sections.
type File struct {
	Sections []*Section
}

// AddSection appends a new empty section and returns it.
func (f *File) AddSection(name string) *Section {
	s := &Section{Name: name}
	f.Sections = append(f.Sections, s)
	return s
}

// Section returns the first section with the given name, or nil.
func (f *File) Section(name string) *Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// WriteTo writes the file in INI form: a [Name] header, Key=Value lines, and
// a blank line after every section.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, s := range f.Sections {
		c, err := fmt.Fprintf(bw, "[%s]\n", s.Name)
		n += int64(c)
		if err != nil {
			return n, err
		}
		for _, e := range s.Entries {
			c, err = fmt.Fprintf(bw, "%s=%s\n", e.Key, e.Value)
			n += int64(c)
			if err != nil {
				return n, err
			}
		}
		c, err = bw.WriteString("\n")
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteFile writes f to path through a temporary file in the same directory,
// so readers never observe a partially written DbLib. An existing file keeps
// its permissions; a new one is created world-readable (0644) since every
// EDA client on the share has to open it.
func WriteFile(path string, f *File) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dblib-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write dblib: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
