// Package seed preloads a contact directory from a YAML file.
//
// A seed file is read once at startup; nothing is ever written back:
//
//	contacts:
//	  - name: John
//	    phones: ["1234567890", "5555555555"]
//	    birthday: 10.06.1990
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/phonebook/internal/contact"
)

// File is the YAML structure of a seed file.
type File struct {
	Contacts []Entry `yaml:"contacts"`
}

// Entry is one contact in a seed file.
type Entry struct {
	Name     string   `yaml:"name"`
	Phones   []string `yaml:"phones"`
	Birthday string   `yaml:"birthday"`
}

// Load reads name from fsys and adds every entry to dir. Entries pass through
// the same validation as interactive input; the first bad entry aborts the
// load and leaves dir untouched.
func Load(fsys fs.FS, name string, dir *contact.Directory) (int, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return 0, fmt.Errorf("seed: reading %s: %w", name, err)
	}
	return Decode(bytes.NewReader(data), dir)
}

// Decode reads seed YAML from r into dir. See Load.
func Decode(r io.Reader, dir *contact.Directory) (int, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("seed: parsing: %w", err)
	}

	records := make([]*contact.Record, 0, len(f.Contacts))
	for i, e := range f.Contacts {
		rec, err := e.record()
		if err != nil {
			return 0, fmt.Errorf("seed: contact %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	for _, rec := range records {
		dir.AddRecord(rec)
	}
	return len(records), nil
}

func (e Entry) record() (*contact.Record, error) {
	name, err := contact.NewName(e.Name)
	if err != nil {
		return nil, err
	}
	rec := contact.NewRecord(name)
	for _, raw := range e.Phones {
		p, err := contact.NewPhone(raw)
		if err != nil {
			return nil, err
		}
		rec.AddPhone(p)
	}
	if e.Birthday != "" {
		b, err := contact.NewBirthday(e.Birthday)
		if err != nil {
			return nil, err
		}
		rec.SetBirthday(b)
	}
	return rec, nil
}
