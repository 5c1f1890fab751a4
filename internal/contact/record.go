package contact

import (
	"fmt"
	"strings"
)

// Record is one contact: a name, its phones in insertion order, and an
// optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name Name) *Record {
	return &Record{name: name}
}

// Name returns the record's name.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone appends phone. Duplicates are kept.
func (r *Record) AddPhone(phone Phone) {
	r.phones = append(r.phones, phone)
}

// RemovePhone drops every entry equal to phone and returns how many were
// removed. Removing an absent phone is a no-op.
func (r *Record) RemovePhone(phone Phone) int {
	kept := make([]Phone, 0, len(r.phones))
	for _, p := range r.phones {
		if !p.Equal(phone) {
			kept = append(kept, p)
		}
	}
	removed := len(r.phones) - len(kept)
	if removed > 0 {
		r.phones = kept
	}
	return removed
}

// EditPhone replaces the first entry equal to oldPhone with newPhone.
// Returns ErrNotFound if oldPhone is absent and a ValidationError if newPhone
// is malformed; the record is unchanged in both cases.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	for i, p := range r.phones {
		if p.value != oldPhone {
			continue
		}
		np, err := NewPhone(newPhone)
		if err != nil {
			return err
		}
		r.phones[i] = np
		return nil
	}
	return fmt.Errorf("phone %s of %s: %w", oldPhone, r.name, ErrNotFound)
}

// FindPhone returns the first entry equal to phone.
func (r *Record) FindPhone(phone string) (Phone, error) {
	for _, p := range r.phones {
		if p.value == phone {
			return p, nil
		}
	}
	return Phone{}, fmt.Errorf("phone %s of %s: %w", phone, r.name, ErrNotFound)
}

// SetBirthday overwrites any existing birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	return fmt.Sprintf("contact name: %s, phones: %s", r.name, strings.Join(phones, "; "))
}
