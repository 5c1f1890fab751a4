package contact

import (
	"fmt"
	"time"
)

// DefaultHorizon is the number of days ahead UpcomingBirthdays looks by default.
const DefaultHorizon = 7

// Directory maps contact names to records. Iteration follows insertion order.
// It is not safe for concurrent use.
type Directory struct {
	records map[string]*Record
	order   []string
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. An existing record with the same name is
// replaced and keeps its position in iteration order.
func (d *Directory) AddRecord(r *Record) {
	key := r.Name().String()
	if _, ok := d.records[key]; !ok {
		d.order = append(d.order, key)
	}
	d.records[key] = r
}

// Find returns the record stored under name. Matching is exact.
func (d *Directory) Find(name string) (*Record, error) {
	r, ok := d.records[name]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", name, ErrNotFound)
	}
	return r, nil
}

// Delete removes the record stored under name, or returns ErrNotFound.
func (d *Directory) Delete(name string) error {
	if _, ok := d.records[name]; !ok {
		return fmt.Errorf("contact %s: %w", name, ErrNotFound)
	}
	delete(d.records, name)
	for i, key := range d.order {
		if key == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of records.
func (d *Directory) Len() int {
	return len(d.records)
}

// Records returns all records in insertion order.
func (d *Directory) Records() []*Record {
	out := make([]*Record, 0, len(d.order))
	for _, key := range d.order {
		out = append(out, d.records[key])
	}
	return out
}

// Congratulation is a contact whose birthday falls inside the horizon, with
// the date it should be acknowledged on.
type Congratulation struct {
	Name string
	Date time.Time
}

// DateString formats the congratulation date as DD.MM.YYYY.
func (c Congratulation) DateString() string {
	return c.Date.Format(DateLayout)
}

// UpcomingBirthdays lists records whose next birthday is between ref and
// ref+horizonDays inclusive. Only the calendar date of ref is used. A
// birthday landing on a weekend is congratulated the following Monday.
// Records without a birthday are skipped.
func (d *Directory) UpcomingBirthdays(ref time.Time, horizonDays int) []Congratulation {
	today := CalendarDate(ref)
	var out []Congratulation
	for _, r := range d.Records() {
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		next := nextOccurrence(b, today)
		days := daysBetween(today, next)
		if days < 0 || days > horizonDays {
			continue
		}
		out = append(out, Congratulation{
			Name: r.Name().String(),
			Date: shiftWeekend(next),
		})
	}
	return out
}

// nextOccurrence returns b's anniversary in today's year, or in the following
// year if that date has already passed. 29 February rolls to 1 March in
// non-leap years.
func nextOccurrence(b Birthday, today time.Time) time.Time {
	next := time.Date(today.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// shiftWeekend moves Saturday and Sunday to the following Monday.
func shiftWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}
