package command

import (
	"errors"
	"strings"
	"time"

	"github.com/smileynet/phonebook/internal/contact"
)

// Book binds the assistant's commands to one contact directory.
type Book struct {
	dir     *contact.Directory
	clock   func() time.Time
	horizon int
}

// Option configures a Book.
type Option func(*Book)

// WithClock sets the source of the reference date for the birthdays command.
func WithClock(clock func() time.Time) Option {
	return func(b *Book) { b.clock = clock }
}

// WithHorizon sets how many days ahead the birthdays command looks.
func WithHorizon(days int) Option {
	return func(b *Book) { b.horizon = days }
}

// NewBook creates a Book over dir.
func NewBook(dir *contact.Directory, opts ...Option) *Book {
	b := &Book{
		dir:     dir,
		clock:   time.Now,
		horizon: contact.DefaultHorizon,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds every assistant command to r. help lists r itself.
func (b *Book) Register(r *Registry) {
	r.Register("hello", Spec{Usage: "hello", Summary: "greet the assistant", Run: b.hello})
	r.Register("add", Spec{Usage: "add <name> <phone>", Summary: "add a contact or another phone", Args: 2, Run: b.add})
	r.Register("change", Spec{Usage: "change <name> <old-phone> <new-phone>", Summary: "replace a phone", Args: 3, Run: b.change})
	r.Register("phone", Spec{Usage: "phone <name>", Summary: "show a contact's phones", Args: 1, Run: b.phone})
	r.Register("remove-phone", Spec{Usage: "remove-phone <name> <phone>", Summary: "remove a phone from a contact", Args: 2, Run: b.removePhone})
	r.Register("delete", Spec{Usage: "delete <name>", Summary: "delete a contact", Args: 1, Run: b.delete})
	r.Register("all", Spec{Usage: "all", Summary: "list every contact", Run: b.all})
	r.Register("add-birthday", Spec{Usage: "add-birthday <name> <DD.MM.YYYY>", Summary: "set a contact's birthday", Args: 2, Run: b.addBirthday})
	r.Register("show-birthday", Spec{Usage: "show-birthday <name>", Summary: "show a contact's birthday", Args: 1, Run: b.showBirthday})
	r.Register("birthdays", Spec{Usage: "birthdays", Summary: "list birthdays in the coming days", Run: b.birthdays})
	r.Register("help", Spec{Usage: "help", Summary: "show this list", Run: func([]string) (Result, error) {
		return Info("%s", r.Help()), nil
	}})
	quit := func([]string) (Result, error) {
		return Result{Text: "Good bye!", Kind: KindInfo, Quit: true}, nil
	}
	r.Register("close", Spec{Usage: "close", Summary: "leave the assistant", Run: quit})
	r.Register("exit", Spec{Usage: "exit", Summary: "leave the assistant", Run: quit})
}

func (b *Book) hello([]string) (Result, error) {
	return Info("How can I help you?"), nil
}

func (b *Book) add(args []string) (Result, error) {
	name, err := contact.NewName(args[0])
	if err != nil {
		return Result{}, err
	}
	phone, err := contact.NewPhone(args[1])
	if err != nil {
		return Result{}, err
	}

	rec, err := b.dir.Find(name.String())
	if errors.Is(err, contact.ErrNotFound) {
		rec = contact.NewRecord(name)
		rec.AddPhone(phone)
		b.dir.AddRecord(rec)
		return OK("Contact %s added.", name), nil
	}
	rec.AddPhone(phone)
	return OK("Phone %s added to contact %s.", phone, name), nil
}

func (b *Book) change(args []string) (Result, error) {
	rec, err := b.dir.Find(args[0])
	if err != nil {
		return Result{}, err
	}
	if err := rec.EditPhone(args[1], args[2]); err != nil {
		return Result{}, err
	}
	return OK("Phone %s changed to %s.", args[1], args[2]), nil
}

func (b *Book) phone(args []string) (Result, error) {
	rec, err := b.dir.Find(args[0])
	if err != nil {
		return Result{}, err
	}
	phones := rec.Phones()
	if len(phones) == 0 {
		return Info("%s has no phones.", rec.Name()), nil
	}
	list := make([]string, len(phones))
	for i, p := range phones {
		list[i] = p.String()
	}
	return OK("%s: %s", rec.Name(), strings.Join(list, "; ")), nil
}

func (b *Book) removePhone(args []string) (Result, error) {
	rec, err := b.dir.Find(args[0])
	if err != nil {
		return Result{}, err
	}
	phone, err := contact.NewPhone(args[1])
	if err != nil {
		return Result{}, err
	}
	if rec.RemovePhone(phone) == 0 {
		return Info("%s has no phone %s, nothing removed.", rec.Name(), phone), nil
	}
	return OK("Phone %s deleted.", phone), nil
}

func (b *Book) delete(args []string) (Result, error) {
	if err := b.dir.Delete(args[0]); err != nil {
		return Result{}, err
	}
	return OK("Contact %s deleted.", args[0]), nil
}

func (b *Book) all([]string) (Result, error) {
	records := b.dir.Records()
	if len(records) == 0 {
		return Info("Address book is empty."), nil
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return OK("%s", strings.Join(lines, "\n")), nil
}

func (b *Book) addBirthday(args []string) (Result, error) {
	rec, err := b.dir.Find(args[0])
	if err != nil {
		return Result{}, err
	}
	bd, err := contact.NewBirthday(args[1])
	if err != nil {
		return Result{}, err
	}
	rec.SetBirthday(bd)
	return OK("Birthday %s added for %s.", bd, rec.Name()), nil
}

func (b *Book) showBirthday(args []string) (Result, error) {
	rec, err := b.dir.Find(args[0])
	if err != nil {
		return Result{}, err
	}
	bd, ok := rec.Birthday()
	if !ok {
		return Info("%s has no birthday set.", rec.Name()), nil
	}
	return OK("%s: %s", rec.Name(), bd), nil
}

func (b *Book) birthdays([]string) (Result, error) {
	upcoming := b.dir.UpcomingBirthdays(b.clock(), b.horizon)
	if len(upcoming) == 0 {
		return Info("No birthdays in the next %d days.", b.horizon), nil
	}
	lines := make([]string, len(upcoming))
	for i, c := range upcoming {
		lines[i] = c.Name + ": " + c.DateString()
	}
	return OK("%s", strings.Join(lines, "\n")), nil
}
