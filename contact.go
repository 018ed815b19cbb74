package addressbook

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is a single address book record. The name is fixed at
// construction and is the key of the contact within a Book.
type Contact struct {
	ID         string
	CreatedAt  time.Time
	ModifiedAt time.Time

	name     string
	phones   []Phone
	birthday *Birthday
}

// NewContact creates a contact without phones or birthday.
func NewContact(name string) (*Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("Contact name must not be empty")
	}

	now := time.Now().UTC()

	return &Contact{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		ModifiedAt: now,
		name:       name,
	}, nil
}

func (c *Contact) Name() string { return c.name }

// Phones returns a copy of the phones in the order they were added.
func (c *Contact) Phones() []Phone {
	return slices.Clone(c.phones)
}

// FindPhone reports whether phone belongs to the contact.
func (c *Contact) FindPhone(phone string) bool {
	return slices.Contains(c.phones, Phone(phone))
}

func (c *Contact) AddPhone(phone string) error {
	p, err := ParsePhone(phone)
	if err != nil {
		return err
	}
	if c.FindPhone(phone) {
		return duplicatef("Phone number already exists.")
	}

	c.phones = append(c.phones, p)
	c.touch()
	return nil
}

func (c *Contact) RemovePhone(phone string) error {
	i := slices.Index(c.phones, Phone(phone))
	if i < 0 {
		return notFoundf("Phone number not found.")
	}

	c.phones = slices.Delete(c.phones, i, i+1)
	c.touch()
	return nil
}

// EditPhone replaces oldPhone with newPhone in place. The contact is left
// untouched when any check fails.
func (c *Contact) EditPhone(oldPhone, newPhone string) error {
	p, err := ParsePhone(newPhone)
	if err != nil {
		return err
	}
	i := slices.Index(c.phones, Phone(oldPhone))
	if i < 0 {
		return notFoundf("Phone number not found.")
	}
	if oldPhone != newPhone && c.FindPhone(newPhone) {
		return duplicatef("Phone number already exists.")
	}

	c.phones[i] = p
	c.touch()
	return nil
}

// SetBirthday parses a DD.MM.YYYY date and replaces any previous birthday.
func (c *Contact) SetBirthday(date string) error {
	b, err := ParseBirthday(date)
	if err != nil {
		return err
	}

	c.birthday = &b
	c.touch()
	return nil
}

func (c *Contact) Birthday() (Birthday, bool) {
	if c.birthday == nil {
		return Birthday{}, false
	}
	return *c.birthday, true
}

func (c *Contact) String() string {
	phones := make([]string, 0, len(c.phones))
	for _, p := range c.phones {
		phones = append(phones, p.String())
	}

	birthday := "No birthday set"
	if b, ok := c.Birthday(); ok {
		birthday = b.String()
	}

	return "Name: " + c.name + ", Phones: " + strings.Join(phones, ", ") + ", Birthday: " + birthday
}

func (c *Contact) touch() {
	c.ModifiedAt = time.Now().UTC()
}
