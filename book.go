package addressbook

import (
	"context"
	"slices"
)

// Book holds contacts keyed by name. A contact added under an existing name
// replaces the previous one, so FindAll never returns more than one record.
type Book struct {
	contacts map[string]*Contact
	order    []string
}

func NewBook() *Book {
	return &Book{contacts: make(map[string]*Contact)}
}

// Add inserts c, or replaces the contact with the same name while keeping
// its position in All.
func (b *Book) Add(c *Contact) {
	if _, ok := b.contacts[c.Name()]; !ok {
		b.order = append(b.order, c.Name())
	}
	b.contacts[c.Name()] = c
}

// Find returns the contact named name. A missing contact is not an error.
func (b *Book) Find(name string) (*Contact, bool) {
	c, ok := b.contacts[name]
	return c, ok
}

func (b *Book) FindAll(name string) []*Contact {
	c, ok := b.Find(name)
	if !ok {
		return nil
	}
	return []*Contact{c}
}

func (b *Book) Delete(name string) error {
	if _, ok := b.contacts[name]; !ok {
		return notFoundf("Contact '%s' not found.", name)
	}

	delete(b.contacts, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	return nil
}

// All returns the contacts in the order they were first added.
func (b *Book) All() []*Contact {
	all := make([]*Contact, 0, len(b.order))
	for _, name := range b.order {
		all = append(all, b.contacts[name])
	}
	return all
}

func (b *Book) Len() int { return len(b.order) }

// BookStorage loads and saves a whole Book.
type BookStorage interface {
	// Load returns an empty book when nothing has been saved yet.
	Load(ctx context.Context) (*Book, error)
	Save(ctx context.Context, book *Book) error
}
