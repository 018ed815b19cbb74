package filestore

import (
	"fmt"
	"time"

	"github.com/phbpx/addressbook"
)

// documentVersion is bumped whenever the layout of document changes.
const documentVersion = 1

type document struct {
	Version  int       `yaml:"version"`
	Contacts []contact `yaml:"contacts"`
}

type contact struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Phones     []string  `yaml:"phones,omitempty"`
	Birthday   string    `yaml:"birthday,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
	ModifiedAt time.Time `yaml:"modified_at"`
}

func newDocument(book *addressbook.Book) document {
	doc := document{
		Version:  documentVersion,
		Contacts: make([]contact, 0, book.Len()),
	}

	for _, c := range book.All() {
		rec := contact{
			ID:         c.ID,
			Name:       c.Name(),
			CreatedAt:  c.CreatedAt,
			ModifiedAt: c.ModifiedAt,
		}
		for _, p := range c.Phones() {
			rec.Phones = append(rec.Phones, p.String())
		}
		if b, ok := c.Birthday(); ok {
			rec.Birthday = b.String()
		}
		doc.Contacts = append(doc.Contacts, rec)
	}

	return doc
}

// book rebuilds the Book, running every record through the same validation
// as interactive input.
func (d document) book() (*addressbook.Book, error) {
	if d.Version > documentVersion {
		return nil, fmt.Errorf("unsupported version %d", d.Version)
	}

	book := addressbook.NewBook()
	for i, rec := range d.Contacts {
		c, err := addressbook.NewContact(rec.Name)
		if err != nil {
			return nil, fmt.Errorf("contact %d: %w", i, err)
		}
		if _, ok := book.Find(rec.Name); ok {
			return nil, fmt.Errorf("contact %d: duplicate name %q", i, rec.Name)
		}

		for _, p := range rec.Phones {
			if err := c.AddPhone(p); err != nil {
				return nil, fmt.Errorf("contact %q: phone %q: %w", rec.Name, p, err)
			}
		}
		if rec.Birthday != "" {
			if err := c.SetBirthday(rec.Birthday); err != nil {
				return nil, fmt.Errorf("contact %q: birthday %q: %w", rec.Name, rec.Birthday, err)
			}
		}

		if rec.ID != "" {
			c.ID = rec.ID
		}
		if !rec.CreatedAt.IsZero() {
			c.CreatedAt = rec.CreatedAt
		}
		if !rec.ModifiedAt.IsZero() {
			c.ModifiedAt = rec.ModifiedAt
		}

		book.Add(c)
	}

	return book, nil
}
