package handler

import (
	"context"
	"strings"
	"time"

	"github.com/phbpx/addressbook"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// ContactHandler implements the address book commands on top of a Book.
// Every method returns the reply for the user, or an error whose message is
// the reply.
type ContactHandler struct {
	book *addressbook.Book
	log  *otelzap.SugaredLogger
	now  func() time.Time
}

// NewContactHandler returns a handler for book. now supplies the reference
// date for birthdays and defaults to time.Now.
func NewContactHandler(book *addressbook.Book, log *otelzap.SugaredLogger, now func() time.Time) *ContactHandler {
	if now == nil {
		now = time.Now
	}
	return &ContactHandler{
		book: book,
		log:  log,
		now:  now,
	}
}

func (ch ContactHandler) Hello(_ context.Context, _ []string) (string, error) {
	return "How can I help you?", nil
}

func (ch ContactHandler) Add(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "", usageError("Give me a name and phone please.")
	}
	name, phone := strings.Join(args[:len(args)-1], " "), args[len(args)-1]

	if _, err := addressbook.ParsePhone(phone); err != nil {
		return "", &addressbook.Error{Kind: addressbook.ErrValidation, Msg: "Phone number must be 10 digits and numeric."}
	}

	msg := "Contact updated."
	c, ok := ch.book.Find(name)
	if !ok {
		var err error
		if c, err = addressbook.NewContact(name); err != nil {
			return "", err
		}
		ch.book.Add(c)
		msg = "Contact added."
		ch.log.Ctx(ctx).Infow("Add", "contact", name, "id", c.ID)
	}

	if err := c.AddPhone(phone); err != nil {
		return "", err
	}
	return msg, nil
}

func (ch ContactHandler) Change(ctx context.Context, args []string) (string, error) {
	if len(args) < 3 {
		return "", usageError("Please provide the name, old phone, and new phone.")
	}
	name := strings.Join(args[:len(args)-2], " ")
	oldPhone, newPhone := args[len(args)-2], args[len(args)-1]

	c, ok := ch.book.Find(name)
	if !ok {
		return "", contactNotFound()
	}
	if !c.FindPhone(oldPhone) {
		return "", &addressbook.Error{Kind: addressbook.ErrNotFound, Msg: "Old phone number does not match."}
	}

	if err := c.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	ch.log.Ctx(ctx).Infow("Change", "contact", name, "id", c.ID)
	return "Phone number updated.", nil
}

func (ch ContactHandler) Delete(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "", usageError("Please provide the name of the contact to delete.")
	}
	name := strings.Join(args, " ")

	if err := ch.book.Delete(name); err != nil {
		return "", err
	}
	ch.log.Ctx(ctx).Infow("Delete", "contact", name)
	return "Contact '" + name + "' has been deleted.", nil
}

func (ch ContactHandler) Phone(_ context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "", usageError("Give me the name please.")
	}

	c, ok := ch.book.Find(strings.Join(args, " "))
	if !ok {
		return "", &addressbook.Error{Kind: addressbook.ErrNotFound, Msg: "Sorry, contact not found."}
	}

	phones := c.Phones()
	if len(phones) == 0 {
		return "No phone numbers found.", nil
	}
	out := make([]string, 0, len(phones))
	for _, p := range phones {
		out = append(out, p.String())
	}
	return strings.Join(out, ", "), nil
}

func (ch ContactHandler) All(_ context.Context, _ []string) (string, error) {
	if ch.book.Len() == 0 {
		return "Sorry, no book found.", nil
	}

	lines := make([]string, 0, ch.book.Len())
	for _, c := range ch.book.All() {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (ch ContactHandler) AddBirthday(ctx context.Context, args []string) (string, error) {
	if len(args) < 2 {
		return "", usageError("Give me a name and birthday.")
	}
	name, date := strings.Join(args[:len(args)-1], " "), args[len(args)-1]

	c, ok := ch.book.Find(name)
	if !ok {
		return "", contactNotFound()
	}
	if err := c.SetBirthday(date); err != nil {
		return "", err
	}
	ch.log.Ctx(ctx).Infow("AddBirthday", "contact", name, "id", c.ID)
	return "Birthday added.", nil
}

func (ch ContactHandler) ShowBirthday(_ context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "", usageError("Give me the name please.")
	}

	contacts := ch.book.FindAll(strings.Join(args, " "))
	if len(contacts) == 0 {
		return "", &addressbook.Error{Kind: addressbook.ErrNotFound, Msg: "Sorry, contact not found."}
	}

	lines := make([]string, 0, len(contacts))
	for _, c := range contacts {
		if b, ok := c.Birthday(); ok {
			lines = append(lines, c.Name()+" on "+b.String())
		} else {
			lines = append(lines, c.Name()+" has no birthday set.")
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (ch ContactHandler) Birthdays(ctx context.Context, _ []string) (string, error) {
	upcoming := addressbook.UpcomingBirthdays(ch.book, ch.now())
	ch.log.Ctx(ctx).Debugw("Birthdays", "upcoming", len(upcoming))
	if len(upcoming) == 0 {
		return "No upcoming birthdays this week.", nil
	}

	lines := make([]string, 0, len(upcoming))
	for _, u := range upcoming {
		lines = append(lines, u.Name+" on "+u.Greeting())
	}
	return strings.Join(lines, "\n"), nil
}

func contactNotFound() error {
	return &addressbook.Error{Kind: addressbook.ErrNotFound, Msg: "Contact not found."}
}
