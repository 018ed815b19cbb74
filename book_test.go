package addressbook

import (
	"errors"
	"testing"
)

func names(contacts []*Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Name())
	}
	return out
}

func TestBookAddFind(t *testing.T) {
	book := NewBook()

	if _, ok := book.Find("John"); ok {
		t.Fatal("expected empty book to find nothing")
	}

	john := mustContact(t, "John")
	book.Add(john)

	got, ok := book.Find("John")
	if !ok || got != john {
		t.Fatalf("Find(John) = %v, %v", got, ok)
	}
	if _, ok := book.Find("john"); ok {
		t.Error("lookup must be exact")
	}
}

func TestBookAddReplacesByName(t *testing.T) {
	book := NewBook()
	book.Add(mustContact(t, "John"))
	book.Add(mustContact(t, "Jane"))

	replacement := mustContact(t, "John")
	_ = replacement.AddPhone("1234567890")
	book.Add(replacement)

	if book.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", book.Len())
	}
	all := book.FindAll("John")
	if len(all) != 1 || all[0] != replacement {
		t.Fatalf("FindAll(John) = %v", all)
	}
	if got := names(book.All()); got[0] != "John" || got[1] != "Jane" {
		t.Fatalf("replacement moved position: %v", got)
	}
}

func TestBookFindAllMissing(t *testing.T) {
	if got := NewBook().FindAll("nobody"); len(got) != 0 {
		t.Fatalf("FindAll on empty book = %v", got)
	}
}

func TestBookDelete(t *testing.T) {
	book := NewBook()
	for _, n := range []string{"A", "B", "C"} {
		book.Add(mustContact(t, n))
	}

	err := book.Delete("Z")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(Z) error = %v, want ErrNotFound", err)
	}
	if err.Error() != "Contact 'Z' not found." {
		t.Errorf("message = %q", err.Error())
	}

	if err := book.Delete("B"); err != nil {
		t.Fatalf("Delete(B): %v", err)
	}
	if _, ok := book.Find("B"); ok {
		t.Error("B still found after delete")
	}
	if got := names(book.All()); len(got) != 2 || got[0] != "A" || got[1] != "C" {
		t.Fatalf("All() after delete = %v", got)
	}

	book.Add(mustContact(t, "B"))
	if got := names(book.All()); got[2] != "B" {
		t.Fatalf("re-added contact should go last, got %v", got)
	}
}

func TestBookAllInsertionOrder(t *testing.T) {
	book := NewBook()
	order := []string{"Zed", "Amy", "Mo", "Bob"}
	for _, n := range order {
		book.Add(mustContact(t, n))
	}

	got := names(book.All())
	for i := range order {
		if got[i] != order[i] {
			t.Fatalf("All() = %v, want %v", got, order)
		}
	}
}
