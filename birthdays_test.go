package addressbook

import (
	"testing"
	"time"
)

func newBookWithBirthdays(t *testing.T, birthdays map[string]string, order ...string) *Book {
	t.Helper()

	book := NewBook()
	for _, name := range order {
		c, err := NewContact(name)
		if err != nil {
			t.Fatalf("NewContact(%q): %v", name, err)
		}
		if date := birthdays[name]; date != "" {
			if err := c.SetBirthday(date); err != nil {
				t.Fatalf("SetBirthday(%q): %v", date, err)
			}
		}
		book.Add(c)
	}
	return book
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestUpcomingBirthdays(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		birthday  string
		included  bool
		daysUntil int
		greeting  string
	}{
		{"weekday no shift", date(2024, 3, 18), "22.03.1992", true, 4, "March 22"},
		{"sunday shifts to monday", date(2024, 3, 16), "17.03.1990", true, 1, "March 18"},
		{"saturday shifts to monday", date(2024, 3, 18), "23.03.1985", true, 5, "March 25"},
		{"today is included", date(2024, 3, 18), "18.03.1990", true, 0, "March 18"},
		{"today on saturday is shifted", date(2024, 3, 16), "16.03.1990", true, 0, "March 18"},
		{"last day of window", date(2024, 3, 18), "25.03.1990", true, 7, "March 25"},
		{"eight days out", date(2024, 3, 18), "26.03.1990", false, 0, ""},
		{"months out", date(2024, 3, 1), "03.10.1990", false, 0, ""},
		{"already passed this year", date(2024, 3, 18), "10.03.1990", false, 0, ""},
		{"wraps into next year", date(2024, 12, 30), "02.01.2000", true, 3, "January 02"},
		{"leap day in common year", date(2025, 2, 27), "29.02.2000", true, 2, "March 03"},
		{"leap day in leap year", date(2024, 2, 26), "29.02.2000", true, 3, "February 29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := newBookWithBirthdays(t, map[string]string{"Jane": tt.birthday}, "Jane")

			got := UpcomingBirthdays(book, tt.today)
			if !tt.included {
				if len(got) != 0 {
					t.Fatalf("expected no upcoming birthdays, got %+v", got)
				}
				return
			}

			if len(got) != 1 {
				t.Fatalf("expected 1 upcoming birthday, got %d", len(got))
			}
			if got[0].Name != "Jane" {
				t.Errorf("Name = %q, want Jane", got[0].Name)
			}
			if got[0].DaysUntil != tt.daysUntil {
				t.Errorf("DaysUntil = %d, want %d", got[0].DaysUntil, tt.daysUntil)
			}
			if got[0].Greeting() != tt.greeting {
				t.Errorf("Greeting() = %q, want %q", got[0].Greeting(), tt.greeting)
			}
		})
	}
}

func TestUpcomingBirthdaysIgnoresTimeOfDay(t *testing.T) {
	book := newBookWithBirthdays(t, map[string]string{"John": "18.03.1990"}, "John")

	late := time.Date(2024, 3, 18, 23, 59, 59, 0, time.UTC)
	got := UpcomingBirthdays(book, late)
	if len(got) != 1 || got[0].DaysUntil != 0 {
		t.Fatalf("expected birthday today to be included, got %+v", got)
	}
}

func TestUpcomingBirthdaysKeepsBookOrder(t *testing.T) {
	book := newBookWithBirthdays(t, map[string]string{
		"Late":    "24.03.1980",
		"NoDate":  "",
		"Early":   "19.03.1980",
		"Outside": "01.06.1980",
	}, "Late", "NoDate", "Early", "Outside")

	got := UpcomingBirthdays(book, date(2024, 3, 18))
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming birthdays, got %d", len(got))
	}
	if got[0].Name != "Late" || got[1].Name != "Early" {
		t.Fatalf("expected book order [Late Early], got [%s %s]", got[0].Name, got[1].Name)
	}
}

func TestUpcomingBirthdaysEmptyBook(t *testing.T) {
	if got := UpcomingBirthdays(NewBook(), date(2024, 3, 18)); len(got) != 0 {
		t.Fatalf("expected nothing for an empty book, got %+v", got)
	}
}
