package addressbook

import "time"

// BirthdayWindow is how many days ahead of today a birthday counts as upcoming.
const BirthdayWindow = 7

// GreetingLayout formats greeting dates, e.g. "March 18".
const GreetingLayout = "January 02"

// UpcomingBirthday is a contact whose birthday falls inside the window.
type UpcomingBirthday struct {
	Name string
	// Birthday is the next anniversary on or after today.
	Birthday time.Time
	// GreetingDate is Birthday moved off the weekend onto Monday.
	GreetingDate time.Time
	DaysUntil    int
}

// Greeting returns the greeting date as month name and day.
func (u UpcomingBirthday) Greeting() string {
	return u.GreetingDate.Format(GreetingLayout)
}

// UpcomingBirthdays lists the contacts of book whose next birthday is between
// 0 and BirthdayWindow days after today, in book order. Only the calendar date
// of today is used. A 29 February birthday falls on 1 March in other years.
func UpcomingBirthdays(book *Book, today time.Time) []UpcomingBirthday {
	day := dateOf(today)

	var upcoming []UpcomingBirthday
	for _, c := range book.All() {
		b, ok := c.Birthday()
		if !ok {
			continue
		}

		next := anniversary(b.Date(), day.Year())
		if next.Before(day) {
			next = anniversary(b.Date(), day.Year()+1)
		}

		days := int(next.Sub(day).Hours() / 24)
		if days < 0 || days > BirthdayWindow {
			continue
		}

		upcoming = append(upcoming, UpcomingBirthday{
			Name:         c.Name(),
			Birthday:     next,
			GreetingDate: greetingDate(next),
			DaysUntil:    days,
		})
	}

	return upcoming
}

func greetingDate(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

func anniversary(birthday time.Time, year int) time.Time {
	return time.Date(year, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
