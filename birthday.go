package addressbook

import "time"

// BirthdayLayout is the only accepted birthday format, DD.MM.YYYY.
const BirthdayLayout = "02.01.2006"

// Birthday is a calendar date held at midnight UTC.
type Birthday struct {
	date time.Time
}

// ParseBirthday parses a DD.MM.YYYY date.
func ParseBirthday(s string) (Birthday, error) {
	t, err := time.Parse(BirthdayLayout, s)
	if err != nil {
		return Birthday{}, invalidf("Invalid date format. Use DD.MM.YYYY")
	}
	return Birthday{date: t}, nil
}

// Date returns the birthday at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(BirthdayLayout) }
