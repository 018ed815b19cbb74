package addressbook

import "regexp"

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Phone is a ten digit phone number.
type Phone string

// ParsePhone validates s and returns it as a Phone.
func ParsePhone(s string) (Phone, error) {
	if !phonePattern.MatchString(s) {
		return "", invalidf("Phone number must be 10 digits")
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }
