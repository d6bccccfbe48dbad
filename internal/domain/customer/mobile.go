package customer

import "errors"

var ErrInvalidMobile = errors.New("mobile number must be exactly 10 digits")

// MobileNumber is the lookup key for customer records: exactly ten digits,
// no separators.
type MobileNumber struct {
	value string
}

func (m MobileNumber) String() string {
	return m.value
}

func NewMobileNumber(raw string) (MobileNumber, error) {
	if len(raw) != 10 {
		return MobileNumber{}, ErrInvalidMobile
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return MobileNumber{}, ErrInvalidMobile
		}
	}
	return MobileNumber{value: raw}, nil
}
