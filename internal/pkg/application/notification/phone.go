package notification

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidPhone = fmt.Errorf("invalid phone number")

// NormalizePhone formats raw as E.164. Numbers without a country prefix are
// interpreted in region.
func NormalizePhone(raw, region string) (string, error) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w %q: %s", ErrInvalidPhone, raw, err.Error())
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w %q", ErrInvalidPhone, raw)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
