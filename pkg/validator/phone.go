package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var indianMobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

// PhoneFormatter normalizes contact phone numbers for display.
// Contact numbers are free text, so it never rejects input.
type PhoneFormatter struct{}

// NewPhoneFormatter creates a new phone formatter instance
func NewPhoneFormatter() *PhoneFormatter {
	return &PhoneFormatter{}
}

// Sanitize removes separators and the +91 / 0 trunk prefix
func (f *PhoneFormatter) Sanitize(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "", "+", "")
	phone = replacer.Replace(strings.TrimSpace(phone))

	switch {
	case strings.HasPrefix(phone, "91") && len(phone) == 12:
		phone = phone[2:]
	case strings.HasPrefix(phone, "0") && len(phone) == 11:
		phone = phone[1:]
	}
	return phone
}

// IsIndianMobile checks for a 10 digit number starting with 6-9
func (f *PhoneFormatter) IsIndianMobile(phone string) bool {
	return indianMobileRegex.MatchString(f.Sanitize(phone))
}

// Format renders Indian mobile numbers as "+91 98765 43210" and returns
// anything else trimmed but otherwise untouched
func (f *PhoneFormatter) Format(phone string) string {
	sanitized := f.Sanitize(phone)
	if !indianMobileRegex.MatchString(sanitized) {
		return strings.TrimSpace(phone)
	}
	return fmt.Sprintf("+91 %s %s", sanitized[0:5], sanitized[5:10])
}
