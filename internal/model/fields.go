package model

import (
	"regexp"
	"strings"
	"unicode"
)

// Length bounds for string fields, keyed to their FFD tags.
const (
	maxItemNameLen        = 128 // item name, tag 1030
	maxMeasurementUnitLen = 16  // measurement unit, tag 1197
	maxUserDataLen        = 64  // additional item attribute, tag 1191
	maxCashierLen         = 64  // cashier, tag 1021
	maxPaymentAddressLen  = 256 // payment address, tag 1187
	maxEmailLen           = 64  // email, tags 1008/1117
	maxClientNameLen      = 256 // buyer name, tag 1227
	maxPhoneLen           = 64  // phone, tags 1008/1073-1075
	maxCheckPropsLen      = 16  // additional check attribute, tag 1192
	maxUserPropNameLen    = 64  // additional user attribute name, tag 1085
	maxUserPropValueLen   = 256 // additional user attribute value, tag 1086
	maxOperationLen       = 24  // paying agent operation, tag 1044
	maxSupplierNameLen    = 256 // supplier name, tag 1225
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitsOnly   = regexp.MustCompile(`\D+`)
)

// cleanString trims surrounding whitespace and strips control characters.
func cleanString(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// checkRequired cleans a mandatory string and rejects blank input.
func checkRequired(field, raw string, max int) (string, error) {
	s := cleanString(raw)
	if s == "" {
		return "", NewEmptyError(field)
	}
	if n := len([]rune(s)); n > max {
		return "", NewTooLongError(field, max, n)
	}
	return s, nil
}

// checkOptional cleans an optional string; blank input collapses to absent.
// Absence and emptiness are equivalent for optional fields.
func checkOptional(field, raw string, max int) (string, error) {
	s := cleanString(raw)
	if s == "" {
		return "", nil
	}
	if n := len([]rune(s)); n > max {
		return "", NewTooLongError(field, max, n)
	}
	return s, nil
}

// normalizePhone reduces a phone to digits with a leading "+".
// "+1 (22) 99-73 654 56" becomes "+122997365456". Blank input collapses
// to absent.
func normalizePhone(field, raw string) (string, error) {
	s := cleanString(raw)
	if s == "" {
		return "", nil
	}
	if n := len([]rune(s)); n > maxPhoneLen {
		return "", NewTooLongError(field, maxPhoneLen, n)
	}
	digits := digitsOnly.ReplaceAllString(s, "")
	if digits == "" {
		return "", NewFormatError(field, raw, "a phone number containing digits")
	}
	return "+" + digits, nil
}

// checkEmail validates an email address against format and length bounds.
func checkEmail(field, raw string) (string, error) {
	s := cleanString(raw)
	if s == "" {
		return "", NewEmptyError(field)
	}
	if n := len([]rune(s)); n > maxEmailLen {
		return "", NewTooLongError(field, maxEmailLen, n)
	}
	if !emailPattern.MatchString(s) {
		return "", NewFormatError(field, s, "an email address")
	}
	return s, nil
}

// checkINN validates a taxpayer identification number: exactly 10 or 12
// digits after stripping separators.
func checkINN(field, raw string) (string, error) {
	s := digitsOnly.ReplaceAllString(cleanString(raw), "")
	if s == "" {
		return "", NewEmptyError(field)
	}
	if len(s) != 10 && len(s) != 12 {
		return "", NewFormatError(field, raw, "10 or 12 digits")
	}
	return s, nil
}

