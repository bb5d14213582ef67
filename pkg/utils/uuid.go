package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
var datePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

// NewID generates a prefixed identifier such as "ORD-3F9A1C2B"
func NewID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// NewRequestID generates a request correlation id
func NewRequestID() string {
	return uuid.New().String()
}

// IsYearMonth reports whether s is a YYYY-MM key
func IsYearMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// IsDate reports whether s is a YYYY-MM-DD key
func IsDate(s string) bool {
	return datePattern.MatchString(s)
}
