package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/study-planner-api/internal/constants"
)

// ParseDate parses a calendar date in YYYY-MM-DD form as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty value.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}

// FormatOptionalDate renders an absent date as an empty string.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}
