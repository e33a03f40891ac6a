package dto

import (
	"fmt"
	"strings"
	"time"
)

const civilDateLayout = "2006-01-02"

// CivilDate is a calendar date without a time component, serialized as
// "YYYY-MM-DD". The converter emits dates in this form.
type CivilDate struct {
	time.Time
}

func NewCivilDate(year int, month time.Month, day int) CivilDate {
	return CivilDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d CivilDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(civilDateLayout) + `"`), nil
}

func (d *CivilDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(civilDateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// TimePtr returns the underlying time, or nil for the zero date.
func (d *CivilDate) TimePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
