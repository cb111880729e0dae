package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const asOfDateLayout = "2006-01-02"

// AsOfDate is the valuation instant of an analysis request. It accepts an RFC3339
// timestamp or a bare YYYY-MM-DD date (midnight UTC) and always holds UTC.
type AsOfDate struct {
	time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *AsOfDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("as_of must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("as_of must not be empty")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(asOfDateLayout, s)
	if err != nil {
		return fmt.Errorf("as_of %q is neither an RFC3339 timestamp nor a YYYY-MM-DD date", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d AsOfDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

// NotAfter reports an error when the as-of instant lies beyond now
func (d AsOfDate) NotAfter(now time.Time) error {
	if d.Time.After(now) {
		return fmt.Errorf("as_of %s is in the future", d.Time.Format(time.RFC3339))
	}
	return nil
}
