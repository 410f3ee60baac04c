package dto

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date carried as "YYYY-MM-DD" in JSON payloads.
// Transactions have day precision, so the wire format refuses timestamps
// instead of silently truncating them.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return fmt.Errorf("date must be a JSON string: %w", err)
	}
	t, err := time.Parse(dateLayout, unquoted)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Time.Format(dateLayout))), nil
}
