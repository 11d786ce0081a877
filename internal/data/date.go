package data

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const dateLayout string = "2006-01-02"

// Date is a calendar date with no time component; it marshals to the
// wire as "2006-01-02" and scans from a DATE column
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errors.Wrapf(err, "invalid date: %q", s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(bytes []byte) error {
	s := strings.Trim(string(bytes), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	//the frontend sends full timestamps from date pickers on occasion,
	// so tolerate a time component and truncate it
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	date, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = date
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	default:
		return errors.Errorf("unsupported date type: %T", value)
	case time.Time:
		*d = Date{Time: v}
	case []byte:
		date, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = date
	}
	return nil
}
