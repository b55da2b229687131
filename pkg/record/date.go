package record

import (
	"fmt"
	"strconv"
)

// Date is the backend's structured date ({day, month, year}).
type Date struct {
	Day   int `json:"day" yaml:"day"`
	Month int `json:"month" yaml:"month"`
	Year  int `json:"year" yaml:"year"`
}

// String renders the date as day-month-year without padding (5-3-2001).
func (d Date) String() string {
	return fmt.Sprintf("%d-%d-%d", d.Day, d.Month, d.Year)
}

// SortKey renders a zero-padded YYYYMMDD key so lexicographic comparison
// follows chronological order.
func (d Date) SortKey() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// DateFromValue decodes a {day, month, year} map. All three parts must be
// present and numeric.
func DateFromValue(value any) (Date, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return Date{}, false
	}
	day, okDay := toInt(m["day"])
	month, okMonth := toInt(m["month"])
	year, okYear := toInt(m["year"])
	if !okDay || !okMonth || !okYear {
		return Date{}, false
	}
	return Date{Day: day, Month: month, Year: year}, true
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		f, ok := toFloat(v)
		if !ok {
			return 0, false
		}
		return int(f), true
	}
}
