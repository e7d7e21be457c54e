package calendar

import (
	"fmt"
	"time"
)

// YearMonth identifies one calendar month. Month is zero-based (0 = January)
// to match the grid builder; the string form is the 1-based "YYYY-MM" key
// used on the wire.
type YearMonth struct {
	Year  int
	Month int
}

// ParseYearMonth parses a "YYYY-MM" key.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: int(t.Month()) - 1}, nil
}

// String renders the "YYYY-MM" key.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month+1)
}

// Shift advances or retreats the month by offset with year rollover. One
// normalization step suffices because callers only ever shift by ±1.
func Shift(ym YearMonth, offset int) YearMonth {
	y, m := ym.Year, ym.Month+offset
	if m < 0 {
		y--
		m += 12
	} else if m > 11 {
		y++
		m -= 12
	}
	return YearMonth{Year: y, Month: m}
}

// ShiftKey is Shift over "YYYY-MM" keys.
func ShiftKey(key string, offset int) (string, error) {
	ym, err := ParseYearMonth(key)
	if err != nil {
		return "", err
	}
	return Shift(ym, offset).String(), nil
}

// Today reads the current date once at call time and returns it as a
// (year, zero-based month, day) triple. No caching: two calls across a
// midnight boundary may observe different days, which is acceptable.
func Today() (year, month, day int) {
	now := time.Now()
	return now.Year(), int(now.Month()) - 1, now.Day()
}

// CurrentYearMonth is Today() reduced to a YearMonth.
func CurrentYearMonth() YearMonth {
	y, m, _ := Today()
	return YearMonth{Year: y, Month: m}
}
