package month

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const layout = "2006-01"

var ErrInvalidKey = errors.New("invalid month key")

// Key identifies a calendar month as YYYY-MM.
type Key string

// Of returns the key of the month containing t.
func Of(t time.Time) Key {
	return Key(t.Format(layout))
}

func Parse(s string) (Key, error) {
	if _, _, err := split(s); err != nil {
		return "", err
	}

	return Key(s), nil
}

func (k Key) String() string {
	return string(k)
}

// Shift moves the key by delta months, wrapping across years.
// A malformed key is returned unchanged.
func (k Key) Shift(delta int) Key {
	year, mon, err := split(string(k))
	if err != nil {
		return k
	}

	total := year*12 + (mon - 1) + delta
	year, mon = floorDiv(total, 12), total-floorDiv(total, 12)*12+1

	return Key(fmt.Sprintf("%04d-%02d", year, mon))
}

// Contains reports whether date starts with the key. It is a plain text
// prefix check: "2024-03-99" is contained in "2024-03".
func (k Key) Contains(date string) bool {
	return k != "" && strings.HasPrefix(date, string(k))
}

// Label renders the key as "March 2024".
func (k Key) Label() string {
	t, err := time.Parse(layout, string(k))
	if err != nil {
		return string(k)
	}

	return t.Format("January 2006")
}

// Short renders the month as "Mar".
func (k Key) Short() string {
	t, err := time.Parse(layout, string(k))
	if err != nil {
		return string(k)
	}

	return t.Format("Jan")
}

// Trailing returns the n month keys ending at the month of ref, oldest first.
func Trailing(n int, ref time.Time) []Key {
	if n <= 0 {
		return nil
	}

	last := Of(ref)
	keys := make([]Key, n)

	for i := range n {
		keys[i] = last.Shift(i - (n - 1))
	}

	return keys
}

func split(s string) (year, mon int, err error) {
	y, m, ok := strings.Cut(s, "-")
	if !ok || len(y) != 4 || len(m) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	year, err = strconv.Atoi(y)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	mon, err = strconv.Atoi(m)
	if err != nil || mon < 1 || mon > 12 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	return year, mon, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
