package timer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedDuration is returned when a string is not H..H:MM:SS.
	ErrMalformedDuration = errors.New("malformed duration")
	// ErrOutOfRange is returned when minutes or seconds are not within 0-59.
	ErrOutOfRange = errors.New("duration field out of range")
)

// MaxHours is the largest hours field whose total still fits in an int of
// seconds.
const MaxHours = math.MaxInt/3600 - 1

// Duration is the remaining time as an hours/minutes/seconds triple.
type Duration struct {
	Hours   int
	Minutes int
	Seconds int
}

// ParseDuration parses a colon separated H..H:MM:SS string. Every field
// must be a non-negative integer and minutes and seconds must be below 60.
func ParseDuration(s string) (Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return Duration{}, errors.Wrapf(ErrMalformedDuration, "%q", s)
	}

	var fields [3]int
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return Duration{}, errors.Wrapf(ErrMalformedDuration, "%q", s)
		}
		// minutes and seconds are always two digits
		if i > 0 && len(p) != 2 {
			return Duration{}, errors.Wrapf(ErrMalformedDuration, "%q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Duration{}, errors.Wrapf(ErrMalformedDuration, "%q: %v", s, err)
		}
		fields[i] = n
	}

	if fields[0] > MaxHours || fields[1] > 59 || fields[2] > 59 {
		return Duration{}, errors.Wrapf(ErrOutOfRange, "%q", s)
	}
	return Duration{Hours: fields[0], Minutes: fields[1], Seconds: fields[2]}, nil
}

// MustParseDuration is like ParseDuration but panics on error.
func MustParseDuration(s string) Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromSeconds normalizes a number of seconds into a Duration.
func FromSeconds(sec int) Duration {
	if sec < 0 {
		sec = 0
	}
	return Duration{Hours: sec / 3600, Minutes: sec / 60 % 60, Seconds: sec % 60}
}

// TotalSeconds returns the duration in seconds.
func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Minus subtracts sec seconds, clamping at zero.
func (d Duration) Minus(sec int) Duration {
	return FromSeconds(d.TotalSeconds() - sec)
}

// IsZero reports whether no time is left.
func (d Duration) IsZero() bool {
	return d.TotalSeconds() <= 0
}

// String formats the duration as zero padded HH:MM:SS.
func (d Duration) String() string {
	return FormatTime(d.TotalSeconds())
}

// Fields splits the formatted duration into its hour, minute and second
// display strings.
func (d Duration) Fields() (hours, minutes, seconds string) {
	parts := strings.SplitN(d.String(), ":", 3)
	return parts[0], parts[1], parts[2]
}

// GoString is used by %#v in test failures.
func (d Duration) GoString() string {
	return fmt.Sprintf("timer.Duration(%s)", d.String())
}
