package thresholds

import (
	"fmt"
	"strings"
)

// Zone is the discrete classification of a reading against thresholds.
type Zone int

const (
	// ZoneUnknown covers missing values, missing thresholds and gaps between zones.
	ZoneUnknown Zone = iota
	// ZoneIdeal is the ideal range.
	ZoneIdeal
	// ZoneModerate is the moderate range.
	ZoneModerate
	// ZoneExtreme is either extreme tail.
	ZoneExtreme
)

var zoneNames = map[Zone]string{
	ZoneUnknown:  "unknown",
	ZoneIdeal:    "ideal",
	ZoneModerate: "moderate",
	ZoneExtreme:  "extreme",
}

// String returns the lowercase zone name.
func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

// Label returns the capitalized zone name used in panels.
func (z Zone) Label() string {
	name := z.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Gauge returns the indicator position on the ideal→extreme gauge, in [0, 1].
func (z Zone) Gauge() float64 {
	switch z {
	case ZoneModerate:
		return 0.5
	case ZoneExtreme:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Zone) UnmarshalText(text []byte) error {
	parsed, err := ParseZone(string(text))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

// ParseZone parses a zone name case-insensitively.
func ParseZone(s string) (Zone, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for zone, name := range zoneNames {
		if name == needle {
			return zone, nil
		}
	}
	return ZoneUnknown, fmt.Errorf("unknown zone %q", s)
}
