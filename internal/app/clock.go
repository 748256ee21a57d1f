package app

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Clock returns the current instant in the local calendar used for
// resolution. It is consulted once per reconciliation.
type Clock func() time.Time

// localtimePath is the host zone file consulted when TZ is unset.
const localtimePath = "/etc/localtime"

// SystemClock returns a clock in the named zone. "Local" or "" follows the
// host: time.Local is fixed at process start, so the host zone is re-read
// from TZ or the zone file on every call and the next reconciliation picks
// up a change.
func SystemClock(zone string) (Clock, error) {
	if zone == "" || zone == "Local" {
		return func() time.Time {
			return time.Now().In(hostLocation())
		}, nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", zone, err)
	}

	return func() time.Time {
		return time.Now().In(loc)
	}, nil
}

// hostLocation mirrors how the runtime initialises time.Local, falling back
// to it when the host zone cannot be read.
func hostLocation() *time.Location {
	if tz, ok := os.LookupEnv("TZ"); ok {
		loc, err := time.LoadLocation(strings.TrimPrefix(tz, ":"))
		if err != nil {
			return time.Local
		}

		return loc
	}

	data, err := os.ReadFile(localtimePath)
	if err != nil {
		return time.Local
	}

	loc, err := time.LoadLocationFromTZData("Local", data)
	if err != nil {
		return time.Local
	}

	return loc
}
