package kernel

import (
	"fmt"
	"strings"
)

// SortKey selects the external ordering applied to the module listing.
type SortKey int

const (
	SortNone SortKey = iota
	SortSize
	SortName
	SortDependent
)

const modulesSource = "cat /proc/modules"

func (k SortKey) String() string {
	switch k {
	case SortSize:
		return "size"
	case SortName:
		return "name"
	case SortDependent:
		return "dependent"
	default:
		return "none"
	}
}

// ParseSortKey maps "size", "name", "dependent" (or "none"/"") to a key.
func ParseSortKey(value string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return SortNone, nil
	case "size":
		return SortSize, nil
	case "name":
		return SortName, nil
	case "dependent":
		return SortDependent, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q (expected size, name or dependent)", value)
}

// listCommand returns the shell pipeline producing the module listing.
func (k SortKey) listCommand() string {
	switch k {
	case SortSize:
		return modulesSource + " | sort -n -r -t ' ' -k2"
	case SortName:
		return modulesSource + " | sort -t ' ' -k1"
	case SortDependent:
		return modulesSource + " | sort -n -r -t ' ' -k3"
	default:
		return modulesSource
	}
}
