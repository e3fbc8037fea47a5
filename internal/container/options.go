package container

import (
	"fmt"
	"strings"
)

// Tier is a named capacity bucket.
type Tier int

const (
	TierDefault Tier = iota
	TierSmall
	TierMedium
	TierLarge
)

var tierNames = map[Tier]string{
	TierDefault: "default",
	TierSmall:   "small",
	TierMedium:  "medium",
	TierLarge:   "large",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Capacity returns the slot count for the tier, or 0 for TierDefault.
func (t Tier) Capacity() int {
	switch t {
	case TierSmall:
		return 9
	case TierMedium:
		return 36
	case TierLarge:
		return 70
	default:
		return 0
	}
}

// ParseTier maps a config value to a Tier. Empty input is TierDefault.
func ParseTier(value string) (Tier, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return TierDefault, nil
	}
	for tier, name := range tierNames {
		if name == v {
			return tier, nil
		}
	}
	return TierDefault, fmt.Errorf("unknown resize tier %q", value)
}

// Options are the per-container view settings. Rows is the number of rows a
// menu asks for when no tier fixes its capacity.
type Options struct {
	Resize  Tier
	Rows    int
	Filters []string
	Sorts   []string
}

// Merge layers options, most specific first. The resize tier is the highest
// tier of any layer; every other field takes the first layer that sets it.
func Merge(layers ...Options) Options {
	var out Options
	for _, layer := range layers {
		if layer.Resize > out.Resize {
			out.Resize = layer.Resize
		}
		if out.Rows == 0 && layer.Rows > 0 {
			out.Rows = layer.Rows
		}
		if out.Filters == nil && len(layer.Filters) > 0 {
			out.Filters = append([]string(nil), layer.Filters...)
		}
		if out.Sorts == nil && len(layer.Sorts) > 0 {
			out.Sorts = append([]string(nil), layer.Sorts...)
		}
	}
	return out
}

// Configurable is implemented by entities that carry their own options.
type Configurable interface {
	StorageOptions() Options
}
