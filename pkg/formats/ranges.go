package formats

import (
	"fmt"
	"strconv"
	"strings"
)

// MaterialRange is an inclusive range of material ids. A single id N is the
// range [N,N].
type MaterialRange struct {
	Start int
	End   int
}

// ParseMaterialRange parses "N" or "N-M". Negative ids cannot be written.
func ParseMaterialRange(expr string) (MaterialRange, error) {
	parts := strings.Split(strings.TrimSpace(expr), "-")
	if len(parts) > 2 {
		return MaterialRange{}, &ConfigError{Text: expr, Err: ErrInvalidRange}
	}

	ids := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return MaterialRange{}, &ConfigError{Text: expr, Err: fmt.Errorf("%w: %q", ErrInvalidNumber, p)}
		}
		ids[i] = n
	}

	r := MaterialRange{Start: ids[0], End: ids[len(ids)-1]}
	if r.Start > r.End {
		return MaterialRange{}, &ConfigError{Text: expr, Err: fmt.Errorf("%w: start %d > end %d", ErrInvalidRange, r.Start, r.End)}
	}
	return r, nil
}

// Len returns the number of ids covered. Parsed ranges have
// 0 <= Start <= End, so End-Start never overflows.
func (r MaterialRange) Len() uint64 {
	return uint64(r.End-r.Start) + 1
}

// String returns the textual form accepted by ParseMaterialRange.
func (r MaterialRange) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
