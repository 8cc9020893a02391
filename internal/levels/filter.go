package levels

import (
	"fmt"

	"github.com/Faultbox/m64vr/pkg/formats"
)

// MaxRangeWidth bounds how many ids a single exclusion range may expand to.
const MaxRangeWidth = 1 << 16

// MaterialFilter is the compiled form of an exclusion-rule list: the set of
// material ids that are not rendered. A nil filter excludes nothing.
type MaterialFilter map[int]struct{}

// CompileFilter expands exclusion-rule expressions ("N" or "N-M") into a
// filter. Overlapping and duplicate expressions are harmless, as are ids that
// no model uses.
func CompileFilter(exprs []string) (MaterialFilter, error) {
	f := make(MaterialFilter)
	for _, expr := range exprs {
		r, err := formats.ParseMaterialRange(expr)
		if err != nil {
			return nil, err
		}
		if r.Len() > MaxRangeWidth {
			return nil, &formats.ConfigError{
				Text: expr,
				Err:  fmt.Errorf("%w: %d ids exceeds limit of %d", formats.ErrInvalidRange, r.Len(), MaxRangeWidth),
			}
		}
		for id := range int(r.Len()) {
			f[r.Start+id] = struct{}{}
		}
	}
	return f, nil
}

// Excludes reports whether faces using material id are dropped.
func (f MaterialFilter) Excludes(id int) bool {
	_, ok := f[id]
	return ok
}

// Len returns the number of excluded ids.
func (f MaterialFilter) Len() int {
	return len(f)
}
