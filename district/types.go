package district

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/wareflow/core"
)

// DefaultThreshold is the inter-warehouse cost below which two warehouses
// share one district.
const DefaultThreshold int64 = 40

// ErrBadThreshold indicates a non-positive merge threshold.
var ErrBadThreshold = errors.New("district: merge threshold must be positive")

// Anchor is a warehouse seeding the classification.
type Anchor struct {
	Serial core.Serial
	Flag   *core.Flag
}

// Link is the minimum observed cost between two neighbouring districts.
// A is always the lower serial.
type Link struct {
	A, B core.Serial
	Cost int64
}

// Result is the outcome of one classification.
type Result struct {
	// Center maps every reached flag to its district representative.
	Center map[*core.Flag]core.Serial

	// Members lists the warehouses of each district, keyed by representative.
	Members map[core.Serial][]core.Serial

	// Links holds the recorded inter-warehouse costs sorted by (A, B).
	Links []Link

	// Count is the number of districts.
	Count int
}

// Options configures Classify.
type Options struct {
	Threshold int64
}

// Option is a functional option for Classify.
type Option func(*Options)

// WithThreshold overrides DefaultThreshold. Non-positive values panic with
// ErrBadThreshold, mirroring other option constructors in this module.
func WithThreshold(threshold int64) Option {
	if threshold <= 0 {
		panic(fmt.Errorf("%w: %d", ErrBadThreshold, threshold))
	}

	return func(o *Options) { o.Threshold = threshold }
}
