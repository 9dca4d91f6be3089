package advanced

// MarkerPolicy decides what a geodesic transform does with markers that lie
// outside the allowed region.
type MarkerPolicy int

const (
	// IgnoreOutsideMarkers drops such markers. The position stays 0 like every
	// other forbidden position.
	IgnoreOutsideMarkers MarkerPolicy = iota
	// RejectOutsideMarkers fails the call with ErrMarkerOutOfMask.
	RejectOutsideMarkers
)

type config struct {
	normalize    bool
	inverted     bool
	markerPolicy MarkerPolicy
	concurrency  int
}

func newConfig(options []Option) config {
	c := config{concurrency: 4}
	for _, option := range options {
		option(&c)
	}
	return c
}

// An Option configures an engine or a batch.
type Option func(*config)

// WithNormalization divides results by the mask's normalization weight, so
// that one orthogonal step counts as 1. Integer results are rounded.
func WithNormalization(normalize bool) Option {
	return func(c *config) {
		c.normalize = normalize
	}
}

// WithInverted makes the distance transform measure, for each background
// position, the distance to the nearest foreground position. Foreground
// positions are then 0.
func WithInverted(inverted bool) Option {
	return func(c *config) {
		c.inverted = inverted
	}
}

// WithMarkerPolicy sets how a geodesic transform treats markers outside the
// allowed region. The default is IgnoreOutsideMarkers.
func WithMarkerPolicy(policy MarkerPolicy) Option {
	return func(c *config) {
		c.markerPolicy = policy
	}
}

// WithConcurrency bounds the number of calls a batch runs at once. Values
// below 1 mean one at a time.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.concurrency = n
	}
}
