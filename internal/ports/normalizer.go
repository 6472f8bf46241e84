package ports

// Normalizer rewrites text before it is split and aligned. Implementations
// must be safe for concurrent use.
type Normalizer interface {
	Normalize(text string) string
}
