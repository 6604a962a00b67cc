package ocr

// Strategy is one heuristic for locating a field in a block's raw text. It
// returns the extracted value and whether the heuristic applied. Strategies
// are pure; layering them as an ordered list keeps the fallback order
// auditable and each heuristic independently testable.
type Strategy func(block string) (string, bool)

// firstOf runs strategies in order and returns the first non-empty result.
func firstOf(block string, strategies ...Strategy) string {
	for _, s := range strategies {
		if v, ok := s(block); ok && v != "" {
			return v
		}
	}
	return ""
}
