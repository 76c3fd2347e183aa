package evaluation

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrInvalidPattern = errors.New("invalid condition pattern")

// MatchesAny reports whether the predicate matches at least one pattern,
// checked in list order. Patterns are unanchored regular expressions;
// callers wanting exact-match semantics anchor with ^...$ themselves.
// A pattern that fails to compile is a configuration-authoring bug and
// the error propagates.
func MatchesAny(predicate string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
		}
		if re.MatchString(predicate) {
			return true, nil
		}
	}
	return false, nil
}
