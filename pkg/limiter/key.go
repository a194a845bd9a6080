package limiter

// Policy kinds keep the call-count and failure-count policies on disjoint
// keys: the same identity and action never share a counter across the two.
const (
	kindRate = "rate"
	kindFail = "fail"
)

// buildKey derives the storage key for a (kind, action, identity) triple.
// Equal triples always map to the same key; the kind prefix and the ":"
// separators keep unequal triples apart in practice.
func buildKey(prefix, kind, action, identity string) (string, error) {
	if action == "" || identity == "" {
		return "", ErrInvalidKeyInput
	}
	return prefix + kind + ":" + action + ":" + identity, nil
}
