package hygiene

// Signature is the unordered set of issue labels currently detected for a
// record, stored sorted. Reminder deduplication compares signatures as sets.
type Signature []string

// Contains reports whether the signature includes the label.
func (s Signature) Contains(label string) bool {
	for _, l := range s {
		if l == label {
			return true
		}
	}
	return false
}

// Covers reports whether every label of other is present in s.
func (s Signature) Covers(other Signature) bool {
	for _, label := range other {
		if !s.Contains(label) {
			return false
		}
	}
	return true
}

// Equal reports set equality between two signatures.
func (s Signature) Equal(other Signature) bool {
	return s.Covers(other) && other.Covers(s)
}
