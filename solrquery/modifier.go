package solrquery

// TermModifier controls how a term affects the matched document set.
type TermModifier int

const (
	// TermNone leaves the term optional; matching documents rank higher
	// but the result list is not restricted to them.
	TermNone TermModifier = iota

	// TermRequired restricts results to documents containing the term.
	TermRequired

	// TermProhibited excludes documents containing the term.
	TermProhibited
)

// Prefix returns the literal prepended to a term, field or group.
func (t TermModifier) Prefix() string {
	switch t {
	case TermRequired:
		return "+"
	case TermProhibited:
		return "-"
	default:
		return ""
	}
}

func (t TermModifier) String() string {
	switch t {
	case TermRequired:
		return "required"
	case TermProhibited:
		return "prohibited"
	default:
		return "none"
	}
}

// QueryModifier bundles the settings that affect how a single add
// operation renders its argument: the term modifier, disjunct vs
// conjunct expansion of multi-valued input, trailing-wildcard
// expansion, and an optional fuzziness level.
//
// QueryModifier is an immutable value; the derivation methods return
// modified copies and never touch the receiver.
type QueryModifier struct {
	term       TermModifier
	disjunct   bool
	wildcarded bool
	fuzzy      bool
	fuzziness  float64
}

// NewModifier returns a modifier with the given term modifier, conjunct
// expansion, no wildcarding and no fuzziness.
func NewModifier(term TermModifier) QueryModifier {
	return QueryModifier{term: term}
}

// WithTerm returns a copy with the term modifier replaced.
func (m QueryModifier) WithTerm(term TermModifier) QueryModifier {
	m.term = term
	return m
}

// Disjunct returns a copy expanding multi-valued input with OR semantics.
func (m QueryModifier) Disjunct() QueryModifier {
	m.disjunct = true
	return m
}

// Conjunct returns a copy expanding multi-valued input with AND semantics.
func (m QueryModifier) Conjunct() QueryModifier {
	m.disjunct = false
	return m
}

// Wildcarded returns a copy that renders single values as an exact
// boosted phrase OR-combined with a trailing-wildcard alternative.
func (m QueryModifier) Wildcarded() QueryModifier {
	m.wildcarded = true
	return m
}

// NotWildcarded returns a copy with wildcard expansion turned off.
func (m QueryModifier) NotWildcarded() QueryModifier {
	m.wildcarded = false
	return m
}

// WithFuzziness returns a copy with fuzzy matching enabled at the given
// level. The level must satisfy 0 <= fuzziness < 1.
func (m QueryModifier) WithFuzziness(fuzziness float64) (QueryModifier, error) {
	if fuzziness < 0 || fuzziness >= 1 {
		return m, ErrInvalidFuzziness
	}

	m.fuzzy = true
	m.fuzziness = fuzziness

	return m, nil
}

// WithoutFuzziness returns a copy with fuzzy matching disabled.
func (m QueryModifier) WithoutFuzziness() QueryModifier {
	m.fuzzy = false
	m.fuzziness = 0
	return m
}

// Term returns the term modifier.
func (m QueryModifier) Term() TermModifier {
	return m.term
}

// TermPrefix returns the literal prefix for the term modifier.
func (m QueryModifier) TermPrefix() string {
	return m.term.Prefix()
}

func (m QueryModifier) IsDisjunct() bool {
	return m.disjunct
}

func (m QueryModifier) IsWildcarded() bool {
	return m.wildcarded
}

// FuzzyEnabled reports whether a fuzziness level is set.
func (m QueryModifier) FuzzyEnabled() bool {
	return m.fuzzy
}

// Fuzziness returns the fuzziness level. It fails with
// ErrFuzzinessDisabled if no level is set; check with FuzzyEnabled.
func (m QueryModifier) Fuzziness() (float64, error) {
	if m.fuzzy == false {
		return 0, ErrFuzzinessDisabled
	}

	return m.fuzziness, nil
}

// FieldValueModifier returns the modifier applied to each member value
// when a multi-valued argument is expanded inside a group: members of a
// disjunct group carry no term modifier, members of a conjunct group
// are each required.
func (m QueryModifier) FieldValueModifier() QueryModifier {
	if m.disjunct == true {
		return m.WithTerm(TermNone)
	}

	return m.WithTerm(TermRequired)
}
