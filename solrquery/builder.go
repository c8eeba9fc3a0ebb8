package solrquery

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Subquery is any prebuilt query fragment that can be spliced into a
// builder as a parenthesized group.
type Subquery interface {
	Query() string
}

// Raw is a literal query fragment. It bypasses escaping; the caller is
// responsible for its syntax.
type Raw string

func (r Raw) Query() string {
	return string(r)
}

// QueryBuilder accumulates query text plus a side table of request
// parameters (pagination, sort, field selection, facets). Create one
// per logical query; it is not safe for concurrent mutation.
//
// Append operations return the receiver for chaining. Operations that
// validate their input return an error instead.
type QueryBuilder struct {
	buf        bytes.Buffer
	params     map[string]interface{}
	facets     map[string]bool
	defaultMod QueryModifier
	maxRows    int
}

// Query returns the accumulated query text.
func (b *QueryBuilder) Query() string {
	return b.buf.String()
}

func (b *QueryBuilder) String() string {
	return b.Query()
}

// Default returns the builder's default modifier.
func (b *QueryBuilder) Default() QueryModifier {
	return b.defaultMod
}

// Mandatory returns the default modifier with a required term.
func (b *QueryBuilder) Mandatory() QueryModifier {
	return b.defaultMod.WithTerm(TermRequired)
}

// Optional returns the default modifier with no term modifier.
func (b *QueryBuilder) Optional() QueryModifier {
	return b.defaultMod.WithTerm(TermNone)
}

// SetDefaultModifier replaces the default modifier used by Default,
// Mandatory and Optional.
func (b *QueryBuilder) SetDefaultModifier(mod QueryModifier) *QueryBuilder {
	b.defaultMod = mod
	return b
}

// lastByte returns the final byte of the buffer, or 0 when empty.
func (b *QueryBuilder) lastByte() byte {
	if b.buf.Len() == 0 {
		return 0
	}

	return b.buf.Bytes()[b.buf.Len()-1]
}

// closeGroup finishes a group opened with "(". An empty group collapses
// to nothing instead of emitting "()".
func (b *QueryBuilder) closeGroup() {
	if b.lastByte() == '(' {
		b.buf.Truncate(b.buf.Len() - 1)
		return
	}

	b.buf.WriteString(") ")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// AddArgument appends a single escaped term. Blank values are a no-op.
// A wildcarded modifier renders the value twice, as a boosted exact
// phrase OR-combined with a trailing-wildcard alternative. Fuzziness
// carried by the modifier is ignored here; fuzzy rendering happens only
// through AddFuzzyArgument and AddFuzzyField.
func (b *QueryBuilder) AddArgument(value string, mod QueryModifier) *QueryBuilder {
	if isBlank(value) == true {
		return b
	}

	b.buf.WriteString(mod.TermPrefix())

	if mod.IsWildcarded() == true {
		b.buf.WriteString(`("`)
		b.buf.WriteString(EscapeQuotes(value))
		b.buf.WriteString(`"^2 `)
		b.buf.WriteString(EscapeAll(value))
		b.buf.WriteString("*)")
	} else {
		b.buf.WriteString(EscapeAll(value))
	}

	b.buf.WriteByte(' ')

	return b
}

// AddFuzzyArgument appends a single escaped term with an explicit
// fuzziness level. The level must satisfy 0 <= fuzziness < 1. Blank
// values are a no-op.
func (b *QueryBuilder) AddFuzzyArgument(value string, mod QueryModifier, fuzziness float64) error {
	if fuzziness < 0 || fuzziness >= 1 {
		return ErrInvalidFuzziness
	}

	if isBlank(value) == true {
		return nil
	}

	b.writeFuzzy(value, mod, fuzziness)

	return nil
}

// writeFuzzy emits the fuzzy form. No trailing separator; the fuzzy
// group stands on its own.
func (b *QueryBuilder) writeFuzzy(value string, mod QueryModifier, fuzziness float64) {
	b.buf.WriteString(mod.TermPrefix())
	b.buf.WriteByte('(')
	b.buf.WriteString(EscapeAll(value))
	b.buf.WriteByte('~')
	b.buf.WriteString(formatFloat(fuzziness))
	b.buf.WriteByte(')')
}

// AddArgumentList appends a group of values. Each member is added with
// the modifier's field-value derivation, so a disjunct modifier yields
// OR semantics and a conjunct one yields AND. A group whose members are
// all blank collapses to nothing.
func (b *QueryBuilder) AddArgumentList(values []string, mod QueryModifier) *QueryBuilder {
	if len(values) == 0 {
		return b
	}

	b.buf.WriteByte('(')

	child := mod.FieldValueModifier()
	for _, value := range values {
		b.AddArgument(value, child)
	}

	b.closeGroup()

	return b
}

// AddArgumentValues is AddArgumentList over untyped values, each
// dispatched through Add.
func (b *QueryBuilder) AddArgumentValues(values []interface{}, mod QueryModifier) *QueryBuilder {
	if len(values) == 0 {
		return b
	}

	b.buf.WriteByte('(')

	child := mod.FieldValueModifier()
	for _, value := range values {
		b.Add(value, child)
	}

	b.closeGroup()

	return b
}

// AddSubquery splices a prebuilt fragment in as a parenthesized group.
// A nil or empty subquery is a no-op; a typed nil pointer behind the
// interface counts as nil.
func (b *QueryBuilder) AddSubquery(sub Subquery, mod QueryModifier) *QueryBuilder {
	if sub == nil {
		return b
	}

	if v := reflect.ValueOf(sub); v.Kind() == reflect.Ptr && v.IsNil() == true {
		return b
	}

	text := sub.Query()
	if text == "" {
		return b
	}

	b.buf.WriteString(mod.TermPrefix())
	b.buf.WriteByte('(')
	b.buf.WriteString(text)
	b.buf.WriteString(") ")

	return b
}

// AddUnescaped appends raw text with no escaping. The caller accepts
// responsibility for the syntax of the text.
func (b *QueryBuilder) AddUnescaped(text string, mandatory bool) *QueryBuilder {
	if text == "" {
		return b
	}

	if mandatory == true {
		b.buf.WriteByte('+')
	}

	b.buf.WriteString(text)
	b.buf.WriteByte(' ')

	return b
}

// AddUnescapedField appends key:text with no escaping of the text.
func (b *QueryBuilder) AddUnescapedField(key string, text string, mandatory bool) *QueryBuilder {
	if isBlank(key) == true || text == "" {
		return b
	}

	if mandatory == true {
		b.buf.WriteByte('+')
	}

	b.buf.WriteString(key)
	b.buf.WriteByte(':')
	b.buf.WriteString(text)
	b.buf.WriteByte(' ')

	return b
}

// StartField opens a field scope: prefix, name and "(". Every StartField
// must be paired with an EndField on the same builder. Blank names are
// a no-op; skip the matching EndField in that case.
func (b *QueryBuilder) StartField(name string, mod QueryModifier) *QueryBuilder {
	if isBlank(name) == true {
		return b
	}

	b.buf.WriteString(mod.TermPrefix())
	b.buf.WriteString(name)
	b.buf.WriteString(":(")

	return b
}

// EndField closes the innermost open field scope. An empty field body
// renders as "" inside the parens so the field never serializes to a
// dangling open paren.
func (b *QueryBuilder) EndField() *QueryBuilder {
	if b.lastByte() == '(' {
		b.buf.WriteString(`""`)
	}

	b.buf.WriteString(") ")

	return b
}

// AddField appends a field scope holding a single value. A value
// containing blanks additionally gets a tokenized fallback group at
// half weight, so multi-word values still match on individual words.
func (b *QueryBuilder) AddField(key string, value string, mod QueryModifier) *QueryBuilder {
	if isBlank(key) == true || isBlank(value) == true {
		return b
	}

	b.StartField(key, mod)
	b.AddArgument(value, mod)

	if strings.Contains(value, " ") == true {
		b.buf.WriteByte('(')
		for _, token := range strings.Fields(value) {
			b.AddArgument(token, mod)
		}
		b.buf.WriteString(")^0.5")
	}

	b.EndField()

	return b
}

// AddFuzzyField is AddField with fuzzy matching at the given level for
// both the whole value and the tokenized fallback. The term prefix
// applies to the field scope only, not to the fuzzy values inside it.
func (b *QueryBuilder) AddFuzzyField(key string, value string, mod QueryModifier, fuzziness float64) error {
	if fuzziness < 0 || fuzziness >= 1 {
		return ErrInvalidFuzziness
	}

	if isBlank(key) == true || isBlank(value) == true {
		return nil
	}

	inner := mod.WithTerm(TermNone)

	b.StartField(key, mod)
	b.writeFuzzy(value, inner, fuzziness)

	if strings.Contains(value, " ") == true {
		b.buf.WriteByte('(')
		for _, token := range strings.Fields(value) {
			b.writeFuzzy(token, inner, fuzziness)
		}
		b.buf.WriteString(")^0.5")
	}

	b.EndField()

	return nil
}

// AddFieldList appends a field scope holding a group of values.
func (b *QueryBuilder) AddFieldList(key string, values []string, mod QueryModifier) *QueryBuilder {
	if isBlank(key) == true || len(values) == 0 {
		return b
	}

	b.StartField(key, mod)
	b.AddArgumentList(values, mod)
	b.EndField()

	return b
}

// AddFieldValues appends a field scope holding a group of untyped
// values, each dispatched through Add.
func (b *QueryBuilder) AddFieldValues(key string, values []interface{}, mod QueryModifier) *QueryBuilder {
	if isBlank(key) == true || len(values) == 0 {
		return b
	}

	b.StartField(key, mod)
	b.AddArgumentValues(values, mod)
	b.EndField()

	return b
}

// AddBoost appends a boost suffix for the preceding element. The factor
// must be greater than 0 and less than MaxBoost; it is truncated, not
// rounded, to 2 decimal places. A factor of exactly 1 is a no-op. Do
// not call this directly after StartField; a boost needs an element to
// attach to.
func (b *QueryBuilder) AddBoost(factor float64) error {
	if factor <= 0 || factor >= MaxBoost {
		return ErrInvalidBoost
	}

	if factor == 1.0 {
		return nil
	}

	truncated := float64(int64(factor*100)) / 100

	b.buf.WriteByte('^')
	b.buf.WriteString(formatFloat(truncated))
	b.buf.WriteByte(' ')

	return nil
}

// Add appends a value of any shape: strings and string slices go
// through the argument operations, Subquery fragments are spliced,
// Stringers and everything else are stringified first. A nil value is
// a no-op.
func (b *QueryBuilder) Add(value interface{}, mod QueryModifier) *QueryBuilder {
	switch v := value.(type) {
	case nil:
		return b

	case string:
		return b.AddArgument(v, mod)

	case []string:
		return b.AddArgumentList(v, mod)

	case []interface{}:
		return b.AddArgumentValues(v, mod)

	case Subquery:
		return b.AddSubquery(v, mod)

	case fmt.Stringer:
		return b.AddArgument(v.String(), mod)

	default:
		return b.AddArgument(fmt.Sprint(v), mod)
	}
}

// formatFloat renders a float with no exponent and no trailing zeros,
// so a boost of 2.5 reads "^2.5" and a whole factor of 3 reads "^3".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
