package solrquery

import (
	"errors"
	"testing"
)

type label struct {
	name string
}

func (l label) String() string {
	return l.name
}

func TestAddArgumentBlankIsNoop(t *testing.T) {
	b := New()

	b.AddArgument("", b.Default())
	b.AddArgument("   ", b.Mandatory())

	if b.Query() != "" {
		t.Fatalf("Expected empty query, got %q", b.Query())
	}
}

func TestAddArgumentRequired(t *testing.T) {
	b := New()

	b.AddArgument("shop", NewModifier(TermRequired))

	expected := "+shop "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddArgumentWildcarded(t *testing.T) {
	b := New()

	b.AddArgument("shop", b.Default())

	expected := `("shop"^2 shop*) `
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddArgumentEscapes(t *testing.T) {
	b := New()

	b.AddArgument("c++ shop", NewModifier(TermNone))

	expected := `c\+\+\ shop `
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddArgumentIgnoresModifierFuzziness(t *testing.T) {
	mod, err := NewModifier(TermNone).WithFuzziness(0.8)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	b := New()
	b.AddArgument("shop", mod)

	expected := "shop "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddFuzzyArgumentBounds(t *testing.T) {
	b := New()
	mod := NewModifier(TermNone)

	if err := b.AddFuzzyArgument("x", mod, -0.1); errors.Is(err, ErrInvalidFuzziness) == false {
		t.Fatalf("Expected %v, got %v", ErrInvalidFuzziness, err)
	}

	if err := b.AddFuzzyArgument("x", mod, 1.0); errors.Is(err, ErrInvalidFuzziness) == false {
		t.Fatalf("Expected %v, got %v", ErrInvalidFuzziness, err)
	}

	if err := b.AddFuzzyArgument("x", mod, 0.0); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected := "(x~0)"
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddFuzzyArgumentRequired(t *testing.T) {
	b := New()

	if err := b.AddFuzzyArgument("shop", NewModifier(TermRequired), 0.7); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected := "+(shop~0.7)"
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddArgumentListDisjunct(t *testing.T) {
	b := New()

	b.AddArgumentList([]string{"red", "blue"}, NewModifier(TermNone).Disjunct())

	expected := "(red blue ) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddArgumentListConjunct(t *testing.T) {
	b := New()

	b.AddArgumentList([]string{"red", "blue"}, NewModifier(TermNone).Conjunct())

	expected := "(+red +blue ) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddArgumentListCollapses(t *testing.T) {
	b := New()

	b.AddArgumentList(nil, b.Default())
	b.AddArgumentList([]string{}, b.Default())
	b.AddArgumentList([]string{"", "  "}, b.Default())

	if b.Query() != "" {
		t.Fatalf("Expected empty query, got %q", b.Query())
	}
}

func TestAddArgumentValues(t *testing.T) {
	b := New()

	b.AddArgumentValues([]interface{}{"red", 42}, NewModifier(TermNone).Conjunct())

	expected := "(+red +42 ) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddSubquery(t *testing.T) {
	frag := New()
	frag.AddArgument("red", NewModifier(TermNone))

	b := New()
	b.AddSubquery(frag, NewModifier(TermRequired))

	expected := "+(red ) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddSubqueryEmptyIsNoop(t *testing.T) {
	b := New()

	b.AddSubquery(nil, b.Mandatory())
	b.AddSubquery(New(), b.Mandatory())
	b.AddSubquery(Raw(""), b.Mandatory())

	if b.Query() != "" {
		t.Fatalf("Expected empty query, got %q", b.Query())
	}
}

func TestAddSubqueryTypedNil(t *testing.T) {
	b := New()

	var frag *QueryBuilder
	b.AddSubquery(frag, b.Mandatory())
	b.Add(frag, b.Mandatory())

	if b.Query() != "" {
		t.Fatalf("Expected empty query, got %q", b.Query())
	}
}

func TestAddSubqueryRaw(t *testing.T) {
	b := New()

	b.AddSubquery(Raw("a b"), NewModifier(TermNone))

	expected := "(a b) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddUnescaped(t *testing.T) {
	b := New()

	b.AddUnescaped("price_f:[1 TO 2]", true)

	expected := "+price_f:[1 TO 2] "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddUnescapedField(t *testing.T) {
	b := New()

	b.AddUnescapedField("price_f", "[1 TO 2]", false)

	expected := "price_f:[1 TO 2] "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}

	b.AddUnescapedField("", "[1 TO 2]", false)
	if b.Query() != expected {
		t.Fatalf("Expected blank key to be a no-op, got %q", b.Query())
	}
}

func TestStartEndField(t *testing.T) {
	b := New()

	b.StartField("dtype_s", NewModifier(TermRequired))
	b.AddArgument("shop", NewModifier(TermNone))
	b.EndField()

	expected := "+dtype_s:(shop ) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestEndFieldEmptyBody(t *testing.T) {
	b := New()

	b.StartField("dtype_s", NewModifier(TermNone))
	b.EndField()

	expected := `dtype_s:("") `
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestStartFieldBlankNameIsNoop(t *testing.T) {
	b := New()

	b.StartField("  ", b.Mandatory())

	if b.Query() != "" {
		t.Fatalf("Expected empty query, got %q", b.Query())
	}
}

func TestAddFieldSingleWord(t *testing.T) {
	b := New()

	b.AddField("dtype_s", "shop", NewModifier(TermRequired))

	expected := "+dtype_s:(+shop ) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddFieldTokenizedFallback(t *testing.T) {
	b := New()

	b.AddField("title_t", "red shoe", NewModifier(TermNone))

	expected := `title_t:(red\ shoe (red shoe )^0.5) `
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddFieldBlankIsNoop(t *testing.T) {
	b := New()

	b.AddField("", "shop", b.Default())
	b.AddField("dtype_s", " ", b.Default())

	if b.Query() != "" {
		t.Fatalf("Expected empty query, got %q", b.Query())
	}
}

func TestAddFuzzyField(t *testing.T) {
	b := New()

	if err := b.AddFuzzyField("name_t", "red shoe", NewModifier(TermNone), 0.5); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected := `name_t:((red\ shoe~0.5)((red~0.5)(shoe~0.5))^0.5) `
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddFuzzyFieldRequired(t *testing.T) {
	b := New()

	if err := b.AddFuzzyField("name_t", "shoe", NewModifier(TermRequired), 0.5); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	// the term prefix scopes the field, not the fuzzy value inside it
	expected := `+name_t:((shoe~0.5)) `
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddFuzzyFieldBounds(t *testing.T) {
	b := New()

	if err := b.AddFuzzyField("name_t", "shoe", NewModifier(TermNone), 1.0); errors.Is(err, ErrInvalidFuzziness) == false {
		t.Fatalf("Expected %v, got %v", ErrInvalidFuzziness, err)
	}

	if b.Query() != "" {
		t.Fatalf("Expected empty query, got %q", b.Query())
	}
}

func TestAddFieldList(t *testing.T) {
	b := New()

	b.AddFieldList("color_s", []string{"red", "blue"}, NewModifier(TermNone).Disjunct())

	expected := "color_s:((red blue ) ) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddFieldListAllBlank(t *testing.T) {
	b := New()

	b.AddFieldList("color_s", []string{" "}, NewModifier(TermNone).Disjunct())

	expected := `color_s:("") `
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddFieldValues(t *testing.T) {
	b := New()

	b.AddFieldValues("size_i", []interface{}{40, 41}, NewModifier(TermNone).Disjunct())

	expected := "size_i:((40 41 ) ) "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddBoost(t *testing.T) {
	b := New()
	b.AddArgument("shop", NewModifier(TermNone))

	if err := b.AddBoost(1.0); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected := "shop "
	if b.Query() != expected {
		t.Fatalf("Expected boost of 1 to be a no-op, got %q", b.Query())
	}

	if err := b.AddBoost(2.5); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected = "shop ^2.5 "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddBoostTruncates(t *testing.T) {
	b := New()

	if err := b.AddBoost(2.999); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected := "^2.99 "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddBoostWholeFactor(t *testing.T) {
	b := New()

	if err := b.AddBoost(3); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected := "^3 "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestAddBoostBounds(t *testing.T) {
	b := New()

	if err := b.AddBoost(0); errors.Is(err, ErrInvalidBoost) == false {
		t.Fatalf("Expected %v, got %v", ErrInvalidBoost, err)
	}

	if err := b.AddBoost(-1); errors.Is(err, ErrInvalidBoost) == false {
		t.Fatalf("Expected %v, got %v", ErrInvalidBoost, err)
	}

	if err := b.AddBoost(10000000); errors.Is(err, ErrInvalidBoost) == false {
		t.Fatalf("Expected %v, got %v", ErrInvalidBoost, err)
	}
}

func TestAddDispatch(t *testing.T) {
	mod := NewModifier(TermNone)
	frag := New()
	frag.AddArgument("red", mod)

	tests := []struct {
		value    interface{}
		expected string
	}{
		{nil, ""},
		{"shop", "shop "},
		{[]string{"red", "blue"}, "(red blue ) "},
		{[]interface{}{"red", "blue"}, "(red blue ) "},
		{frag, "(red ) "},
		{Raw("a b"), "(a b) "},
		{label{name: "red"}, "red "},
		{42, "42 "},
	}

	for _, test := range tests {
		b := New()
		b.Add(test.value, mod.Disjunct())
		if b.Query() != test.expected {
			t.Fatalf("Expected %q, got %q", test.expected, b.Query())
		}
	}
}

func TestChaining(t *testing.T) {
	b := New()

	got := b.
		AddArgument("shop", NewModifier(TermRequired)).
		AddArgumentList([]string{"red", "blue"}, NewModifier(TermNone).Disjunct()).
		Query()

	expected := "+shop (red blue ) "
	if got != expected {
		t.Fatalf("Expected %q, got %q", expected, got)
	}
}

func TestNewTypeQueryGolden(t *testing.T) {
	b, err := NewTypeQuery("shop")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected := "+dtype_s:((shop) )  "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestNewTypeQueryStripsBlanks(t *testing.T) {
	b, err := NewTypeQuery("my shop")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	expected := "+dtype_s:((myshop) )  "
	if b.Query() != expected {
		t.Fatalf("Expected %q, got %q", expected, b.Query())
	}
}

func TestNewTypeQueryBlank(t *testing.T) {
	if _, err := NewTypeQuery("  "); errors.Is(err, ErrNoType) == false {
		t.Fatalf("Expected %v, got %v", ErrNoType, err)
	}
}

func TestBracketBalance(t *testing.T) {
	b := New()

	b.AddField("dtype_s", "shop", b.Mandatory())
	b.AddFieldList("color_s", []string{"red", "blue"}, b.Optional())
	b.AddArgumentList([]string{"a", " ", "b"}, b.Default())
	b.AddSubquery(Raw("x"), b.Optional())
	b.StartField("brand_s", b.Optional())
	b.EndField()

	query := b.Query()

	depth := 0
	escaped := false
	inQuotes := false
	for _, r := range query {
		switch {
		case escaped == true:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes == true:
			// quoted text does not affect grouping
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				t.Fatalf("Unmatched close paren in %q", query)
			}
		}
	}

	if depth != 0 {
		t.Fatalf("Expected balanced parens, got depth %d in %q", depth, query)
	}
}
