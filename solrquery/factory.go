package solrquery

const (
	// MaxRows is the default upper bound for SetRows.
	MaxRows = 10000000

	// MaxBoost is the exclusive upper bound for AddBoost factors.
	MaxBoost = 10000000

	// TypeField is the dynamic field carrying the document type
	// discriminator.
	TypeField = "dtype_s"
)

// DefaultModifier returns the modifier new builders start with:
// optional terms, disjunct expansion, wildcard expansion, no fuzziness.
func DefaultModifier() QueryModifier {
	return NewModifier(TermNone).Disjunct().Wildcarded()
}

// Config parameterizes a builder. Zero values fall back to
// DefaultModifier and MaxRows.
type Config struct {
	DefaultModifier QueryModifier
	MaxRows         int
}

// New returns an empty builder with the default configuration.
func New() *QueryBuilder {
	return NewWithConfig(Config{})
}

// NewWithConfig returns an empty builder with the given configuration.
func NewWithConfig(cfg Config) *QueryBuilder {
	zero := QueryModifier{}
	if cfg.DefaultModifier == zero {
		cfg.DefaultModifier = DefaultModifier()
	}

	if cfg.MaxRows <= 0 {
		cfg.MaxRows = MaxRows
	}

	b := QueryBuilder{
		params:     make(map[string]interface{}),
		facets:     make(map[string]bool),
		defaultMod: cfg.DefaultModifier,
		maxRows:    cfg.MaxRows,
	}

	b.params["start"] = 0
	b.params["rows"] = cfg.MaxRows

	return &b
}

// NewTypeQuery returns a builder seeded with a mandatory type
// discriminator scope for the given document type. The scope is built
// as a standalone fragment and spliced in unescaped, which preserves
// the exact separator layout downstream consumers expect.
func NewTypeQuery(dtype string) (*QueryBuilder, error) {
	if isBlank(dtype) == true {
		return nil, ErrNoType
	}

	scope := New()
	scope.StartField(TypeField, scope.Mandatory())
	scope.AddSubquery(Raw(EscapeInput(dtype, false)), scope.Optional())
	scope.EndField()

	b := New()
	b.AddUnescaped(scope.Query(), false)

	return b, nil
}
