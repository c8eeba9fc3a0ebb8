package solrquery

import "errors"

var (
	// ErrInvalidFuzziness is returned for fuzziness levels outside [0, 1).
	ErrInvalidFuzziness = errors.New("fuzziness must be between 0 (inclusive) and 1 (exclusive)")

	// ErrFuzzinessDisabled is returned when reading the fuzziness level
	// of a modifier that has none.
	ErrFuzzinessDisabled = errors.New("fuzziness is not enabled")

	// ErrInvalidBoost is returned for boost factors outside (0, 10000000).
	ErrInvalidBoost = errors.New("boost factor must be greater than 0 and less than 10000000")

	// ErrInvalidStart is returned for negative result offsets.
	ErrInvalidStart = errors.New("start must be a non-negative integer")

	// ErrInvalidRows is returned for row counts outside [0, max].
	ErrInvalidRows = errors.New("rows must be between 0 and the configured maximum")

	// ErrReservedParam is returned when q, start or rows are assigned
	// through the generic parameter setter instead of their dedicated
	// methods.
	ErrReservedParam = errors.New("reserved request parameter cannot be assigned directly")

	// ErrNoType is returned by NewTypeQuery for a blank type value.
	ErrNoType = errors.New("type query needs a non-blank type value")
)
