package emissions

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for emissions calculation. Compare with errors.Is.
var (
	// ErrMissingColumn indicates a column required for calculation is absent.
	ErrMissingColumn = constError("required column missing")

	// ErrNonNumeric indicates a calculation column holds a non-numeric cell.
	ErrNonNumeric = constError("non-numeric value in numeric column")
)
