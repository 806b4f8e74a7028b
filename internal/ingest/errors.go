package ingest

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for input parsing.
var (
	// ErrEmptyInput indicates the input has no header row or no JSON array.
	ErrEmptyInput = constError("empty input")

	// ErrInvalidNumber indicates a numeric spend field could not be parsed.
	ErrInvalidNumber = constError("invalid number")

	// ErrMissingColumn indicates a spend input lacks category or annual_spend_eur.
	ErrMissingColumn = constError("required spend column missing")

	// ErrUnsupportedFormat indicates a file extension with no reader.
	ErrUnsupportedFormat = constError("unsupported input format")
)
