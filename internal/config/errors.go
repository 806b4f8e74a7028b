package config

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrUnknownKey is returned by Get and Set for keys outside Keys().
	ErrUnknownKey = constError("unknown configuration key")
	// ErrInvalidValue is returned when a value cannot be parsed for its key.
	ErrInvalidValue = constError("invalid configuration value")
	// ErrUnsupportedVersion is returned by Validate for config versions
	// outside SupportedVersions.
	ErrUnsupportedVersion = constError("unsupported configuration version")
)
