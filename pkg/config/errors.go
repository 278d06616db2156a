package config

import "fmt"

// MissingKeyError reports a required configuration key that was absent at
// construction time. It is fatal and never retried.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("config: required key %q is missing", e.Key)
}
