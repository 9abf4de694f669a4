package application

import "errors"

// ErrConfigNotFound is returned when no configuration file exists in the start
// directory, any of its ancestors, or the fallback home directory.
var ErrConfigNotFound = errors.New("bitcore-node-divi.json not found")
