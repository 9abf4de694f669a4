package scaffold

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when the start directory is empty or not absolute.
	ErrInvalidArgument = errors.New("argument should be an absolute path")
	// ErrConfigParse is returned when the located file does not hold a JSON object.
	ErrConfigParse = errors.New("config file is not valid JSON")
)

// ParseError reports a config file that was found but could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets callers match any ParseError against ErrConfigParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrConfigParse
}
