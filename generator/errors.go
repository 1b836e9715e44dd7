package generator

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound is returned by a template lookup when the image does
// not provide a template for the requested type.
var ErrTemplateNotFound = errors.New("template not found")

// IOError reports a failure to create or update generated output.
type IOError struct {
	Op   string // mkdir or write
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// TemplateError reports a template that exists but cannot be parsed or
// executed.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}
