package analysis

import "fmt"

// InputNotFoundError indicates the input path does not exist.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string { return fmt.Sprintf("File not found: %s", e.Path) }

// ParseError indicates the file could not be read as delimited text.
// Row is the 1-based data row (0 for the header).
type ParseError struct {
	Path string
	Row  int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("parse %s: row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
