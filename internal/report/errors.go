package report

import "fmt"

// RenderError indicates an artifact (image, JSON, HTML, workbook) could not be produced.
type RenderError struct {
	Artifact string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Artifact, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func renderErr(artifact string, err error) error {
	if err == nil {
		return nil
	}
	return &RenderError{Artifact: artifact, Err: err}
}
