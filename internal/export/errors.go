package export

import (
	"errors"
	"fmt"
)

// ErrNoResults is returned when there is nothing to export
var ErrNoResults = errors.New("no results to download")

// ExportError reports that no document was produced
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export failed: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
