package glyphtab

import (
	"fmt"

	"github.com/tsawler/glyphtab/model"
)

// Errors a conversion can fail with. They are returned wrapped in a
// *PageError, test for them with errors.Is.
var (
	ErrMalformedDescription = model.ErrMalformedDescription
	ErrLayoutMismatch       = model.ErrLayoutMismatch
	ErrInvalidCodepoint     = model.ErrInvalidCodepoint
)

// PageError reports the page a conversion failed on. Page is the 0-based
// page index, -1 when the failure is not tied to a page.
type PageError struct {
	Input string
	Page  int
	Err   error
}

func (e *PageError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("%s: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("%s: page %d: %v", e.Input, e.Page, e.Err)
}

// Unwrap returns the underlying error.
func (e *PageError) Unwrap() error {
	return e.Err
}
