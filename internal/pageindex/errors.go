package pageindex

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentNotFound indicates the document path does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrEmptyDocument indicates a document with no non-empty pages.
	ErrEmptyDocument = errors.New("document has no pages")

	// ErrIndexNotFound indicates the index file does not exist. It is
	// distinct from generic I/O failures so callers can suggest running
	// the index step first.
	ErrIndexNotFound = errors.New("index file not found")
)

// excerptLen bounds how much of a raw LLM response is carried in an
// UnparsableResponseError.
const excerptLen = 200

// UnparsableResponseError reports an LLM response that could not be parsed
// into the expected shape. It carries a bounded excerpt of the raw response
// for diagnostics.
type UnparsableResponseError struct {
	Excerpt string
	Err     error
}

func (e *UnparsableResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unparsable LLM response: %v (response: %s)", e.Err, e.Excerpt)
	}
	return fmt.Sprintf("unparsable LLM response (response: %s)", e.Excerpt)
}

func (e *UnparsableResponseError) Unwrap() error {
	return e.Err
}

// unparsable wraps a parse failure with a bounded excerpt of the response.
func unparsable(response string, err error) *UnparsableResponseError {
	excerpt := response
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen-3] + "..."
	}
	return &UnparsableResponseError{Excerpt: excerpt, Err: err}
}
