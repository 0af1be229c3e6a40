package pdf

import (
	"errors"
	"fmt"
	"os"

	digipdf "github.com/digitorus/pdf"
)

// ErrInvalidDocument indicates the input could not be parsed as a PDF or
// contains no pages.
var ErrInvalidDocument = errors.New("invalid PDF document")

// PageCount parses the document structure at path and returns its page
// count. Unparseable input maps to ErrInvalidDocument.
func PageCount(path string) (n int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			n = 0
			err = fmt.Errorf("%w: %v", ErrInvalidDocument, r)
		}
	}()

	reader, err := digipdf.NewReader(f, info.Size())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return reader.NumPage(), nil
}
