package xlsx

import (
	"archive/zip"
	"compress/flate"
	"errors"
	"fmt"
)

var (
	ErrContainer            = errors.New("not a valid xlsx container")
	ErrWorkbookRelsNotExist = errors.New("parse xlsx file failed: xl/_rels/workbook.xml.rels doesn't exist")
	ErrWorkbookNotExist     = errors.New("parse xlsx file failed: xl/workbook.xml doesn't exist")
	ErrNoSheets             = errors.New("workbook declares no sheets")
	ErrMissingRelationship  = errors.New("sheet relationship not found")
	ErrWorksheetNotFound    = errors.New("worksheet not found")
	ErrMalformedXML         = errors.New("malformed xml")
	ErrEmptySheet           = errors.New("sheet is empty")

	// ErrStyleCorruption is the only primary reader failure that triggers the fallback.
	ErrStyleCorruption = errors.New("style table corruption")
)

// FallbackError reports a failure of the fallback read. It unwraps to the
// specific kind, so errors.Is(err, ErrEmptySheet) and friends keep working.
type FallbackError struct {
	Err error
}

func (e *FallbackError) Error() string {
	return "fallback read failed: " + e.Err.Error()
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}

// partError attributes a decode failure of an archive part to either the
// container (compressed stream faults) or the XML itself.
func partError(part string, err error) error {
	var corrupt flate.CorruptInputError
	if errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrFormat) || errors.As(err, &corrupt) {
		return fmt.Errorf("%w: %s: %w", ErrContainer, part, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedXML, part, err)
}
