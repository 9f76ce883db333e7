package xlsx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PrimaryFunc reads a whole workbook with a full-featured reader.
// It must report a broken style table as ErrStyleCorruption.
type PrimaryFunc func(data []byte) (*Table, error)

// ReadPrimary reads the first worksheet with excelize, with number formats
// applied from the style table.
func ReadPrimary(data []byte) (table *Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			table = nil
			err = classifyPanic(r)
		}
	}()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrContainer, err)
		}
		return nil, fmt.Errorf("excelize open: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excelize read sheet %q: %w", sheets[0], err)
	}

	table, err = tableFromRows(rows)
	if err != nil {
		return nil, err
	}
	table.Source = SourcePrimary
	return table, nil
}

// classifyPanic turns a panic raised inside excelize into an error. Only an
// index out of range fault is the style table corruption signature; any
// other panic is reported as is.
func classifyPanic(r any) error {
	if rtErr, ok := r.(runtime.Error); ok {
		if strings.Contains(rtErr.Error(), "index out of range") {
			return fmt.Errorf("%w: %w", ErrStyleCorruption, rtErr)
		}
		return fmt.Errorf("excelize: %w", rtErr)
	}
	if err, ok := r.(error); ok {
		return fmt.Errorf("excelize: %w", err)
	}
	return fmt.Errorf("excelize: %v", r)
}
