package xlsx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row holds cell values in the order the cells appear in the worksheet XML.
// The cell reference attribute (r="B2") is not consulted, so a row whose
// XML omits blank cells is shorter than the header and shifted left.
type Row []string

// Sheet streams the rows of one worksheet part.
type Sheet struct {
	zipReader     io.ReadCloser
	decoder       *xml.Decoder
	sharedStrings sharedStrings
	part          string
	row           Row
	err           error
	done          bool
}

func newSheetReader(ar *archive, part string, sharedStrings sharedStrings) (*Sheet, error) {
	if !ar.has(part) {
		return nil, fmt.Errorf("can not find worksheet %s: %w", part, ErrWorksheetNotFound)
	}

	reader, err := ar.open(part)
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{
		zipReader:     reader,
		decoder:       xml.NewDecoder(reader),
		sharedStrings: sharedStrings,
		part:          part,
	}

	err = sheet.skipToSheetData()
	if err != nil {
		_ = reader.Close()
		return nil, err
	}

	return sheet, nil
}

func (s *Sheet) skipToSheetData() error {
	for {
		t, err := s.decoder.Token()
		if errors.Is(err, io.EOF) {
			// A worksheet without sheetData simply has no rows.
			s.done = true
			return nil
		}
		if err != nil {
			return partError(s.part, err)
		}

		if token, ok := t.(xml.StartElement); ok {
			switch token.Name.Local {
			case "worksheet":
				//
			case "sheetData":
				return nil
			default:
				if err := s.decoder.Skip(); err != nil {
					return partError(s.part, err)
				}
			}
		}
	}
}

func (s *Sheet) Close() error {
	return s.zipReader.Close()
}

// Next advances to the next row. It returns false at the end of the sheet
// data or on error; check Err to tell them apart.
func (s *Sheet) Next() bool {
	if s.done {
		return false
	}

	for {
		t, err := s.decoder.Token()
		if err != nil {
			s.fail(err)
			return false
		}

		switch token := t.(type) {
		case xml.StartElement:
			if token.Name.Local != "row" {
				if err := s.decoder.Skip(); err != nil {
					s.fail(err)
					return false
				}
				continue
			}
			row, err := s.readRow()
			if err != nil {
				s.fail(err)
				return false
			}
			s.row = row
			return true
		case xml.EndElement:
			if token.Name.Local == "sheetData" {
				s.done = true
				s.drain()
				return false
			}
		}
	}
}

// Row returns the row read by the last successful call to Next.
func (s *Sheet) Row() Row {
	return s.row
}

func (s *Sheet) Err() error {
	return s.err
}

func (s *Sheet) fail(err error) {
	s.done = true
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	s.err = partError(s.part, err)
}

// drain reads the rest of the part so a broken trailer is still reported.
func (s *Sheet) drain() {
	for {
		_, err := s.decoder.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			s.err = partError(s.part, err)
			return
		}
	}
}

func (s *Sheet) readRow() (Row, error) {
	var row Row
	for {
		t, err := s.decoder.Token()
		if err != nil {
			return nil, err
		}

		switch token := t.(type) {
		case xml.StartElement:
			if token.Name.Local != "c" {
				if err := s.decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			value, err := s.readCell(token)
			if err != nil {
				return nil, err
			}
			row = append(row, value)
		case xml.EndElement:
			if token.Name.Local == "row" {
				if row == nil {
					row = Row{}
				}
				return row, nil
			}
		}
	}
}

func (s *Sheet) readCell(start xml.StartElement) (string, error) {
	cellType := ""
	for _, attr := range start.Attr {
		if attr.Name.Local == "t" {
			cellType = attr.Value
		}
	}

	var raw []byte
	hasValue := false
	var inline []byte
	for {
		t, err := s.decoder.Token()
		if err != nil {
			return "", err
		}

		switch token := t.(type) {
		case xml.StartElement:
			switch token.Name.Local {
			case "v":
				raw, err = s.readText(nil)
				if err != nil {
					return "", err
				}
				hasValue = true
			case "is":
				inline, err = s.readInlineString()
				if err != nil {
					return "", err
				}
			default:
				if err := s.decoder.Skip(); err != nil {
					return "", err
				}
			}
		case xml.EndElement:
			if token.Name.Local == "c" {
				return s.cellValue(cellType, hasValue, raw, inline), nil
			}
		}
	}
}

func (s *Sheet) cellValue(cellType string, hasValue bool, raw, inline []byte) string {
	switch {
	case cellType == "inlineStr" && !hasValue:
		return string(inline)
	case !hasValue:
		return ""
	case cellType == "s":
		idx, err := strconv.Atoi(strings.TrimSpace(string(raw)))
		if err != nil {
			return ""
		}
		return s.sharedStrings.get(idx)
	default:
		return string(raw)
	}
}

// readText collects the character data of the current element up to its end tag.
func (s *Sheet) readText(buf []byte) ([]byte, error) {
	for {
		t, err := s.decoder.Token()
		if err != nil {
			return nil, err
		}

		switch token := t.(type) {
		case xml.CharData:
			buf = append(buf, token...)
		case xml.StartElement:
			if err := s.decoder.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return buf, nil
		}
	}
}

// readInlineString concatenates the t runs of an is element, the same way
// rich text shared strings are read.
func (s *Sheet) readInlineString() ([]byte, error) {
	var buf []byte
	for {
		t, err := s.decoder.Token()
		if err != nil {
			return nil, err
		}

		switch token := t.(type) {
		case xml.StartElement:
			switch token.Name.Local {
			case "t":
				buf, err = s.readText(buf)
				if err != nil {
					return nil, err
				}
			case "r":
				//
			default:
				if err := s.decoder.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if token.Name.Local == "is" {
				return buf, nil
			}
		}
	}
}
