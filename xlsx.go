// Package xlsx reads the first worksheet of an xlsx file into a Table.
//
// Files are read with excelize first. When excelize trips over a broken
// style table, the package falls back to its own minimal OOXML reader,
// which only looks at the workbook, its relationships, the shared strings
// and the first worksheet.
package xlsx

import (
	"bytes"
	"fmt"
)

// fallbackBook holds what the fallback reader learns about one archive.
type fallbackBook struct {
	archive       *archive
	sheetPath     string
	sharedStrings sharedStrings
}

// ReadFallback reads the first worksheet without looking at styles. Errors
// are returned with their specific kind and no FallbackError wrapping.
func ReadFallback(data []byte) (*Table, error) {
	ar, err := openArchive(data)
	if err != nil {
		return nil, err
	}

	book := &fallbackBook{archive: ar}
	err = book.load()
	if err != nil {
		return nil, err
	}

	sheet, err := newSheetReader(ar, book.sheetPath, book.sharedStrings)
	if err != nil {
		return nil, err
	}
	defer sheet.Close()

	table, err := assembleTable(sheet)
	if err != nil {
		return nil, err
	}
	table.Source = SourceFallback
	return table, nil
}

func (b *fallbackBook) load() error {
	id, err := b.firstSheetID()
	if err != nil {
		return err
	}

	err = b.fillSheetPath(id)
	if err != nil {
		return err
	}

	if b.archive.has(sharedStringsPath) {
		err = b.fillSharedStrings()
		if err != nil {
			return err
		}
	}

	return nil
}

func (b *fallbackBook) firstSheetID() (string, error) {
	if !b.archive.has(workbookPath) {
		return "", ErrWorkbookNotExist
	}

	data, err := b.archive.read(workbookPath)
	if err != nil {
		return "", err
	}

	wb, err := readWorkbook(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	return wb.firstSheetID()
}

func (b *fallbackBook) fillSheetPath(id string) error {
	if !b.archive.has(workbookRelsPath) {
		return ErrWorkbookRelsNotExist
	}

	data, err := b.archive.read(workbookRelsPath)
	if err != nil {
		return err
	}

	target, err := findRelationshipTarget(bytes.NewReader(data), id)
	if err != nil {
		return err
	}
	if target == "" {
		return fmt.Errorf("relationship %s has no target: %w", id, ErrMissingRelationship)
	}

	b.sheetPath = resolveTarget(target)
	return nil
}

func (b *fallbackBook) fillSharedStrings() error {
	reader, err := b.archive.open(sharedStringsPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	b.sharedStrings, err = readSharedStrings(reader)
	if err != nil {
		return err
	}
	return nil
}
