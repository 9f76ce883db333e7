package xlsx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
)

const (
	workbookPath      = "xl/workbook.xml"
	workbookRelsPath  = "xl/_rels/workbook.xml.rels"
	sharedStringsPath = "xl/sharedStrings.xml"
)

type archive struct {
	files map[string]*zip.File
}

func openArchive(data []byte) (*archive, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContainer, err)
	}

	files := make(map[string]*zip.File, len(zipReader.File))
	for _, file := range zipReader.File {
		files[file.Name] = file
	}

	return &archive{files: files}, nil
}

func (a *archive) has(name string) bool {
	_, ok := a.files[name]
	return ok
}

// open returns a reader over the named entry; the caller must close it.
func (a *archive) open(name string) (io.ReadCloser, error) {
	file, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("can not find %s: %w", name, fs.ErrNotExist)
	}

	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrContainer, name, err)
	}
	return reader, nil
}

func (a *archive) read(name string) ([]byte, error) {
	reader, err := a.open(name)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrContainer, name, err)
	}
	return data, nil
}
