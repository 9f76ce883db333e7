package xlsx

import (
	"encoding/xml"
	"fmt"
	"io"
)

const relationshipsNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

func readWorkbook(rd io.Reader) (*workbook, error) {
	decoder := xml.NewDecoder(rd)
	data := &workbook{}
	err := decoder.Decode(data)
	if err != nil {
		return nil, partError(workbookPath, err)
	}
	return data, nil
}

// workbook keeps only the sheet declarations. The relationship id is
// matched by its namespace URI, not by the "r" prefix a writer happened to use.
type workbook struct {
	XMLName xml.Name `xml:"workbook"`
	Sheets  []struct {
		Name    string `xml:"name,attr"`
		SheetId string `xml:"sheetId,attr"`
		ID      string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

// firstSheetID returns the relationship id of the first sheet in document order.
func (w *workbook) firstSheetID() (string, error) {
	if len(w.Sheets) == 0 {
		return "", ErrNoSheets
	}
	sheet := w.Sheets[0]
	if sheet.ID == "" {
		return "", fmt.Errorf("sheet %q has no %s id: %w", sheet.Name, relationshipsNamespace, ErrMissingRelationship)
	}
	return sheet.ID, nil
}
