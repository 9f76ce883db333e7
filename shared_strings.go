package xlsx

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
)

type sharedStrings []string

// get resolves a cell's shared string reference. A reference outside the
// table is tolerated and reads as an empty string.
func (s sharedStrings) get(idx int) string {
	if idx < 0 || idx >= len(s) {
		return ""
	}
	return s[idx]
}

func readSharedStrings(reader io.Reader) (sharedStrings, error) {
	decoder := xml.NewDecoder(reader)

	var result sharedStrings
	ar := &arena{}
	var text []byte
	isT := false
	for {
		t, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, partError(sharedStringsPath, err)
		}

		switch token := t.(type) {
		case xml.StartElement:
			switch token.Name.Local {
			case "si":
				text = text[:0]
			case "t":
				isT = true
			case "r":
				//
			case "sst":
				result = make(sharedStrings, 0, sstCapacity(token.Attr))
			default:
				if err := decoder.Skip(); err != nil {
					return nil, partError(sharedStringsPath, err)
				}
			}
		case xml.EndElement:
			switch token.Name.Local {
			case "si":
				result = append(result, ar.toString(text))
			case "t":
				isT = false
			}
		case xml.CharData:
			if isT {
				text = append(text, token...)
			}
		}
	}
	return result, nil
}

// sstCapacity reads the size hints of the sst element. They are only hints,
// so unparsable values are ignored.
func sstCapacity(attrs []xml.Attr) int {
	uniqCount := 0
	count := 0
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "uniqueCount":
			uniqCount, _ = strconv.Atoi(attr.Value)
		case "count":
			count, _ = strconv.Atoi(attr.Value)
		}
	}

	n := count
	if uniqCount != 0 {
		n = uniqCount
	}
	return min(max(n, 0), maxSharedStringsHint)
}

const maxSharedStringsHint = 1 << 16
