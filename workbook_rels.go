package xlsx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// findRelationshipTarget scans the rels part for the Relationship with the
// given Id. Element and attribute names are compared by local name only:
// real-world rels parts use an unprefixed default namespace, or none at all.
func findRelationshipTarget(reader io.Reader, id string) (string, error) {
	decoder := xml.NewDecoder(reader)

	target := ""
	found := false
	for {
		t, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", partError(workbookRelsPath, err)
		}

		token, ok := t.(xml.StartElement)
		if !ok || found || token.Name.Local != "Relationship" {
			continue
		}

		relID, relTarget := "", ""
		for _, attr := range token.Attr {
			switch attr.Name.Local {
			case "Id":
				relID = attr.Value
			case "Target":
				relTarget = attr.Value
			}
		}
		if relID == id {
			target = relTarget
			found = true
		}
	}

	if !found {
		return "", fmt.Errorf("relationship %s: %w", id, ErrMissingRelationship)
	}
	return target, nil
}
