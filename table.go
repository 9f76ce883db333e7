package xlsx

// Source tells which reader produced a Table.
type Source int

const (
	SourcePrimary Source = iota
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Table is the first worksheet of a workbook: the first row as column names
// and every following row as data. Values are passed through verbatim.
type Table struct {
	Header Row
	Rows   []Row
	Source Source
}

// rowSource is satisfied by Sheet.
type rowSource interface {
	Next() bool
	Row() Row
	Err() error
}

func assembleTable(rows rowSource) (*Table, error) {
	var table *Table
	for rows.Next() {
		if table == nil {
			table = &Table{Header: rows.Row()}
			continue
		}
		table.Rows = append(table.Rows, rows.Row())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrEmptySheet
	}
	return table, nil
}

func tableFromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	table := &Table{
		Header: Row(rows[0]),
		Rows:   make([]Row, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, Row(row))
	}
	return table, nil
}
