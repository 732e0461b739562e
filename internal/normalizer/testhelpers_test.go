package normalizer

import "healthsites/internal/models"

// newRow returns a row with every expected column blank, overridden by kv.
func newRow(kv map[string]string) models.Row {
	row := make(models.Row, len(models.Columns))
	for _, c := range models.Columns {
		row[c] = ""
	}

	for k, v := range kv {
		row[k] = v
	}

	return row
}

func newTable(rows ...models.Row) *models.Table {
	return &models.Table{Columns: models.Columns, Rows: rows}
}
