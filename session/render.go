package session

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Indhu-DataAI/TransformX/models"
)

const (
	previewMaxRows    = 5
	previewMaxColumns = 4
	previewMaxCell    = 50
)

// FormatMetric renders a metric fraction as a percentage with one decimal
// place: 0.873 -> "87.3%". Out-of-range values are not clamped; a backend
// reporting 1.5 shows up as "150.0%".
func FormatMetric(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

// ResultPreview is the in-place rendering of a result set: at most 4 fields
// of at most 5 records, long strings elided. The exportable download is
// always the untruncated full set.
type ResultPreview struct {
	Columns   []string
	Rows      [][]string
	TotalRows int
	Truncated bool
}

// Preview builds the preview table for a successful result set. Returns nil
// when there are no result records. Field order is the first record's keys
// sorted; the source of this data is a JSON object, which carries no order.
func Preview(result *models.EvaluationResult) *ResultPreview {
	if result == nil || len(result.Results) == 0 {
		return nil
	}

	first := result.Results[0]
	columns := make([]string, 0, len(first))
	for k := range first {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	if len(columns) > previewMaxColumns {
		columns = columns[:previewMaxColumns]
	}

	rowCount := len(result.Results)
	if rowCount > previewMaxRows {
		rowCount = previewMaxRows
	}

	rows := make([][]string, 0, rowCount)
	for _, record := range result.Results[:rowCount] {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellValue(record[col])
		}
		rows = append(rows, row)
	}

	return &ResultPreview{
		Columns:   columns,
		Rows:      rows,
		TotalRows: len(result.Results),
		Truncated: len(result.Results) > previewMaxRows || len(first) > previewMaxColumns,
	}
}

func cellValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		// JSON numbers decode to float64
		return FormatMetric(n)
	case int:
		return FormatMetric(float64(n))
	}

	s := fmt.Sprintf("%v", v)
	runes := []rune(s)
	if len(runes) > previewMaxCell {
		return string(runes[:previewMaxCell]) + "..."
	}
	return s
}
