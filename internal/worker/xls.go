package worker

import (
	"fmt"
	"strings"

	"github.com/shakinm/xlsReader/xls"
)

// convertXLS reads a legacy BIFF workbook with a reader tolerant of the
// malformed files the standard legacy reader rejects.
func convertXLS(path string) (string, error) {
	wb, err := xls.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}

	var b strings.Builder
	for i := 0; i < wb.GetNumberSheets(); i++ {
		sh, err := wb.GetSheet(i)
		if err != nil {
			return "", fmt.Errorf("read sheet %d: %w", i, err)
		}

		var rows [][]string
		for j := 0; j <= sh.GetNumberRows(); j++ {
			r, err := sh.GetRow(j)
			if err != nil {
				continue
			}
			var cells []string
			for _, c := range r.GetCols() {
				cells = append(cells, c.GetString())
			}
			rows = append(rows, cells)
		}
		b.WriteString(renderSheet(sh.GetName(), rows))
	}
	return b.String(), nil
}
