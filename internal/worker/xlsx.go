package worker

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// convertXLSX reads a modern workbook directly and renders each sheet as a
// Markdown table. Reading the cells directly avoids the generic converter's
// slow HTML intermediate path.
func convertXLSX(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", name, err)
		}
		b.WriteString(renderSheet(name, rows))
	}
	return b.String(), nil
}
