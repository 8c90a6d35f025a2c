package worker

import "testing"

func TestRenderSheet(t *testing.T) {
	rows := [][]string{
		{"Name", "Amount"},
		{"Widget", "12"},
		{"Pipe|Co", "3"},
	}

	want := "# Sales\n\n" +
		"| Name | Amount |\n" +
		"| --- | --- |\n" +
		"| Widget | 12 |\n" +
		"| Pipe\\|Co | 3 |\n\n"

	if got := renderSheet("Sales", rows); got != want {
		t.Errorf("renderSheet =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderSheetRaggedRows(t *testing.T) {
	rows := [][]string{
		{"A", "B", "C"},
		{"only one"},
	}

	want := "# S\n\n" +
		"| A | B | C |\n" +
		"| --- | --- | --- |\n" +
		"| only one |  |  |\n\n"

	if got := renderSheet("S", rows); got != want {
		t.Errorf("renderSheet =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderSheetEmpty(t *testing.T) {
	if got := renderSheet("Empty", nil); got != "# Empty\n\n" {
		t.Errorf("renderSheet = %q", got)
	}
}

func TestEscapeCellFlattensNewlines(t *testing.T) {
	if got := escapeCell("a\r\nb|c"); got != `a b\|c` {
		t.Errorf("escapeCell = %q", got)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	if err := Run("csv", "/tmp/nope.csv", nil); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
