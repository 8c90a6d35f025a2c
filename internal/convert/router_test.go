package convert

import "testing"

func TestRoute(t *testing.T) {
	tests := []struct {
		ext  string
		want Strategy
	}{
		{".docx", StrategyGenericDocument},
		{".rtf", StrategyGenericDocument},
		{".odt", StrategyGenericDocument},
		{".txt", StrategyGenericDocument},
		{".xlsx", StrategyModernSpreadsheet},
		{".xls", StrategyLegacySpreadsheet},
		{".pptx", StrategyGenericLibrary},
		{".pdf", StrategyGenericLibrary},
		{".doc", StrategyLegacyDocChain},
		// case is normalized before lookup
		{".DOCX", StrategyGenericDocument},
		{".Xlsx", StrategyModernSpreadsheet},
		{".PDF", StrategyGenericLibrary},
		// outside the table
		{".zip", StrategyUnsupported},
		{".exe", StrategyUnsupported},
		{".md", StrategyUnsupported},
		{"", StrategyUnsupported},
		{"docx", StrategyUnsupported}, // missing leading dot
	}

	for _, tt := range tests {
		if got := Route(tt.ext); got != tt.want {
			t.Errorf("Route(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
