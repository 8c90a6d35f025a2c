package handler

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"clean name", "report.docx", "report.docx", false},
		{"path traversal stripped", "../../etc/passwd", "passwd", false},
		{"absolute path stripped", "/var/log/report.doc", "report.doc", false},
		{"unsafe chars replaced", "my report (final).docx", "my_report__final_.docx", false},
		{"unicode replaced", "резюме.pdf", "______.pdf", false},
		{"empty", "", "", true},
		{"dot only", ".", "", true},
		{"dot dot", "..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitizeFilename(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("sanitizeFilename(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("sanitizeFilename(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
