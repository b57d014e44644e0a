package problemlens

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Code
	}{
		{
			name: "string",
			data: `"E001"`,
			want: Code{Kind: CodeText, Text: "E001"},
		},
		{
			name: "number",
			data: `42`,
			want: Code{Kind: CodeNumber, Number: 42},
		},
		{
			name: "structured with string value",
			data: `{"value": "E002", "target": "https://example.com/E002"}`,
			want: Code{Kind: CodeStructured, Value: "E002", Target: "https://example.com/E002"},
		},
		{
			name: "structured with numeric value",
			data: `{"value": 7, "target": "https://example.com/7"}`,
			want: Code{Kind: CodeStructured, Value: "7", Target: "https://example.com/7"},
		},
		{
			name: "structured without value",
			data: `{"target": "https://example.com"}`,
			want: Code{Kind: CodeStructured, Target: "https://example.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Code
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Code mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeverity_Ordering(t *testing.T) {
	if !(SeverityError < SeverityWarning && SeverityWarning < SeverityInformation && SeverityInformation < SeverityHint) {
		t.Error("severity ranks must increase from error to hint")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name   string
		want   Severity
		wantOK bool
	}{
		{name: "error", want: SeverityError, wantOK: true},
		{name: "warning", want: SeverityWarning, wantOK: true},
		{name: "info", want: SeverityInformation, wantOK: true},
		{name: "information", want: SeverityInformation, wantOK: true},
		{name: "hint", want: SeverityHint, wantOK: true},
		{name: "fatal", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSeverity(tt.name)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseSeverity(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
