package problemlens

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(bytes.NewBufferString(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !OrZeroValue(cfg.Enabled) {
		t.Error("enabled should default to true")
	}
	if got, want := cfg.StatusBar.Strategy, "activeLine"; got != want {
		t.Errorf("statusBar.strategy = %q, want %q", got, want)
	}
	want := []string{"error", "warning", "info", "hint"}
	if diff := cmp.Diff(want, cfg.EnabledDiagnosticLevels); diff != "" {
		t.Errorf("enabledDiagnosticLevels mismatch (-want +got):\n%s", diff)
	}
	if got, want := cfg.MessageTemplate, "$message"; got != want {
		t.Errorf("messageTemplate = %q, want %q", got, want)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	data := `
enabled: false
delayMs: 50
enabledDiagnosticLevels: [error, warning]
messageTemplate: "$severity: $message"
statusBar:
  strategy: closestSeverity
  template: "$message ($count)"
  alignment: right
  priority: 10
exclude:
  - "unused"
excludeBySource:
  - eslint(no-console)
server:
  name: gopls
  command: gopls
  args: [serve]
`
	cfg, err := LoadConfig(bytes.NewBufferString(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if OrZeroValue(cfg.Enabled) {
		t.Error("enabled should stay false")
	}
	if got, want := cfg.DelayMs, 50; got != want {
		t.Errorf("delayMs = %d, want %d", got, want)
	}
	if got, want := cfg.StatusBarTemplate(), "$message ($count)"; got != want {
		t.Errorf("StatusBarTemplate() = %q, want %q", got, want)
	}
	if got, want := cfg.Server.Command, "gopls"; got != want {
		t.Errorf("server.command = %q, want %q", got, want)
	}
}

func TestLoadConfig_StatusBarTemplateFallsBack(t *testing.T) {
	cfg, err := LoadConfig(bytes.NewBufferString(`messageTemplate: "[$code] $message"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := cfg.StatusBarTemplate(), "[$code] $message"; got != want {
		t.Errorf("StatusBarTemplate() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "unknown strategy",
			data:    `statusBar: {strategy: nearest}`,
			wantErr: "statusBar.strategy",
		},
		{
			name:    "bad alignment",
			data:    `statusBar: {alignment: center}`,
			wantErr: "statusBar.alignment",
		},
		{
			name:    "unknown level",
			data:    `enabledDiagnosticLevels: [error, fatal]`,
			wantErr: `unknown level "fatal"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(bytes.NewBufferString(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want contains %v", err.Error(), tt.wantErr)
			}
		})
	}
}
