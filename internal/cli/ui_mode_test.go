package cli

import (
	"bytes"
	"io"
	"testing"
)

// withTerminal stubs TTY detection for a test.
func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

func TestResolveUIMode(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		verbose     bool
		tty         bool
		wantLive    bool
		wantWarning bool
		wantErr     bool
	}{
		{name: "auto on tty", mode: "auto", tty: true, wantLive: true},
		{name: "auto without tty", mode: "auto", tty: false, wantLive: false},
		{name: "empty defaults to auto", mode: "", tty: true, wantLive: true},
		{name: "live on tty", mode: "live", tty: true, wantLive: true},
		{name: "live without tty warns", mode: "live", tty: false, wantLive: false, wantWarning: true},
		{name: "plain ignores tty", mode: "plain", tty: true, wantLive: false},
		{name: "verbose forces plain", mode: "live", verbose: true, tty: true, wantLive: false},
		{name: "invalid mode", mode: "fancy", tty: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTerminal(t, tt.tty)
			var stdout bytes.Buffer
			decision, err := resolveUIMode(tt.mode, tt.verbose, &stdout)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.useLive != tt.wantLive {
				t.Fatalf("useLive = %v, want %v", decision.useLive, tt.wantLive)
			}
			if (decision.warning != "") != tt.wantWarning {
				t.Fatalf("warning = %q, want warning: %v", decision.warning, tt.wantWarning)
			}
		})
	}
}
