package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type staticChecker bool

func (s staticChecker) IsVerbose() bool { return bool(s) }

func TestVerboseGating(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "quiet", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter("test", staticChecker(tt.verbose), &buf)

			log.Debug("debug line")
			log.Info("info line")
			log.Warn("warn line")
			log.Error("error line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug present = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantDebug {
				t.Errorf("info present = %v, want %v", got, tt.wantDebug)
			}
			if !strings.Contains(out, "WARN [test] warn line") {
				t.Errorf("missing warn line in %q", out)
			}
			if !strings.Contains(out, "ERROR [test] error line") {
				t.Errorf("missing error line in %q", out)
			}
		})
	}
}

func TestFieldsAndComponents(t *testing.T) {
	var buf bytes.Buffer
	root := NewWithWriter("", staticChecker(true), &buf)
	child := root.WithComponent("client")

	child.InfoWithFields("request sent", []Field{F("status", 500), Error(errors.New("boom"))})
	root.Info("percent %d%%", 50)

	out := buf.String()
	if !strings.Contains(out, "[client] request sent [status=500 error=boom]") {
		t.Errorf("unexpected field output: %q", out)
	}
	if !strings.Contains(out, "[main] percent 50%") {
		t.Errorf("empty component should default to main: %q", out)
	}

	var redirected bytes.Buffer
	root.SetOutput(&redirected)
	child.Warn("after redirect")
	if !strings.Contains(redirected.String(), "after redirect") {
		t.Error("derived logger should follow SetOutput")
	}
}
