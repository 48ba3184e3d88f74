package cli

import (
	"io"
	"os"

	"github.com/yildizm/RFPCheck/internal/config"
	"github.com/yildizm/RFPCheck/internal/ui"
	"golang.org/x/term"
)

// isTerminal reports whether a writer is a TTY
var isTerminal = defaultIsTerminal

func defaultIsTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

// useColor decides whether headless output carries ANSI colour
func useColor(cfg *config.Config, out io.Writer) bool {
	if noColor || ui.IsColorDisabled() || cfg.Output.ColorMode == "never" {
		return false
	}
	if cfg.Output.ColorMode == "always" {
		return true
	}
	return isTerminal(out) && analyzeOutputFile == ""
}
