package display

import (
	"fmt"
	"os"

	"github.com/backmassage/wavdenoise/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `                      _                  _
__      ____ ___   __| | ___ _ __   ___ (_)___  ___
\ \ /\ / / _`+"`"+` \ \ / / _`+"`"+` |/ _ \ '_ \ / _ \| / __|/ _ \
 \ V  V / (_| |\ V / (_| |  __/ | | | (_) | \__ \  __/
  \_/\_/ \__,_| \_/ \__,_|\___|_| |_|\___/|_|___/\___|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
