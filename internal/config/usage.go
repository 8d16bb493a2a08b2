package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/digitcalc/internal/ui"
)

// setCustomUsage installs a colored usage printer on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// the theme is not initialized yet when flags fail to parse
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()
		fmt.Fprintf(out, "\n%sDigit Chain Calculator%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Arbitrary-precision decimal multiplication and addition.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] [A B]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
