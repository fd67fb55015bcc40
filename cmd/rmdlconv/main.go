package main

import (
	"fmt"
	"os"

	"github.com/CafeFPS/rmdlconv/internal/studio"
)

func main() {
	cmd := newRootCommand()
	cmd.SetArgs(rewriteLegacyArgs(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rewriteLegacyArgs maps the old single-dash version flags ("-v16 folder")
// onto the current flag names, so existing batch scripts keep working.
func rewriteLegacyArgs(args []string) []string {
	out := make([]string, 0, len(args)+1)
	for _, a := range args {
		if m, ok := studio.FindMappingByFlag(a); ok {
			out = append(out, "--source-version", m.Tag)
			continue
		}
		out = append(out, a)
	}
	return out
}
