// Package flagx lets each component parse only the command-line flags it
// owns, so the shared os.Args can carry flags for several layers at once.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns the tokens of args that belong to allowed flags, in
// their original order. A value may be attached ("--config=x.json") or be the
// next token ("-c x.json") as long as that token does not start with a dash.
// Flags listed in boolFlags never consume a following token. Scanning stops
// at a bare "--".
func FilterArgs(args []string, allowed []string, boolFlags ...string) []string {
	known := toSet(allowed)
	switches := toSet(boolFlags)

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			break
		}

		name, _, attached := strings.Cut(tok, "=")
		if !strings.HasPrefix(name, "-") {
			continue
		}
		if _, ok := known[name]; !ok {
			continue
		}
		out = append(out, tok)

		if attached {
			continue
		}
		if _, ok := switches[name]; ok {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// Names expands bare flag names into the single and double dash spellings
// accepted by the flag package, e.g. "config" -> "-config", "--config".
func Names(names ...string) []string {
	out := make([]string, 0, len(names)*2)
	for _, n := range names {
		out = append(out, "-"+n, "--"+n)
	}
	return out
}

// JsonConfigFlags returns the path given with -c or -config, or "" when
// neither is present. When both appear the last one wins.
func JsonConfigFlags() string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], Names("c", "config")))

	return path
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
