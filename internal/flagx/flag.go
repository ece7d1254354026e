// Package flagx helps several independent flag sets share one os.Args.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Filter returns the subset of args that belongs to the named flags, keeping
// order. Both "-name value" and "-name=value" forms are recognised; a value
// is only consumed when the next argument does not itself look like a flag.
// The result is never nil.
func Filter(args []string, names ...string) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if known[name] {
				out = append(out, arg)
			}
			continue
		}

		if !known[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath extracts the value of -c / -config from args, or "" when
// neither is given.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(Filter(args, "-c", "-config", "--config"))

	return path
}
