// Package flagx contains small helpers for sharing os.Args between several
// independent flag sets (config file lookup, config flags, REPL options).
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// flagName strips one or two leading dashes and any "=value" suffix, so that
// "-k", "--k" and "--k=x" all name the flag "k". The standard flag package
// accepts both dash forms, so filtering must too.
func flagName(arg string) string {
	name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	return name
}

// FilterArgs returns the subset of args that belong to the allowed flags,
// keeping each flag's value when it is passed as a separate argument.
//
// allowed lists flag names with or without leading dashes ("c", "-c" and
// "--c" are equivalent). Parsing stops at a bare "--" terminator.
//
// Supported forms:
//
//	-k value     --k value
//	-k=value     --k=value
//
// The result is never nil.
func FilterArgs(args []string, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[flagName(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}
		if _, ok := set[flagName(arg)]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigPathFlag extracts the JSON config path given via -c or -config.
// Other arguments are ignored. It returns "" when neither flag is present.
func ConfigPathFlag() string {
	return configPathFrom(os.Args[1:])
}

func configPathFrom(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-path", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"c", "config"}))

	return path
}
