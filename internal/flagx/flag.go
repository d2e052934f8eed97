// Package flagx pre-parses the few command-line flags that must be known
// before the cobra command tree is built, such as the JSON config path.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// ConfigFlagNames lists every spelling accepted for the config file flag.
var ConfigFlagNames = []string{"-c", "-config", "--config"}

// FilterArgs keeps only the flags named in allowedFlags, together with their
// values. Both "-c value" and "--config=value" forms are recognised; a
// following token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// JsonConfigFlags returns the config file path given with -c, -config or
// --config in args, or "" when none is present. The last occurrence wins.
func JsonConfigFlags(args []string) string {
	var path string

	filtered := FilterArgs(args, ConfigFlagNames)

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(filtered)

	return path
}
