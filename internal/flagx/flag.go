// Package flagx lets several flag sets share one argument list. Each set
// picks out only the flags it owns, so the config loader and a subcommand
// can both parse the same os.Args without tripping over each other.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Owned lists the flag names (without dashes) a flag set is responsible for.
// Bool flags never consume the following argument as their value.
type Owned struct {
	Valued []string
	Bool   []string
}

func (o Owned) kind(arg string) (name string, known, isBool bool) {
	if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
		return "", false, false
	}
	name = strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	for _, b := range o.Bool {
		if b == name {
			return name, true, true
		}
	}
	for _, v := range o.Valued {
		if v == name {
			return name, true, false
		}
	}
	return name, false, false
}

// FilterArgs returns the owned flags (with their values) from args, in order.
//
// Accepted forms are -f value, --f value, -f=value and --f=value; bool flags
// only take a value through '='.
func FilterArgs(args []string, owned Owned) []string {
	filtered, _ := split(args, owned)
	return filtered
}

// Remaining returns everything FilterArgs would drop: positional arguments
// and flags owned by someone else.
func Remaining(args []string, owned Owned) []string {
	_, rest := split(args, owned)
	return rest
}

func split(args []string, owned Owned) (mine, rest []string) {
	mine = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		_, known, isBool := owned.kind(arg)
		if !known {
			rest = append(rest, arg)
			continue
		}

		mine = append(mine, arg)
		if isBool || strings.Contains(arg, "=") {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			mine = append(mine, args[i+1])
			i++
		}
	}
	return mine, rest
}

// ConfigPath extracts the JSON config file path given via -c or -config.
// It returns an empty string when neither is present.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, Owned{Valued: []string{"c", "config"}}))

	return path
}
