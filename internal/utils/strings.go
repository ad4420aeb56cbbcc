package utils

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/dotenvage/internal/envfile"
	"github.com/PolarWolf314/dotenvage/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	return "\n" + ui.List(ui.Path, paths)
}

// SplitAssignment splits a NAME=value argument. ok is false when arg has
// no '=', in which case name is the whole argument.
func SplitAssignment(arg string) (name, value string, ok bool, err error) {
	name, value, ok = strings.Cut(arg, "=")
	if !envfile.ValidName(name) {
		return "", "", false, fmt.Errorf("invalid variable name %q", name)
	}
	return name, value, ok, nil
}

// SplitList splits comma separated values, trimming blanks and dropping
// empty items. Repeated flags and comma lists are both accepted.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
