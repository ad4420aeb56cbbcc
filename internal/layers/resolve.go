package layers

import "github.com/PolarWolf314/dotenvage/internal/configs"

// Seed resolves dimensions from environment variables, then the runtime.
// Environment is left unknown when no variable sets it; see WithDefault.
func Seed(lookup configs.Lookup, rt Runtime) Set {
	var s Set
	for _, d := range Dimensions {
		if v, ok := fromSource(d, lookup, SourceEnv); ok {
			s[d] = v
			continue
		}
		switch d {
		case OperatingSystem:
			if tok := Token(d, "", rt.GOOS); tok != "" {
				s[d] = Value{Token: tok, Source: SourceRuntime}
			}
		case Architecture:
			if tok := Token(d, "", rt.GOARCH); tok != "" {
				s[d] = Value{Token: tok, Source: SourceRuntime}
			}
		}
	}
	return s
}

// Derive fills dimensions that are still unknown from merged env entries.
// Known dimensions are never revised. Values for which skip returns true
// (encrypted values) are ignored. It returns the updated set and the
// dimensions that became known.
func Derive(s Set, get configs.Lookup, skip func(string) bool) (Set, []Dimension) {
	var added []Dimension
	for _, d := range Dimensions {
		if s.Known(d) {
			continue
		}
		lookup := get
		if skip != nil {
			lookup = func(name string) (string, bool) {
				v, ok := get(name)
				if !ok || skip(v) {
					return "", false
				}
				return v, true
			}
		}
		if v, ok := fromSource(d, lookup, SourceFile); ok {
			s[d] = v
			added = append(added, d)
		}
	}
	return s, added
}

// WithDefault sets Environment to DefaultEnvironment when it is unknown.
// The boolean reports whether the set changed.
func WithDefault(s Set) (Set, bool) {
	if s.Known(Environment) {
		return s, false
	}
	return s.With(Environment, Value{Token: DefaultEnvironment, Source: SourceDefault}), true
}

func fromSource(d Dimension, lookup configs.Lookup, source Source) (Value, bool) {
	if lookup == nil {
		return Value{}, false
	}
	for _, alias := range aliases[d] {
		raw, ok := lookup(alias)
		if !ok {
			continue
		}
		if tok := Token(d, alias, raw); tok != "" {
			return Value{Token: tok, Source: source, Origin: alias}, true
		}
	}
	return Value{}, false
}
