package layers

import (
	"fmt"
	"strings"
)

// Source records how a dimension became known.
type Source int

const (
	SourceUnknown Source = iota
	SourceEnv
	SourceRuntime
	SourceFile
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceEnv:
		return "environment"
	case SourceRuntime:
		return "runtime"
	case SourceFile:
		return "env file"
	case SourceDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Value is a known dimension token and where it came from.
type Value struct {
	Token  string
	Source Source
	// Origin is the variable name that supplied the token, if any.
	Origin string
}

// Set holds the state of every dimension. A zero Value means unknown.
// Sets are values; methods return modified copies.
type Set [NumDimensions]Value

// Known reports whether d has a token.
func (s Set) Known(d Dimension) bool {
	return s[d].Token != ""
}

// Token returns the token for d, or "" when unknown.
func (s Set) Token(d Dimension) string {
	return s[d].Token
}

// Count returns how many dimensions are known.
func (s Set) Count() int {
	n := 0
	for _, v := range s {
		if v.Token != "" {
			n++
		}
	}
	return n
}

// With returns a copy with d set to v.
func (s Set) With(d Dimension, v Value) Set {
	s[d] = v
	return s
}

func (s Set) String() string {
	var parts []string
	for _, d := range Dimensions {
		if s.Known(d) {
			parts = append(parts, fmt.Sprintf("%s=%s", d, s[d].Token))
		}
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, " ")
}
