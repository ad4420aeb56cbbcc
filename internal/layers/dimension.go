package layers

import (
	"runtime"
	"strings"
)

// Dimension is one axis along which env files are specialized.
type Dimension int

const (
	Environment Dimension = iota
	OperatingSystem
	Architecture
	User
	Variant
)

// NumDimensions is the number of dimensions.
const NumDimensions = 5

// Dimensions lists every dimension in canonical order. File names join
// tokens in this order.
var Dimensions = [NumDimensions]Dimension{Environment, OperatingSystem, Architecture, User, Variant}

func (d Dimension) String() string {
	switch d {
	case Environment:
		return "environment"
	case OperatingSystem:
		return "os"
	case Architecture:
		return "arch"
	case User:
		return "user"
	case Variant:
		return "variant"
	default:
		return "unknown"
	}
}

// DefaultEnvironment applies when nothing else determines the environment.
const DefaultEnvironment = "local"

// aliases are the variable names carrying each dimension, highest priority
// first. The same names are honored in the process environment and in
// loaded env files.
var aliases = [NumDimensions][]string{
	Environment:     {"DOTENVAGE_ENV", "EKG_ENV", "VERCEL_ENV", "NODE_ENV"},
	OperatingSystem: {"DOTENVAGE_OS", "EKG_OS", "TARGETOS", "TARGETPLATFORM", "RUNNER_OS"},
	Architecture:    {"DOTENVAGE_ARCH", "EKG_ARCH", "TARGETARCH", "TARGETPLATFORM", "RUNNER_ARCH"},
	User:            {"DOTENVAGE_USER", "EKG_USER", "GITHUB_ACTOR", "GITHUB_TRIGGERING_ACTOR", "GITHUB_REPOSITORY_OWNER", "USER", "USERNAME"},
	Variant:         {"DOTENVAGE_VARIANT", "EKG_VARIANT", "VARIANT"},
}

// Aliases returns the carrier variable names for d in priority order.
func Aliases(d Dimension) []string {
	return append([]string(nil), aliases[d]...)
}

// IsCarrier reports whether name can set any dimension.
func IsCarrier(name string) bool {
	for _, names := range aliases {
		for _, alias := range names {
			if alias == name {
				return true
			}
		}
	}
	return false
}

// Runtime describes the host, used for the OS and architecture dimensions
// when no variable names them. The zero value disables runtime detection.
type Runtime struct {
	GOOS   string
	GOARCH string
}

// HostRuntime returns the runtime of the current process.
func HostRuntime() Runtime {
	return Runtime{GOOS: runtime.GOOS, GOARCH: runtime.GOARCH}
}

// Token normalizes a raw value read from alias for dimension d. It returns
// "" when the value is unusable as a file name segment.
func Token(d Dimension, alias, raw string) string {
	value := strings.TrimSpace(raw)
	if alias == "TARGETPLATFORM" {
		// linux/arm64/v8
		parts := strings.Split(value, "/")
		switch {
		case d == OperatingSystem:
			value = parts[0]
		case d == Architecture && len(parts) > 1:
			value = parts[1]
		default:
			value = ""
		}
	}

	value = strings.ToLower(strings.TrimSpace(value))
	switch d {
	case OperatingSystem:
		value = normalizeOS(value)
	case Architecture:
		value = normalizeArch(value)
	}

	if !validToken(value) {
		return ""
	}
	return value
}

func normalizeOS(value string) string {
	switch value {
	case "darwin", "macos", "osx", "mac":
		return "macos"
	case "win", "win32", "win64", "windows":
		return "windows"
	default:
		return value
	}
}

func normalizeArch(value string) string {
	switch value {
	case "x64", "x86_64", "x86-64", "amd64":
		return "amd64"
	case "aarch64", "arm64":
		return "arm64"
	case "i386", "i686", "386", "x86":
		return "x86"
	case "armv7", "armv7l", "armhf":
		return "arm"
	default:
		return value
	}
}

func validToken(value string) bool {
	if value == "" || value == "." || strings.Contains(value, "..") {
		return false
	}
	return !strings.ContainsAny(value, "/\\\x00")
}
