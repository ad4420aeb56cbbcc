package secrets

import "strings"

// sensitiveTokens mark a variable name as secret when one appears as a whole
// underscore-delimited segment, or as the tail of the last segment
// (GITHUBTOKEN, APIKEY).
var sensitiveTokens = []string{
	"KEY",
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"PASSWD",
	"PASSPHRASE",
	"CREDENTIAL",
	"CREDENTIALS",
	"AUTH",
}

// benignNames are never encrypted even though some contain a sensitive token.
var benignNames = map[string]struct{}{
	"NODE_ENV":           {},
	"PORT":               {},
	"LOG_LEVEL":          {},
	"RUST_LOG":           {},
	"AWS_REGION":         {},
	"FLY_PRIMARY_REGION": {},
	"DATABASE_NAME":      {},
	"APP_NAME":           {},
	"ENDPOINT_URL":       {},
	"ORG":                {},
	"AGE_KEY_NAME":       {},
	"PUBLIC_KEY":         {},
	"PUB_KEY":            {},
}

// publicPrefixes are exposed to browsers by frontend toolchains, so values
// behind them cannot be secret.
var publicPrefixes = []string{
	"PUBLIC_",
	"NEXT_PUBLIC_",
	"EXPO_PUBLIC_",
	"NUXT_PUBLIC_",
}

// benignSuffixes identify key names and public halves of key pairs.
var benignSuffixes = []string{
	"_AGE_KEY_NAME",
	"_PUBLIC_KEY",
	"_PUB_KEY",
}

// ShouldEncrypt reports whether a variable with this name should be stored
// encrypted. Matching is case-insensitive and never looks at the value.
func ShouldEncrypt(name string) bool {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return false
	}

	if _, ok := benignNames[upper]; ok {
		return false
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return false
		}
	}
	for _, suffix := range benignSuffixes {
		if strings.HasSuffix(upper, suffix) {
			return false
		}
	}

	segments := strings.FieldsFunc(upper, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for _, segment := range segments {
		if isSensitiveToken(segment) {
			return true
		}
	}

	if len(segments) > 0 {
		last := segments[len(segments)-1]
		for _, token := range sensitiveTokens {
			if strings.HasSuffix(last, token) {
				return true
			}
		}
	}

	return false
}

func isSensitiveToken(segment string) bool {
	for _, token := range sensitiveTokens {
		if segment == token {
			return true
		}
	}
	return false
}
