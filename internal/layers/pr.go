package layers

import (
	"strings"

	"github.com/PolarWolf314/dotenvage/internal/configs"
)

// PRFile returns the env file name for a pull request number.
func PRFile(number string) string {
	return BaseFile + ".pr-" + number
}

// DetectPR returns the pull request number in GitHub Actions, or "".
// PR_NUMBER is used for pull_request* events; otherwise the digits after
// /pull/ in GITHUB_REF (refs/pull/123/merge).
func DetectPR(lookup configs.Lookup) string {
	if lookup == nil {
		return ""
	}

	if event, ok := lookup("GITHUB_EVENT_NAME"); ok && strings.HasPrefix(event, "pull_request") {
		if pr, ok := lookup("PR_NUMBER"); ok {
			if digits := leadingDigits(strings.TrimSpace(pr)); digits != "" && digits == strings.TrimSpace(pr) {
				return digits
			}
		}
	}

	if ref, ok := lookup("GITHUB_REF"); ok {
		if _, rest, found := strings.Cut(ref, "/pull/"); found {
			return leadingDigits(rest)
		}
	}
	return ""
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
