// Package ratelimit provides rate limit detection for model API failures.
package ratelimit

import "strings"

// Signatures are the substrings that mark a failure as a rate-limit
// rejection. Any error whose message contains one of them is retryable.
var Signatures = []string{
	"429",
	"RESOURCE_EXHAUSTED",
}

// FindSignature reports the first rate-limit signature contained in text.
func FindSignature(text string) (string, bool) {
	for _, sig := range Signatures {
		if strings.Contains(text, sig) {
			return sig, true
		}
	}
	return "", false
}

// IsRateLimit reports whether err's message carries a rate-limit signature.
// A nil error is never a rate limit.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	_, ok := FindSignature(err.Error())
	return ok
}
