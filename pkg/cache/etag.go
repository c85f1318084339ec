package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// ETag computes a content hash over a serialized response body. The hash is
// for cache validation only, not security; md5 collisions are acceptable
// here.
func ETag(body []byte) string {
	sum := md5.Sum(body)
	return hex.EncodeToString(sum[:])
}

// MatchesIfNoneMatch reports whether the given ETag appears in an
// If-None-Match header value. The header may contain several
// comma-separated tags, each optionally quoted or weak (W/ prefix); a match
// means the client already has the current body and a 304 short-circuit is
// in order.
func MatchesIfNoneMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" || etag == "" {
		return false
	}

	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		candidate = strings.Trim(candidate, `"`)

		if candidate == etag {
			return true
		}
	}
	return false
}
