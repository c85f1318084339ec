package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/jhartmann-dev/blog-api/pkg/cache"
)

// compressionThreshold is the minimum body size worth compressing; below
// 1KB the gzip framing overhead outweighs the savings.
const compressionThreshold = 1024

// serveBody writes a pre-serialized JSON body, gzip-compressed when the
// client accepts it and the body is large enough.
func (s *Server) serveBody(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")

	acceptsGzip := strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
	if !acceptsGzip || len(body) <= compressionThreshold {
		w.WriteHeader(status)
		if _, err := w.Write(body); err != nil {
			s.logger.Error().Err(err).Msg("Failed to write response")
		}
		return
	}

	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Add("Vary", "Accept-Encoding")
	w.WriteHeader(status)

	gz := gzip.NewWriter(w)
	if _, err := gz.Write(body); err != nil {
		s.logger.Error().Err(err).Msg("Failed to compress response")
	}
	if err := gz.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to flush compressed response")
	}
	compressedResponsesTotal.Inc()
}

// serveCacheable writes a cacheable read response: it attaches the ETag
// and cache headers, short-circuits to 304 Not Modified when the client's
// If-None-Match already names the current body, and otherwise serves the
// body with an X-Cache marker.
func (s *Server) serveCacheable(w http.ResponseWriter, r *http.Request, body []byte, cacheStatus string) {
	etag := cache.ETag(body)
	cacheControl := "private, max-age=" + strconv.Itoa(int(s.cacheTTL.Seconds()))

	if cache.MatchesIfNoneMatch(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("ETag", `"`+etag+`"`)
		w.Header().Set("Cache-Control", cacheControl)
		w.WriteHeader(http.StatusNotModified)
		cache.NotModifiedResponses.Inc()

		s.logger.Debug().
			Str("path", r.URL.Path).
			Str("etag", etag).
			Msg("ETag match, serving 304")
		return
	}

	w.Header().Set("ETag", `"`+etag+`"`)
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("X-Cache", cacheStatus)
	s.serveBody(w, r, http.StatusOK, body)
}
