// Package middleware holds the HTTP middlewares of the shortener.
package middleware

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/KretovDmitry/shorturl/internal/logger"
)

// gzipBody replaces the request body with its decompressed stream.
type gzipBody struct {
	src io.ReadCloser
	zr  *gzip.Reader
}

func newGzipBody(src io.ReadCloser) (*gzipBody, error) {
	zr, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("new gzip reader: %w", err)
	}
	return &gzipBody{src: src, zr: zr}, nil
}

// Read reads decompressed data.
func (b *gzipBody) Read(p []byte) (int, error) {
	return b.zr.Read(p)
}

// Close closes both the gzip stream and the original body.
func (b *gzipBody) Close() error {
	if err := b.src.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return b.zr.Close()
}

// Unzip decompresses request bodies sent with a gzip content encoding.
// A body that is not a gzip stream is rejected with 400 Bad Request.
func Unzip(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			body, err := newGzipBody(r.Body)
			if err != nil {
				log.With(r.Context()).Warnf("unzip request body: %v", err)
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
			defer func() {
				if err = body.Close(); err != nil {
					log.With(r.Context()).Errorf("close gzip body: %v", err)
				}
			}()

			r.Body = body
			r.Header.Del("Content-Encoding")
			r.ContentLength = -1

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(f)
	}
}
