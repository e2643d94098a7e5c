// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hook

import (
	"net/http"

	"github.com/luxfi/thriftclient"
)

// Middleware brackets every request to next with c.Open and c.Close. When
// the connection cannot be opened the request is answered with 503 and next
// is not called.
func Middleware(c thriftclient.Connector, next http.Handler, opts ...Option) http.Handler {
	o := newOptions(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := o.bracket(c, r.Method+" "+r.URL.Path, func() {
			next.ServeHTTP(w, r)
		})
		if err != nil {
			http.Error(w, "unable to connect to thrift server", http.StatusServiceUnavailable)
		}
	})
}
