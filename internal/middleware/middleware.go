package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap applies mws around h. The first middleware listed is the outermost,
// so it sees the request before the others do.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := range mws {
		h = mws[len(mws)-1-i](h)
	}
	return h
}
