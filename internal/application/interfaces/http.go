package interfaces

import "net/http"

// HTTPHandler is the transport entry point served by cmd/server.
type HTTPHandler interface {
	http.Handler
}
