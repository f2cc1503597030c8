package ioweb

import (
	"fmt"

	"github.com/gnames/bookshelf/pkg/errcode"
	"github.com/gnames/gn"
)

// ServerStartError creates an error for a server that could not bind
// or stopped serving unexpectedly.
func ServerStartError(addr string, err error) error {
	msg := `Cannot start web server on <em>%s</em>

<em>Possible causes:</em>
  - Port is already used by another process
  - Port number requires elevated privileges`

	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: []any{addr},
		Err:  fmt.Errorf("failed to serve on %s: %w", addr, err),
	}
}

// ServerShutdownError creates an error for a shutdown that did not
// finish in time.
func ServerShutdownError(err error) error {
	return &gn.Error{
		Code: errcode.ServerShutdownError,
		Msg:  "Web server did not stop gracefully",
		Err:  fmt.Errorf("failed to shut down server: %w", err),
	}
}
