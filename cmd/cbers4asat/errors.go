package main

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/cbers4asat/pkg/catalog"
	"github.com/robert-malhotra/cbers4asat/pkg/client"
	"github.com/robert-malhotra/cbers4asat/pkg/geometry"
)

// Process exit codes, one per error class.
const (
	exitOK              = 0
	exitUsage           = 1
	exitGeometry        = 2
	exitTransport       = 3
	exitServer          = 4
	exitClient          = 5
	exitInvalidResponse = 6
	exitCatalog         = 7
)

// usageError reports bad flags or unreadable input.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// exitCode maps an error returned by a command to the process exit code.
// Catalog failures are checked first since they wrap the client error that
// caused them.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		return exitCatalog
	case errors.Is(err, geometry.ErrGeometry):
		return exitGeometry
	case errors.Is(err, client.ErrTransport):
		return exitTransport
	case errors.Is(err, client.ErrServer):
		return exitServer
	case errors.Is(err, client.ErrClient):
		return exitClient
	case errors.Is(err, client.ErrInvalidResponse):
		return exitInvalidResponse
	default:
		return exitUsage
	}
}

// errorMessage renders err for stderr. Server-side failures get a retry hint.
func errorMessage(err error) string {
	msg := "Error: " + err.Error()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Temporary() {
		msg += "\nThe catalog reported a server-side failure; try again later."
	}
	return msg
}
