// Package delivery defines the contract every transport front end implements.
package delivery

import "context"

// Delivery is a serving surface (e.g. the HTTP server) started by the
// application container. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
