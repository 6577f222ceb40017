// Package opineclient provides the primary entry point for constructing an
// Opine API client that implements the opine.Client interface.
//
// It layers configuration, HTTP transport, authentication, and identifier
// resolution on top of the resource interfaces and types defined in the opine
// package. Most applications should import opineclient to build a client, then
// use the returned opine.Client to access resource-specific clients, for
// example Sources(), Datasets(), Streams(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/opine-io/opine-client/pkg/opine"
//	  "github.com/opine-io/opine-client/pkg/opineclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an API endpoint (no auth).
//	  cli, err := opineclient.New(&opine.Config{Endpoint: "https://api.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a bearer token you already have:
//	  cli, err = opineclient.New(&opine.Config{
//	    Endpoint: "https://api.example.com",
//	    Token:    "eyJhbGciOi...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the opine.Client interface
//	  sources, err := cli.Sources().List(ctx, opine.NewQueryParams().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = sources
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithEndpoint and
// NewWithToken that wrap New with the appropriate configuration.
package opineclient
