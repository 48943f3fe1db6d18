// Package connect provides types, interfaces, and helpers for working with
// the Pipedream Connect API.
//
// # Overview
//
// The connect package defines the domain types (e.g., Account, Component,
// DeployedTrigger, ConnectToken) and the interfaces for resource-oriented
// clients (e.g., AccountsClient, TriggersClient). A concrete implementation
// of these clients is provided by the pdclient package, which wires
// configuration, transport, and OAuth authentication. Most consumers should
// import pdclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/pipedream-labs/connect-go/pkg/connect"
//	  "github.com/pipedream-labs/connect-go/pkg/pdclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := pdclient.New(ctx, &connect.Config{
//	    ProjectID:    "proj_abc123",
//	    Environment:  connect.EnvironmentDevelopment,
//	    ClientID:     "...",
//	    ClientSecret: "...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  accounts, err := cli.Accounts().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = accounts
//	}
//
// # Queries and pagination
//
// List endpoints accept typed option structs (AccountListOptions,
// ComponentListOptions, DeployedTriggerListOptions) that carry cursor
// pagination parameters. PageIterator walks a cursor-paginated list one item
// at a time:
//
//	it := connect.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*connect.ListResponse[connect.Account], error) {
//	  return cli.Accounts().List(ctx, &connect.AccountListOptions{ListOptions: connect.ListOptions{Cursor: cursor}})
//	})
//	for it.HasNext() {
//	  account, err := it.Next()
//	  if err != nil { break }
//	  _ = account
//	}
//
// # Errors
//
// Authentication failures are represented by AuthError and all other API
// failures by APIError. Invalid input is rejected locally with sentinel
// errors (e.g., ErrExternalUserIDRequired) before any request is sent.
// Helpers such as IsAuthError, IsAPIError, and IsNotFound make it easy to
// branch on common cases.
//
// # Interceptors and caching
//
// The package includes request/response interceptors (for logging, request
// IDs, custom headers, client-side rate limiting) and a pluggable Cache
// abstraction with in-memory and NATS KV backends. The pdclient package
// composes these pieces for a sensible default client.
package connect
