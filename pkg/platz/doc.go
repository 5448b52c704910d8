// Package platz provides types, interfaces, and helpers for working with the
// Platz HTTP API.
//
// # Overview
//
// The platz package defines the credential record (Credentials), the resolver
// contract credential sources implement (Resolver), the paginated envelope
// (Page) with the algorithms that walk it, the error taxonomy, and the
// interfaces of the resource clients. A concrete client is provided by the
// platzclient package, which wires credential resolution, transport and
// interceptors.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/platzio/platz-go/pkg/platz"
//	  "github.com/platzio/platz-go/pkg/platzclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := platzclient.New(ctx, &platz.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  deployments, err := cli.Deployments().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = deployments
//	}
//
// # Pagination
//
// List endpoints return a Page envelope ({page, per_page, items, num_total}).
// CollectAll keeps fetching while page*per_page < num_total and returns every
// item in order, or an error and no items. CollectExactlyOne reduces a list to
// its single item. Pages and Items expose the same walk as lazy sequences:
//
//	for deployment, err := range platz.Items[platz.Deployment](ctx, cli.Requester(), "/api/v2/deployments", nil) {
//	  if err != nil { break }
//	  _ = deployment
//	}
//
// # Errors
//
// Every failure is a single error value. KindOf classifies it (config not
// found, malformed env/profile/mounted secret, URL join, transport, HTTP
// status, decode, cardinality); IsNotFound, IsUnauthorized and IsForbidden
// branch on common statuses.
package platz
