// Package platzclient provides the primary entry point for constructing a
// Platz API client that implements the platz.Client interface.
//
// It layers credential resolution, HTTP transport and interceptors on top of
// the resource interfaces and types defined in the platz package.
//
// Quick start
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
//
//	  // Credentials from PLATZ_URL/PLATZ_API_TOKEN, the profile file, or the
//	  // mounted secret, in that order.
//	  cli, err := platzclient.New(ctx, &platz.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a token you already have:
//	  cli, err = platzclient.NewWithToken(ctx, "https://platz.example.com", "eyJhbGciOi...")
//
//	  // Or pinned to a named profile:
//	  cli, err = platzclient.New(ctx, &platz.Config{
//	    Profile:           "staging",
//	    CredentialSources: []string{"profile"},
//	  })
//
//	  envs, err := cli.Envs().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = envs
//	}
//
// Construction never performs I/O. Credentials are resolved on the first
// request and re-resolved whenever the held credentials have expired, so a
// long-running process picks up rotated mounted secrets automatically.
package platzclient
