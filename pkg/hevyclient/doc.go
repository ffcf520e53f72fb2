// Package hevyclient provides the primary entry point for constructing a
// Hevy API client that implements the hevy.Client interface.
//
// It layers configuration, the HTTP executor and input validation on top of
// the interfaces and types defined in the hevy package. Most applications
// import hevyclient to build a client, then use the returned hevy.Client to
// reach the resource clients.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "os"
//
//	  "github.com/fivetwenty-io/hevy-client/pkg/hevy"
//	  "github.com/fivetwenty-io/hevy-client/pkg/hevyclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := hevyclient.NewWithAPIKey(os.Getenv("HEVY_API_KEY"))
//	  if err != nil { log.Fatal(err) }
//
//	  count, err := cli.Workouts().Count(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.Workouts().List(ctx, 1, hevy.MaxPageSize)
//	  if err != nil { log.Fatal(err) }
//
//	  for _, workout := range page.Records("workouts") {
//	    log.Println(workout["title"])
//	  }
//	  _ = count
//	}
//
// # Errors
//
// Local argument checks fail before any request is made. A rejected API key
// is reported as *hevy.AuthenticationError, every other failure as
// *hevy.RequestError, and an invalid create payload as
// *hevy.ValidationError.
//
// # Helpers
//
// NewWithAPIKey and NewWithEndpoint wrap New with the appropriate
// configuration.
package hevyclient
