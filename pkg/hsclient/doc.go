// Package hsclient provides the primary entry point for constructing a
// HubSpot API client that implements the hubspot.Client interface.
//
// It layers configuration, HTTP transport, and bearer authentication on top
// of the resource interfaces and types defined in the hubspot package. Most
// applications should import hsclient to build a client, then use the
// returned hubspot.Client to access resource-specific clients, for example
// Owners(), Roles(), Users(), Companies().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/graphwell-io/hubsync/pkg/hsclient"
//	  "github.com/graphwell-io/hubsync/pkg/hubspot"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := hsclient.New(ctx, &hubspot.Config{
//	    AppID:       "1001",
//	    AccessToken: "pat-na1-...", // private-app token
//	  }, nil)
//	  if err != nil { log.Fatal(err) }
//
//	  // Iterate every owner, page by page.
//	  err = cli.Owners().Each(ctx, func(owner hubspot.Owner) error {
//	    log.Println(owner.Email)
//	    return nil
//	  })
//	  if err != nil { log.Fatal(err) }
//	}
//
// # Incremental collection
//
// The third argument of New is the execution history of prior runs. When it
// names a last successful run, the companies client fetches only records
// modified since that run started; a nil history requests the full
// modification history.
//
//	history := &hubspot.ExecutionHistory{
//	  LastSuccessful: &hubspot.RunRecord{StartedOn: 1697800000000},
//	}
//	cli, err := hsclient.New(ctx, cfg, history)
//
// # Helpers
//
// NewWithToken wraps New for the common case of an app id and token against
// the public API host.
package hsclient
