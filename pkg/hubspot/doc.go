// Package hubspot provides types, interfaces, and helpers for collecting
// CRM data from the HubSpot APIs.
//
// # Overview
//
// The hubspot package defines the domain types (Owner, Role, User, Company,
// Property), the error taxonomy, and the interfaces for resource-oriented
// clients (OwnersClient, RolesClient, UsersClient, CompaniesClient,
// PropertiesClient). A concrete implementation of these clients is provided
// by the hsclient package, which wires configuration, transport, and
// authentication. Most consumers should import hsclient to construct a
// client and then interact with the resource client interfaces exposed here.
//
// Getting a client
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
//	  cli, err := hsclient.New(ctx, &hubspot.Config{
//	    AppID:       "12345",
//	    AccessToken: "pat-na1-...",
//	  }, nil)
//	  if err != nil { log.Fatal(err) }
//
//	  err = cli.Owners().Each(ctx, func(owner hubspot.Owner) error {
//	    _ = owner
//	    return nil
//	  })
//	  if err != nil { log.Fatal(err) }
//	}
//
// # Pagination
//
// HubSpot exposes two pagination protocols. Modern v3 collection endpoints
// return a paging.next.after cursor; the legacy v2 companies endpoint returns
// an offset plus a hasMore flag. Both are driven by the same Iterator type
// with a page source selected per resource:
//
//	it := hubspot.NewCursorIterator[hubspot.Owner](querier, "/crm/v3/owners", nil)
//	for it.HasNext() {
//	  owners, err := it.NextPage(ctx)
//	  if err != nil { break }
//	  _ = owners
//	}
//
// Items are always delivered sequentially, in page order then item order, and
// page N+1 is never requested before every callback for page N has returned.
//
// # Incremental collection
//
// An ExecutionHistory carrying the start time of the last successful run may
// be supplied at client construction. The companies client uses it as the
// `since` watermark for the legacy recently-modified endpoint; an absent
// history is equivalent to since=0, which requests the full modification
// history.
//
// # Errors
//
// Failures surface as one of three typed errors: AuthenticationError (from
// VerifyAuthentication), APIError (from every resource method), and
// ValidationError (from configuration checks). All carry the literal endpoint
// path, the HTTP status, and the status text of the underlying failure, and
// wrap the original cause. Helpers such as IsNotFound, IsUnauthorized, and
// IsRateLimited make it easy to branch on common cases.
package hubspot
