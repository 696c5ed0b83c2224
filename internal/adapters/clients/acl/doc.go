// Package acl provides Anti-Corruption Layer patterns for translating between
// external service DTOs and domain types.
//
// The ACL is a translation boundary between this service's domain model and
// the representations used by downstream HTTP APIs. It ensures that:
//
//   - External DTOs never leak into the domain
//   - External error codes map to domain errors
//   - External data is validated before creating domain objects
//
// # Package Components
//
//   - [BaseAdapter]: Embeddable struct with request helpers and error mapping
//   - [ErrorResponse]: Standard external error response parsing
//   - [MapHTTPError]: HTTP status code to domain error mapping
//   - [DecodeResponse]: Generic JSON response decoder
//   - [TranslateSlice]: Batch translation helper
//
// # Creating an Adapter
//
// Define unexported external DTOs in the adapter file, embed [BaseAdapter],
// and implement translation methods that validate and convert:
//
//	type MyServiceAdapter struct {
//	    acl.BaseAdapter
//	}
//
//	func (a *MyServiceAdapter) Get(ctx context.Context, id string) (*domain.Entity, error) {
//	    body, err := a.BaseAdapter.Get(ctx, "/api/v1/items/"+id, "get item")
//	    if err != nil {
//	        return nil, err // Already a domain error
//	    }
//
//	    ext, err := acl.DecodeResponse[externalResponse](body)
//	    if err != nil {
//	        return nil, domain.NewUnavailableError(a.ServiceName(), err.Error())
//	    }
//
//	    return a.translate(ext)
//	}
//
// The cloudapi storage adapter is the working example in this codebase.
//
// # Error Handling Strategy
//
// External services return errors in various formats:
//   - HTTP status codes (4xx, 5xx)
//   - Error response bodies with codes and messages
//   - Network/transport errors
//
// The ACL translates all of these to domain errors:
//   - 404 Not Found -> [domain.ErrNotFound]
//   - 409 Conflict -> [domain.ErrConflict]
//   - 400/422 Validation -> [domain.ErrValidation]
//   - 401/403 Forbidden -> [domain.ErrForbidden]
//   - 5xx/Network -> [domain.ErrUnavailable]
//
// Client-level errors ([clients.ErrCircuitOpen], [clients.ErrMaxRetriesExceeded])
// are also translated to [domain.ErrUnavailable] with appropriate context.
package acl
