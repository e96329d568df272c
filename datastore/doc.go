/*
Package datastore defines the persistence interface for engine-encoded
aggregates.

The main interface is DataStore[T], which provides generic CRUD operations
for any registered aggregate type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, key string, entity T) error
	    Query(ctx context.Context, params *QueryParams) ([]*T, error)
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation storing the engine's plain-data encoding
  - mock: In-memory implementation for testing

Entities round-trip through the conversion engine, so anything the engine
can decode and encode — including generic and self-referential aggregates —
can be persisted without a per-type marshaling layer.
*/
package datastore
