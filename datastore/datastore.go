/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import "context"

// DataStore persists registered aggregate types by key. Implementations
// encode entities through the conversion engine on the way in and decode
// them through it on the way out, so the stored representation is the same
// plain-data form the engine's ToJSON produces.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, key string, entity T) error

	Query(ctx context.Context, params *QueryParams) ([]*T, error)

	Delete(ctx context.Context, key string) error
}

// QueryParams defines parameters for listing entities of one type.
type QueryParams struct {
	// Limit caps the number of items returned.
	Limit *int32
	// Ascending orders results by key; defaults to true.
	Ascending *bool
}
