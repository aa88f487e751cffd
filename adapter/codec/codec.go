// Package codec contains the default [domain.Codec] implementations.
package codec

import (
	"context"
	"encoding/json"

	"github.com/vinicius-lino-figueiredo/mmlist/domain"
)

// JSON is a [domain.Codec] that stores each element as its JSON encoding. It
// is the default codec.
type JSON[T any] struct{}

// NewJSON returns a new implementation of domain.Codec.
func NewJSON[T any]() domain.Codec[T] {
	return JSON[T]{}
}

// Encode implements domain.Codec.
func (JSON[T]) Encode(ctx context.Context, v T) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return json.Marshal(v)
}

// Decode implements domain.Codec.
func (JSON[T]) Decode(ctx context.Context, b []byte) (T, error) {
	var v T
	select {
	case <-ctx.Done():
		return v, ctx.Err()
	default:
	}
	err := json.Unmarshal(b, &v)
	return v, err
}
