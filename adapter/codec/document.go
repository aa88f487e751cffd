package codec

import (
	"context"
	"encoding/json"

	"github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
	"github.com/vinicius-lino-figueiredo/mmlist/domain"
)

// DefaultTagName is the struct tag consulted by [Document] when mapping
// decoded fields onto the element type.
const DefaultTagName = "mmlist"

// DocumentOption configures a [Document] codec.
type DocumentOption func(*documentOptions)

type documentOptions struct {
	tagName string
	weak    bool
}

// WithTagName sets the struct tag used to match decoded fields.
func WithTagName(tag string) DocumentOption {
	return func(o *documentOptions) {
		o.tagName = tag
	}
}

// WithWeakTyping enables weakly-typed conversions while decoding, e.g. JSON
// numbers into any numeric field type.
func WithWeakTyping(weak bool) DocumentOption {
	return func(o *documentOptions) {
		o.weak = weak
	}
}

// Document is a [domain.Codec] for struct-like elements. Values are stored as
// JSON; decoding goes through an intermediate map so that struct tags and
// weakly-typed conversions apply, the same way a document database maps
// stored documents onto user types.
type Document[T any] struct {
	opts documentOptions
}

// NewDocument returns a new implementation of domain.Codec.
func NewDocument[T any](options ...DocumentOption) domain.Codec[T] {
	opts := documentOptions{tagName: DefaultTagName, weak: true}
	for _, o := range options {
		o(&opts)
	}
	return &Document[T]{opts: opts}
}

// Encode implements domain.Codec.
func (d *Document[T]) Encode(ctx context.Context, v T) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return json.Marshal(v)
}

// Decode implements domain.Codec.
func (d *Document[T]) Decode(ctx context.Context, b []byte) (T, error) {
	var v T
	select {
	case <-ctx.Done():
		return v, ctx.Err()
	default:
	}
	if !isObjectLike(reflect.TypeOf(&v).Elem()) {
		err := json.Unmarshal(b, &v)
		return v, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return v, err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          d.opts.tagName,
		WeaklyTypedInput: d.opts.weak,
		Result:           &v,
	})
	if err != nil {
		return v, err
	}
	err = dec.Decode(m)
	return v, err
}

// isObjectLike reports whether t decodes from a JSON object, which is what
// the map-based path handles.
func isObjectLike(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return true
	default:
		return false
	}
}
