package list

import (
	"context"
	"runtime"

	"github.com/vinicius-lino-figueiredo/mmlist/domain"
)

// snapshot is the immutable backed region of a list: the codec shared by all
// versions, the number of backed elements, the offset table delimiting each
// element's bytes and the big-memory payload those offsets index into.
//
// A snapshot is shared by every list version derived from the same Load, so
// it is never mutated. It owns one big-memory handle, released by a runtime
// cleanup once the last referencing version becomes unreachable.
type snapshot[T any] struct {
	codec   domain.Codec[T]
	count   int
	offsets []int64
	payload domain.BigMemory
}

func emptySnapshot[T any](codec domain.Codec[T]) *snapshot[T] {
	return &snapshot[T]{codec: codec, offsets: []int64{0}}
}

func newSnapshot[T any](codec domain.Codec[T], count int, offsets []int64, payload domain.BigMemory) *snapshot[T] {
	s := &snapshot[T]{codec: codec, count: count, offsets: offsets, payload: payload}
	if payload != nil {
		runtime.AddCleanup(s, func(mem domain.BigMemory) {
			_ = mem.Close()
		}, payload)
	}
	return s
}

// truncated returns a snapshot reporting only the first count backed
// elements. The offset table and payload are shared, not copied; the tail of
// the table is simply ignored. The returned snapshot holds its own handle on
// the payload resource.
func (s *snapshot[T]) truncated(count int) (*snapshot[T], error) {
	if s.payload == nil {
		return emptySnapshot(s.codec), nil
	}
	mem, err := s.payload.Slice(0, s.payload.Len())
	if err != nil {
		return nil, err
	}
	return newSnapshot(s.codec, count, s.offsets, mem), nil
}

// raw returns the previously encoded bytes of backed element i. The slice
// aliases the payload resource.
func (s *snapshot[T]) raw(i int) ([]byte, error) {
	start, end := s.offsets[i], s.offsets[i+1]
	if start == end {
		return nil, nil
	}
	return s.payload.Range(uint64(start), uint64(end-start))
}

// decode materializes backed element i. A zero-length byte range yields the
// zero value of T without calling the codec.
func (s *snapshot[T]) decode(ctx context.Context, i int) (T, error) {
	var zero T
	b, err := s.raw(i)
	if err != nil {
		return zero, err
	}
	if len(b) == 0 {
		return zero, nil
	}
	v, err := s.codec.Decode(ctx, b)
	if err != nil {
		return zero, domain.ErrCodec{Index: i, Err: err}
	}
	return v, nil
}
