package list

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/mmlist/adapter/bigmem"
	"github.com/vinicius-lino-figueiredo/mmlist/adapter/codec"
	"github.com/vinicius-lino-figueiredo/mmlist/domain"
	"github.com/vinicius-lino-figueiredo/mmlist/pkg/wire"
)

// Load reads a snapshot region from r: the two header fields and the offset
// table eagerly, the payload as a big-memory view from which elements are
// decoded lazily on first access. On return the stream is positioned exactly
// past the consumed region, so multiple regions can follow each other in one
// stream. A nil options mapper defaults to the heap mapper.
func Load[T any](ctx context.Context, r io.Reader, opts domain.ListOptions[T]) (*List[T], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	c := opts.Codec
	if c == nil {
		c = codec.NewJSON[T]()
	}
	mapper := opts.Mapper
	if mapper == nil {
		mapper = bigmem.NewHeapMapper()
	}

	payloadLen, count, err := wire.ReadHeader(contextio.NewReader(ctx, r))
	if err != nil {
		return nil, err
	}
	tableSize := wire.OffsetTableSize(int(count))
	if uint64(payloadLen) < tableSize {
		return nil, errors.Newf("region of %d bytes cannot hold a %d-byte offset table", payloadLen, tableSize)
	}

	mem, err := mapper.Map(r, uint64(payloadLen))
	if err != nil {
		return nil, err
	}
	payloadBytes := uint64(payloadLen) - tableSize

	tableRaw, err := mem.Range(payloadBytes, tableSize)
	if err != nil {
		_ = mem.Close()
		return nil, err
	}
	offsets, err := wire.ParseOffsets(tableRaw, int(count), int64(payloadBytes))
	if err != nil {
		_ = mem.Close()
		return nil, err
	}
	payload, err := mem.Slice(0, payloadBytes)
	if err != nil {
		_ = mem.Close()
		return nil, err
	}
	// The payload slice holds its own reference; the umbrella handle over
	// payload plus table is no longer needed.
	_ = mem.Close()

	return newList(newSnapshot(c, int(count), offsets, payload)), nil
}
