package list

import (
	"context"
	"io"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/mmlist/domain"
	"github.com/vinicius-lino-figueiredo/mmlist/pkg/wire"
)

// Save writes a snapshot region of the whole list to w, which must implement
// [io.Seeker] so the payload length field can be patched once known. The new
// snapshot absorbs every current element as backed: untouched backed elements
// are copied byte for byte from the old payload without a decode/re-encode
// round trip; overwritten and unbacked elements are encoded through the
// codec. The receiver is left untouched; reloading the written bytes is how
// a fully backed version is obtained.
func (l *List[T]) Save(ctx context.Context, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	ws, ok := w.(io.WriteSeeker)
	if !ok {
		return domain.ErrNotSeekable{}
	}
	count := l.Count()
	if count > math.MaxInt32 {
		return errors.Newf("list of %d elements exceeds the int32 backed count field", count)
	}

	start, err := ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "locating region start")
	}
	// Placeholder length, patched after the payload is written.
	if err := wire.WriteHeader(ws, 0, int32(count)); err != nil {
		return errors.Wrap(err, "writing snapshot header")
	}

	cw := contextio.NewWriter(ctx, ws)
	offsets := make([]int64, count+1)
	var written int64

	emit := func(i int, b []byte) error {
		if len(b) > 0 {
			if _, err := cw.Write(b); err != nil {
				return errors.Wrapf(err, "writing element %d", i)
			}
			written += int64(len(b))
		}
		offsets[i+1] = written
		return nil
	}

	for i := 0; i < l.shared.count; i++ {
		var b []byte
		if v, ok := l.overwritten.Get(i); ok {
			if b, err = l.shared.codec.Encode(ctx, v); err != nil {
				return domain.ErrCodec{Index: i, Err: err}
			}
		} else if b, err = l.shared.raw(i); err != nil {
			return err
		}
		if err := emit(i, b); err != nil {
			return err
		}
	}
	for j := range l.unbacked.Len() {
		i := l.shared.count + j
		b, err := l.shared.codec.Encode(ctx, l.unbacked.Get(j))
		if err != nil {
			return domain.ErrCodec{Index: i, Err: err}
		}
		if err := emit(i, b); err != nil {
			return err
		}
	}

	table := wire.AppendOffsets(make([]byte, 0, wire.OffsetTableSize(count)), offsets)
	if _, err := cw.Write(table); err != nil {
		return errors.Wrap(err, "writing offset table")
	}
	payloadLen := written + int64(len(table))

	if _, err := ws.Seek(start, io.SeekStart); err != nil {
		return errors.Wrap(err, "seeking back to header")
	}
	if err := wire.WriteHeader(ws, payloadLen, int32(count)); err != nil {
		return errors.Wrap(err, "patching snapshot header")
	}
	if _, err := ws.Seek(start+wire.HeaderSize+payloadLen, io.SeekStart); err != nil {
		return errors.Wrap(err, "seeking past region")
	}
	return nil
}
