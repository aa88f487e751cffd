package mmlist_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinicius-lino-figueiredo/mmlist"
	"github.com/vinicius-lino-figueiredo/mmlist/adapter/bigmem"
	"github.com/vinicius-lino-figueiredo/mmlist/adapter/codec"
)

type person struct {
	Name string `mmlist:"name"`
	Age  int    `mmlist:"age"`
}

func TestSaveLoadThroughFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "people.db")

	l := mmlist.Empty(mmlist.WithCodec(codec.NewDocument[person]())).
		AddRange(person{Name: "Bob", Age: 18}, person{Name: "Alice", Age: 30})

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, l.Save(ctx, f))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := mmlist.Load(ctx,
		f,
		mmlist.WithCodec(codec.NewDocument[person]()),
		mmlist.WithMapper[person](bigmem.NewFileMapper()),
	)
	require.NoError(t, err)
	require.Equal(t, 2, got.Count())

	v, err := got.Get(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "Bob", v.Name)
	v, err = got.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Alice", v.Name)
}

func TestDefaultCodecIsJSON(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ints.db")

	l := mmlist.Empty[int]().AddRange(1, 2, 3)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, l.Save(ctx, f))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := mmlist.Load[int](ctx, f)
	require.NoError(t, err)
	for i := range 3 {
		v, err := got.Get(ctx, i)
		require.NoError(t, err)
		require.Equal(t, i+1, v)
	}
}
