package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/mmlist"
	"github.com/vinicius-lino-figueiredo/mmlist/adapter/codec"
)

type storageMock struct{ mock.Mock }

// Exists implements domain.Storage.
func (s *storageMock) Exists(f string) (bool, error) {
	call := s.Called(f)
	return call.Bool(0), call.Error(1)
}

// EnsureParentDirectoryExists implements domain.Storage.
func (s *storageMock) EnsureParentDirectoryExists(f string, m os.FileMode) error {
	return s.Called(f, m).Error(0)
}

// CrashSafeWriteFile implements domain.Storage.
func (s *storageMock) CrashSafeWriteFile(f string, m os.FileMode, write func(io.WriteSeeker) error) error {
	return s.Called(f, m, write).Error(0)
}

// ReadFileStream implements domain.Storage.
func (s *storageMock) ReadFileStream(f string, m os.FileMode) (io.ReadCloser, error) {
	call := s.Called(f, m)
	rc, _ := call.Get(0).(io.ReadCloser)
	return rc, call.Error(1)
}

// Remove implements domain.Storage.
func (s *storageMock) Remove(f string) error {
	return s.Called(f).Error(0)
}

type StoreTestSuite struct {
	suite.Suite
	ctx  context.Context
	path string
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "people.db")
}

func (s *StoreTestSuite) collect(l *mmlist.List[string]) []string {
	out := []string{}
	for v, err := range l.Values(s.ctx) {
		s.Require().NoError(err)
		out = append(out, v)
	}
	return out
}

func (s *StoreTestSuite) TestSaveOpenRoundTrip() {
	l := mmlist.Empty[string]().AddRange("Bob", "Alice")
	s.Require().NoError(Save(s.ctx, s.path, l))

	got, err := Open[string](s.ctx, s.path, nil)
	s.Require().NoError(err)
	s.Equal([]string{"Bob", "Alice"}, s.collect(got))
}

func (s *StoreTestSuite) TestSaveCreatesParentDirectories() {
	path := filepath.Join(s.T().TempDir(), "nested", "deep", "people.db")
	s.Require().NoError(Save(s.ctx, path, mmlist.Empty[string]().Add("Bob")))

	got, err := Open[string](s.ctx, path, nil)
	s.Require().NoError(err)
	s.Equal([]string{"Bob"}, s.collect(got))
}

func (s *StoreTestSuite) TestSaveReplacesAtomically() {
	s.Require().NoError(Save(s.ctx, s.path, mmlist.Empty[string]().Add("old")))
	s.Require().NoError(Save(s.ctx, s.path, mmlist.Empty[string]().AddRange("new", "state")))

	got, err := Open[string](s.ctx, s.path, nil)
	s.Require().NoError(err)
	s.Equal([]string{"new", "state"}, s.collect(got))

	entries, err := os.ReadDir(filepath.Dir(s.path))
	s.Require().NoError(err)
	s.Len(entries, 1, "no temp files left behind")
}

func (s *StoreTestSuite) TestMutateAndResave() {
	s.Require().NoError(Save(s.ctx, s.path, mmlist.Empty[string]().AddRange("Bob", "Alice")))

	l, err := Open[string](s.ctx, s.path, nil)
	s.Require().NoError(err)
	l, err = l.SetItem(0, "Charlie")
	s.Require().NoError(err)

	// The open snapshot backs the rewrite of its own file; the crash-safe
	// temp-and-rename keeps the mapped bytes readable until done.
	s.Require().NoError(Save(s.ctx, s.path, l))
	got, err := Open[string](s.ctx, s.path, nil)
	s.Require().NoError(err)
	s.Equal([]string{"Charlie", "Alice"}, s.collect(got))
}

func (s *StoreTestSuite) TestOpenWithExplicitCodec() {
	type person struct {
		Name string `mmlist:"name"`
	}
	c := codec.NewDocument[person]()
	l := mmlist.Empty(mmlist.WithCodec(c)).Add(person{Name: "Bob"})
	s.Require().NoError(Save(s.ctx, s.path, l))

	got, err := Open(s.ctx, s.path, c)
	s.Require().NoError(err)
	v, err := got.Get(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal("Bob", v.Name)
}

func (s *StoreTestSuite) TestRemove() {
	s.Require().NoError(Save(s.ctx, s.path, mmlist.Empty[string]()))
	s.Require().NoError(Remove(s.path))
	_, err := os.Stat(s.path)
	s.True(os.IsNotExist(err))
}

func (s *StoreTestSuite) TestSavePropagatesStorageErrors() {
	st := new(storageMock)
	st.On("EnsureParentDirectoryExists", s.path, mock.Anything).Return(os.ErrPermission)

	err := Save(s.ctx, s.path, mmlist.Empty[string](), WithStorage(st))
	s.ErrorIs(err, os.ErrPermission)
	st.AssertExpectations(s.T())
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
