package codec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type person struct {
	Name string `mmlist:"name"`
	Age  int    `mmlist:"age"`
}

type CodecTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *CodecTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *CodecTestSuite) TestJSONRoundTrip() {
	c := NewJSON[person]()
	b, err := c.Encode(s.ctx, person{Name: "Alice", Age: 30})
	s.Require().NoError(err)
	got, err := c.Decode(s.ctx, b)
	s.Require().NoError(err)
	s.Equal(person{Name: "Alice", Age: 30}, got)
}

func (s *CodecTestSuite) TestJSONDecodeError() {
	c := NewJSON[person]()
	_, err := c.Decode(s.ctx, []byte("{"))
	s.Error(err)
}

func (s *CodecTestSuite) TestDocumentHonorsTags() {
	c := NewDocument[person]()
	b, err := c.Encode(s.ctx, person{Name: "Bob", Age: 18})
	s.Require().NoError(err)
	got, err := c.Decode(s.ctx, b)
	s.Require().NoError(err)
	s.Equal("Bob", got.Name)
	s.Equal(18, got.Age)
}

func (s *CodecTestSuite) TestDocumentCustomTagName() {
	type tagged struct {
		Value string `custom:"v"`
	}
	c := NewDocument[tagged](WithTagName("custom"))
	got, err := c.Decode(s.ctx, []byte(`{"v":"x"}`))
	s.Require().NoError(err)
	s.Equal("x", got.Value)
}

func (s *CodecTestSuite) TestDocumentWeakTyping() {
	type counted struct {
		N int `mmlist:"n"`
	}
	c := NewDocument[counted]()
	got, err := c.Decode(s.ctx, []byte(`{"n": 7.0}`))
	s.Require().NoError(err)
	s.Equal(7, got.N)
}

func (s *CodecTestSuite) TestDocumentScalarFallback() {
	c := NewDocument[string]()
	b, err := c.Encode(s.ctx, "plain")
	s.Require().NoError(err)
	got, err := c.Decode(s.ctx, b)
	s.Require().NoError(err)
	s.Equal("plain", got)
}

func (s *CodecTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	c := NewJSON[person]()
	_, err := c.Encode(ctx, person{})
	s.ErrorIs(err, context.Canceled)
	_, err = c.Decode(ctx, []byte("{}"))
	s.ErrorIs(err, context.Canceled)
}

func TestCodecTestSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}
