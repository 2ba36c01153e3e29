package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// --- Decoder Test Suite ---

type DecoderTestSuite struct {
	suite.Suite
}

// encode builds a fresh buffer through a throwaway encoder.
func (s *DecoderTestSuite) encode(write func(e *Encoder)) []byte {
	e := NewEncoder()
	write(e)
	return e.MoveBuffer()
}

func (s *DecoderTestSuite) TestReadDataBorrowsSource() {
	buf := s.encode(func(e *Encoder) {
		s.Require().NoError(e.Write([]byte{0xDE, 0xAD}))
	})

	d := NewDecoder(buf)
	p, err := d.ReadData(2)
	s.Require().NoError(err)
	s.Assert().Equal([]byte{0xDE, 0xAD}, p)
	s.Assert().Same(&buf[1], &p[0], "payload must alias the source, not copy it")
	s.Assert().Equal(3, d.Offset())
	s.Assert().Zero(d.Remaining())
}

func (s *DecoderTestSuite) TestReadInto() {
	buf := s.encode(func(e *Encoder) {
		s.Require().NoError(e.Write([]byte{1, 2, 3, 4}))
	})

	dst := make([]byte, 4)
	d := NewDecoder(buf)
	s.Require().NoError(d.ReadInto(dst))
	s.Assert().Equal([]byte{1, 2, 3, 4}, dst)
}

func (s *DecoderTestSuite) TestBoundsError() {
	buf := s.encode(func(e *Encoder) {
		s.Require().NoError(Write(e, uint32(0x01020304))) // 5 bytes on the wire
	})

	d := NewDecoder(buf[:3])
	var v uint32
	err := Read(d, &v)
	s.Require().Error(err)
	s.Assert().ErrorIs(err, ErrBounds)
}

func (s *DecoderTestSuite) TestFramingError() {
	buf := s.encode(func(e *Encoder) {
		s.Require().NoError(Write(e, uint32(7)))
	})
	buf[0] ^= 0xFF // corrupt the marker

	d := NewDecoder(buf)
	var v uint32
	err := Read(d, &v)
	s.Require().Error(err)
	s.Assert().ErrorIs(err, ErrFraming)
}

func (s *DecoderTestSuite) TestMisalignedReadIsDetected() {
	buf := s.encode(func(e *Encoder) {
		s.Require().NoError(Write(e, uint32(7)))
		s.Require().NoError(Write(e, uint32(8)))
	})

	// Reading the first field as the wrong size trips the marker check.
	d := NewDecoder(buf)
	var v uint64
	err := Read(d, &v)
	s.Require().Error(err)
	s.Assert().ErrorIs(err, ErrFraming)
}

func (s *DecoderTestSuite) TestFailureLatches() {
	buf := s.encode(func(e *Encoder) {
		s.Require().NoError(Write(e, uint16(1)))
		s.Require().NoError(Write(e, uint16(2)))
	})

	d := NewDecoder(buf)
	var wrong uint64
	first := Read(d, &wrong)
	s.Require().Error(first)

	// The second frame is intact, but the decoder is terminally failed.
	var v uint16
	err := Read(d, &v)
	s.Require().Error(err)
	s.Assert().Equal(first, err, "the latched error must not change")
	s.Assert().Equal(first, d.Err())

	_, err = d.ReadData(2)
	s.Assert().Equal(first, err)
}

func (s *DecoderTestSuite) TestIntrospection() {
	buf := s.encode(func(e *Encoder) {
		s.Require().NoError(Write(e, uint16(0xCAFE)))
		s.Require().NoError(e.Write([]byte("trailing state")))
	})

	d := NewDecoder(buf)
	s.Assert().Zero(d.Offset())
	s.Assert().Equal(len(buf), d.Remaining())

	var v uint16
	s.Require().NoError(Read(d, &v))
	s.Assert().Equal(uint16(0xCAFE), v)
	s.Assert().Equal(3, d.Offset())

	rest, err := d.ReadRemaining()
	s.Require().NoError(err)
	s.Assert().Equal([]byte("trailing state"), rest)
	s.Assert().Zero(d.Remaining())

	rest, err = d.ReadRemaining()
	s.Require().NoError(err)
	s.Assert().Empty(rest)
}

func (s *DecoderTestSuite) TestFromEncoder() {
	e := NewEncoder()
	s.Require().NoError(Write(e, uint8(0x5A)))

	d := FromEncoder(e)
	v, err := ReadValue[uint8](d)
	s.Require().NoError(err)
	s.Assert().Equal(uint8(0x5A), v)
}

func (s *DecoderTestSuite) TestFactoryRegistry() {
	buf := s.encode(func(e *Encoder) {
		dev := &deviceState{Name: "uart0", Registers: []uint32{1, 2, 3}}
		s.Require().NoError(Write(e, dev))
	})

	s.T().Run("MissingFactory", func(t *testing.T) {
		d := NewDecoder(buf)
		_, err := ReadValue[*deviceState](d)
		assert.ErrorIs(t, err, ErrConstruction)
	})

	s.T().Run("RegisteredFactory", func(t *testing.T) {
		d := NewDecoder(buf)
		RegisterFactory(d, func() *deviceState { return &deviceState{} })

		dev, err := ReadValue[*deviceState](d)
		assert.NoError(t, err)
		assert.Equal(t, "uart0", dev.Name)
		assert.Equal(t, []uint32{1, 2, 3}, dev.Registers)
	})

	s.T().Run("RegistrationIsInstanceLocal", func(t *testing.T) {
		d := NewDecoder(buf)
		_, err := ReadValue[*deviceState](d)
		assert.ErrorIs(t, err, ErrConstruction)
	})
}

func TestDecoder(t *testing.T) {
	suite.Run(t, new(DecoderTestSuite))
}
