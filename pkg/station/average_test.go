package station

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSampler struct {
	values []float32
	calls  int
	closed bool
}

func (c *countingSampler) Sample(Channel) (float32, error) {
	v := c.values[c.calls%len(c.values)]
	c.calls++
	return v, nil
}

func (c *countingSampler) Close() error {
	c.closed = true
	return nil
}

func TestAveraged(t *testing.T) {
	src := &countingSampler{values: []float32{1, 2, 3, 4}}
	s := Averaged(src, 4)

	v, err := s.Sample(Pressure)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), v)
	assert.Equal(t, 4, src.calls)
}

func TestAveraged_Passthrough(t *testing.T) {
	src := &countingSampler{values: []float32{1}}
	assert.Same(t, src, Averaged(src, 1))
	assert.Same(t, src, Averaged(src, 0))
}

func TestAveraged_Error(t *testing.T) {
	errRead := errors.New("read failed")
	s := Averaged(SamplerFunc(func(Channel) (float32, error) { return 0, errRead }), 3)

	_, err := s.Sample(WindSpeed)
	assert.ErrorIs(t, err, errRead)
}

func TestAveraged_ForwardsClose(t *testing.T) {
	src := &countingSampler{values: []float32{1}}
	s := Averaged(src, 2)

	c, ok := s.(interface{ Close() error })
	require.True(t, ok)
	require.NoError(t, c.Close())
	assert.True(t, src.closed)
}
