package fragile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameGoroutine(t *testing.T) {
	f := New(42)
	assert.True(t, f.Valid())
	v, err := f.TryGet()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 42, f.Get())
}

func TestForeignGoroutine(t *testing.T) {
	f := New("ui")

	type result struct {
		valid bool
		err   error
		p     any
	}
	res := make(chan result, 1)
	go func() {
		var r result
		r.valid = f.Valid()
		_, r.err = f.TryGet()
		func() {
			defer func() { r.p = recover() }()
			f.Get()
		}()
		res <- r
	}()

	r := <-res
	assert.False(t, r.valid)
	assert.ErrorIs(t, r.err, ErrWrongGoroutine)
	assert.Equal(t, ErrWrongGoroutine, r.p)
}
