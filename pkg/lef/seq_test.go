package lef

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeqAppendKeepsOrder(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 64, 1000} {
		s := NewSeq[int]("number")
		for i := 0; i < n; i++ {
			require.NoError(t, s.Append(i*3))
		}
		require.Equal(t, n, s.Len())
		for i := 0; i < n; i++ {
			v, err := s.At(i)
			require.NoError(t, err)
			require.Equal(t, i*3, v)
		}
	}
}

func TestSeqCapacityDoubles(t *testing.T) {
	var s Seq[string]
	require.NoError(t, s.Append("a"))
	require.Equal(t, 2, s.Cap())
	require.NoError(t, s.Append("b"))
	require.Equal(t, 2, s.Cap())
	require.NoError(t, s.Append("c"))
	require.Equal(t, 4, s.Cap())
	for _, v := range []string{"d", "e"} {
		require.NoError(t, s.Append(v))
	}
	require.Equal(t, 8, s.Cap())
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, s.Values())
}

func TestSeqLimit(t *testing.T) {
	s := NewSeq[int]("port")
	s.SetLimit(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Append(i))
	}
	err := s.Append(3)
	require.ErrorIs(t, err, ErrResourceExhausted)
	require.Contains(t, err.Error(), "port")
	require.Equal(t, 3, s.Len())
}

func TestSeqIndexErrors(t *testing.T) {
	s := NewSeq[float64]("width")
	require.NoError(t, s.Append(1.5))

	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 1},
		{"far past end", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.At(tt.index)
			require.ErrorIs(t, err, ErrInvalidIndex)
			var ie *IndexError
			require.True(t, errors.As(err, &ie))
			require.Equal(t, "width", ie.What)
			require.Equal(t, tt.index, ie.Index)
			require.Equal(t, 1, ie.Len)
		})
	}
}

func TestSeqResetAndIterate(t *testing.T) {
	s := NewSeq[string]("name")
	for _, v := range []string{"x", "y"} {
		require.NoError(t, s.Append(v))
	}
	var got []string
	for i, v := range s.All() {
		require.Equal(t, len(got), i)
		got = append(got, v)
	}
	require.Equal(t, []string{"x", "y"}, got)

	s.Reset()
	require.Equal(t, 0, s.Len())
	_, ok := s.Last()
	require.False(t, ok)
	require.Nil(t, s.Values())
}

func TestOpt(t *testing.T) {
	var o Opt[float64]
	_, ok := o.Get()
	require.False(t, ok)
	require.Equal(t, 2.0, o.Or(2))

	o.Set(0)
	v, ok := o.Get()
	require.True(t, ok)
	require.Zero(t, v)

	o.Clear()
	require.False(t, o.IsSet())
	require.True(t, Some("a").IsSet())
}
