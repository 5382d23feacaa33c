package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	o := Parse("", "")
	require.Equal(t, int64(1), o.Page)
	require.Equal(t, int64(10), o.Limit)

	o = Parse("abc", "-5")
	require.Equal(t, int64(1), o.Page)
	require.Equal(t, int64(10), o.Limit)
}

func TestNormalize_ClampsLimit(t *testing.T) {
	o := Options{Page: 3, Limit: 500}.Normalize()
	require.Equal(t, int64(3), o.Page)
	require.Equal(t, int64(100), o.Limit)
}

func TestSkip(t *testing.T) {
	require.Equal(t, int64(0), Options{Page: 1, Limit: 10}.Skip())
	require.Equal(t, int64(40), Options{Page: 5, Limit: 10}.Skip())
}

func TestNew_Totals(t *testing.T) {
	docs := []int{1, 2, 3}
	p := New(docs, 23, Options{Page: 2, Limit: 10})
	require.Equal(t, int64(23), p.TotalDocs)
	require.Equal(t, int64(3), p.TotalPages)
	require.True(t, p.HasNextPage)
	require.True(t, p.HasPrevPage)
	require.NotNil(t, p.NextPage)
	require.Equal(t, int64(3), *p.NextPage)
	require.NotNil(t, p.PrevPage)
	require.Equal(t, int64(1), *p.PrevPage)
}

func TestNew_EmptyResultStillOnePage(t *testing.T) {
	p := New[int](nil, 0, Options{Page: 1, Limit: 10})
	require.NotNil(t, p.Docs)
	require.Len(t, p.Docs, 0)
	require.Equal(t, int64(1), p.TotalPages)
	require.False(t, p.HasNextPage)
	require.False(t, p.HasPrevPage)
	require.Nil(t, p.NextPage)
	require.Nil(t, p.PrevPage)
}

func TestNew_LastPage(t *testing.T) {
	p := New([]int{1}, 21, Options{Page: 3, Limit: 10})
	require.Equal(t, int64(3), p.TotalPages)
	require.False(t, p.HasNextPage)
	require.True(t, p.HasPrevPage)
}
