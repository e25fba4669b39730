package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_ComputesWindow(t *testing.T) {
	p := New(3, 10, 25)
	require.Equal(t, 3, p.Page)
	require.Equal(t, 10, p.Limit)
	require.Equal(t, 20, p.Offset)
	require.Equal(t, 3, p.Pages)
	require.False(t, p.HasNext)
	require.True(t, p.HasPrev)
}

func TestNew_Defaults(t *testing.T) {
	// Non-positive inputs fall back to page 1 and the default limit.
	p := New(0, 0, 0)
	require.Equal(t, 1, p.Page)
	require.Equal(t, DefaultLimit, p.Limit)
	require.Equal(t, 0, p.Offset)
	require.Equal(t, 0, p.Pages)
	require.False(t, p.HasNext)
	require.False(t, p.HasPrev)

	p = New(-5, -1, 7)
	require.Equal(t, 1, p.Page)
	require.Equal(t, DefaultLimit, p.Limit)
	require.Equal(t, 1, p.Pages)
}

func TestNew_CapsLimit(t *testing.T) {
	p := New(1, 1000, 500)
	require.Equal(t, MaxLimit, p.Limit)
	require.Equal(t, 5, p.Pages)
}

func TestNew_PartialLastPage(t *testing.T) {
	p := New(1, 10, 11)
	require.Equal(t, 2, p.Pages)
	require.True(t, p.HasNext)
}

func TestNew_PageBeyondEnd(t *testing.T) {
	// A page past the last yields an offset past the end, not an error.
	p := New(9, 10, 25)
	require.Equal(t, 80, p.Offset)
	require.Equal(t, 3, p.Pages)
	require.False(t, p.HasNext)
}
