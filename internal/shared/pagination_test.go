package shared

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	require.Equal(t, 2, p.Page)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 20, p.Offset())
	require.True(t, p.HasPrev())
	require.True(t, p.HasNext())
	require.Equal(t, 1, p.PrevPage())
	require.Equal(t, 3, p.NextPage())
}

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 5)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 20, p.PerPage)
	require.Equal(t, 1, p.TotalPages)
	require.Equal(t, 0, p.Offset())
	require.False(t, p.HasPrev())
	require.False(t, p.HasNext())
}

func TestPaginationClamping(t *testing.T) {
	p := NewPagination(1, 20, 10)
	require.Equal(t, 1, p.PrevPage())
	require.Equal(t, 1, p.NextPage())
}

func TestPaginationHrefKeepsFilters(t *testing.T) {
	p := NewPagination(2, 20, 45).WithQuery(url.Values{
		"filter": {"overdue"},
		"page":   {"2"},
	})
	require.Equal(t, "?filter=overdue&page=1", p.PrevHref())
	require.Equal(t, "?filter=overdue&page=3", p.NextHref())
}

func TestPaginationHrefWithoutQuery(t *testing.T) {
	p := NewPagination(2, 20, 45)
	require.Equal(t, "?page=1", p.PrevHref())
	require.Equal(t, "?page=3", p.NextHref())
}
