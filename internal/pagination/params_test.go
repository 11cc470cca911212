package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePageSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "default", size: DefaultPageSize},
		{name: "minimum", size: MinPageSize},
		{name: "maximum", size: MaxPageSize},
		{name: "zero", size: 0, wantErr: true},
		{name: "negative", size: -5, wantErr: true},
		{name: "above API limit", size: MaxPageSize + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageSize(tt.size)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPageSize)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidatePage(t *testing.T) {
	require.NoError(t, ValidatePage(1))
	require.ErrorIs(t, ValidatePage(0), ErrInvalidPage)
	require.ErrorIs(t, ValidatePage(-1), ErrInvalidPage)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 0, TotalPages(10, 0))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 10417, TotalPages(125000, 12))
}

func TestNewMeta(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		meta := NewMeta(2, 12, 30, 12)
		assert.Equal(t, Meta{
			CurrentPage: 2,
			PageSize:    12,
			TotalPages:  3,
			TotalItems:  30,
			FirstRow:    13,
			LastRow:     24,
			HasPrevious: true,
			HasNext:     true,
		}, meta)
	})

	t.Run("last short page", func(t *testing.T) {
		meta := NewMeta(3, 12, 30, 6)
		assert.Equal(t, 25, meta.FirstRow)
		assert.Equal(t, 30, meta.LastRow)
		assert.False(t, meta.HasNext)
	})

	t.Run("empty page", func(t *testing.T) {
		meta := NewMeta(0, 12, 0, 0)
		assert.Equal(t, 1, meta.CurrentPage)
		assert.Zero(t, meta.FirstRow)
		assert.Zero(t, meta.LastRow)
		assert.False(t, meta.HasPrevious)
		assert.False(t, meta.HasNext)
	})
}
