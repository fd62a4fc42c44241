package models_test

import (
	"testing"

	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "", models.JoinIDs(nil))
	assert.Equal(t, "3", models.JoinIDs([]int{3}))
	assert.Equal(t, "3,1,2", models.JoinIDs([]int{3, 1, 2}))
}

func TestParseIDs(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		ids, err := models.ParseIDs("  ")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("keeps order", func(t *testing.T) {
		ids, err := models.ParseIDs("3, 1,2")
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2}, ids)
	})

	t.Run("invalid id", func(t *testing.T) {
		ids, err := models.ParseIDs("1,x")
		require.Error(t, err)
		assert.Nil(t, ids)
		assert.Contains(t, err.Error(), `invalid item id "x"`)
	})
}

func TestCoordinatesValid(t *testing.T) {
	assert.False(t, models.Coordinates{}.Valid())
	assert.True(t, models.Coordinates{Latitude: -23.55, Longitude: -46.63}.Valid())
	assert.False(t, models.Coordinates{Latitude: 91, Longitude: 10}.Valid())
	assert.False(t, models.Coordinates{Latitude: 10, Longitude: -181}.Valid())
}

func TestPositionHint(t *testing.T) {
	t.Run("place needs city and state", func(t *testing.T) {
		assert.Equal(t, "Campinas, SP", models.PositionHint{City: " Campinas ", UF: "SP"}.Place())
		assert.Empty(t, models.PositionHint{City: "Campinas"}.Place())
		assert.Empty(t, models.PositionHint{UF: "SP"}.Place())
	})

	t.Run("device coordinates", func(t *testing.T) {
		_, ok := models.PositionHint{}.Device()
		assert.False(t, ok)

		_, ok = models.PositionHint{Coords: &models.Coordinates{}}.Device()
		assert.False(t, ok)

		coords := models.Coordinates{Latitude: -23.55, Longitude: -46.63}
		got, ok := models.PositionHint{Coords: &coords}.Device()
		require.True(t, ok)
		assert.Equal(t, coords, got)
	})
}
