package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokedex-cli/pokedex/pkg/catalog/catalogtest"
	"github.com/pokedex-cli/pokedex/pkg/models"
)

func TestTranslateStat(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"hp", "HP"},
		{"attack", "ATQ"},
		{"defense", "DEF"},
		{"special-attack", "ATQ ESP"},
		{"special-defense", "DEF ESP"},
		{"speed", "VEL"},
		{"unknown-stat", "UNKNOWN-STAT"},
		{"accuracy", "ACCURACY"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TranslateStat(tt.name), "TranslateStat(%q)", tt.name)
	}
}

func TestFormatMeasure(t *testing.T) {
	assert.Equal(t, "6.9 kg", FormatMeasure(69, "kg"))
	assert.Equal(t, "0.7 m", FormatMeasure(7, "m"))
	assert.Equal(t, "10 kg", FormatMeasure(100, "kg"))
	assert.Equal(t, "0 m", FormatMeasure(0, "m"))
}

func TestPadID(t *testing.T) {
	assert.Equal(t, "001", PadID(1))
	assert.Equal(t, "025", PadID(25))
	assert.Equal(t, "151", PadID(151))
	assert.Equal(t, "1010", PadID(1010))
}

func TestCards(t *testing.T) {
	list := []models.Pokemon{catalogtest.Record(1, "bulbasaur"), catalogtest.Record(4, "charmander")}
	favs := map[int]bool{4: true}

	cards := Cards(list, func(id int) bool { return favs[id] })
	require.Len(t, cards, 2)

	assert.Equal(t, Card{
		ID:     1,
		Name:   "bulbasaur",
		Number: "001",
		Image:  "https://img.example/1.png",
	}, cards[0])
	assert.True(t, cards[1].Favorite)
	assert.Equal(t, "004", cards[1].Number)
}

func TestNewDetail(t *testing.T) {
	p := catalogtest.Record(1, "bulbasaur")

	d := NewDetail(p, true)

	assert.Equal(t, "001", d.Number)
	assert.Equal(t, []string{"GRASS", "POISON"}, d.Types)
	assert.Equal(t, "6.9 kg", d.Weight)
	assert.Equal(t, "0.7 m", d.Height)
	assert.True(t, d.Favorite)
	require.Len(t, d.Stats, 6)
	assert.Equal(t, "HP", d.Stats[0].Label)
	assert.Equal(t, 45, d.Stats[0].Value)
	assert.InDelta(t, 45.0/255*100, d.Stats[0].Percent, 1e-9)
	assert.Equal(t, "ATQ ESP", d.Stats[3].Label)
}

func TestNewDetailMaxStatFillsBar(t *testing.T) {
	p := models.Pokemon{ID: 242, Name: "blissey", Stats: []models.StatEntry{
		{BaseStat: 255, Stat: models.NamedResource{Name: "hp"}},
	}}

	d := NewDetail(p, false)
	assert.Equal(t, 100.0, d.Stats[0].Percent)
}
