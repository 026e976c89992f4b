package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pokedex-cli/pokedex/pkg/catalog"
	"github.com/pokedex-cli/pokedex/pkg/catalog/catalogtest"
)

func newTestTerminal(lang string) (*Terminal, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewTerminal(&buf, NewLocalization(lang)), &buf
}

func TestTerminalShowDetail(t *testing.T) {
	term, buf := newTestTerminal("es")

	term.ShowDetail(NewDetail(catalogtest.Record(1, "bulbasaur"), false))

	out := buf.String()
	for _, want := range []string{
		"bulbasaur #001",
		"GRASS",
		"POISON",
		"https://img.example/1.png",
		"Peso: 6.9 kg",
		"Altura: 0.7 m",
		"AGREGAR A FAVORITOS",
		"Estadísticas Base",
		"ATQ ESP",
		"DEF ESP",
		"VEL",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "QUITAR DE FAVORITOS")
}

func TestTerminalShowDetailFavorite(t *testing.T) {
	term, buf := newTestTerminal("en")

	term.ShowDetail(NewDetail(catalogtest.Record(25, "pikachu"), true))

	out := buf.String()
	assert.Contains(t, out, "REMOVE FROM FAVORITES")
	assert.Contains(t, out, "Weight: 6.9 kg")
}

func TestTerminalGridAndUpdateCard(t *testing.T) {
	term, buf := newTestTerminal("es")
	cards := Cards(catalogtest.Generate(3), func(id int) bool { return id == 2 })

	term.ShowGrid(cards)
	out := buf.String()
	assert.Contains(t, out, "mon1")
	assert.Contains(t, out, "#003")
	assert.Contains(t, out, "NOMBRE")

	buf.Reset()
	term.UpdateCard(3, true)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "only one line for a card update")
	assert.Contains(t, buf.String(), "mon3")
	assert.True(t, term.cards[2].Favorite)

	buf.Reset()
	term.UpdateCard(99, true)
	assert.Empty(t, buf.String())
}

func TestTerminalShowEmpty(t *testing.T) {
	term, buf := newTestTerminal("es")
	term.ShowEmpty()
	assert.Contains(t, buf.String(), "No tienes Pokémon favoritos aún")
	assert.Empty(t, term.cards)
}

func TestTerminalLoading(t *testing.T) {
	term, buf := newTestTerminal("es")

	term.ShowLoading()
	assert.True(t, term.loading)
	assert.Contains(t, buf.String(), "Cargando...")

	term.HideLoading()
	assert.False(t, term.loading)
}

func TestNoticeText(t *testing.T) {
	term, _ := newTestTerminal("es")

	notFound := fmt.Errorf("search: %w", &catalog.NotFoundError{Query: "MissingNo", Status: 404})

	tests := []struct {
		notice Notice
		err    error
		want   string
	}{
		{NoticeEmptyQuery, nil, "Por favor, ingresa el nombre o ID de un Pokémon"},
		{NoticeSearchFailed, notFound, "Pokémon no encontrado: MissingNo"},
		{NoticeSearchFailed, errors.New("connection refused"), "connection refused"},
		{NoticeLoadFailed, errors.New("boom"), "Error al cargar los Pokémon iniciales"},
		{NoticeFavoritesFailed, errors.New("boom"), "Error al cargar los Pokémon favoritos"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, term.NoticeText(tt.notice, tt.err))
	}
}

func TestLocalizationFallback(t *testing.T) {
	loc := NewLocalization("fr")
	assert.Equal(t, "es", loc.currentLanguage)
	assert.Equal(t, "missing_key", loc.Text("missing_key"))
}
