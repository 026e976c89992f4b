// Package render maps catalog records to displayable views and draws them
// on a terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pokedex-cli/pokedex/pkg/models"
)

// MaxBaseStat is the largest possible base value of a stat.
const MaxBaseStat = 255

var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "ATQ",
	"defense":         "DEF",
	"special-attack":  "ATQ ESP",
	"special-defense": "DEF ESP",
	"speed":           "VEL",
}

// Card is one entry of a card grid.
type Card struct {
	ID       int
	Name     string
	Number   string
	Image    string
	Favorite bool
}

// Stat is one row of the detail stat list.
type Stat struct {
	Name    string
	Label   string
	Value   int
	Percent float64
}

// Detail is the detail view of a single record.
type Detail struct {
	ID       int
	Name     string
	Number   string
	Types    []string
	Image    string
	Weight   string
	Height   string
	Favorite bool
	Stats    []Stat
}

// Notice identifies a message shown to the user as a blocking notification.
type Notice int

const (
	// NoticeEmptyQuery: a search was submitted without input.
	NoticeEmptyQuery Notice = iota
	// NoticeSearchFailed: a single lookup failed; the error text is shown.
	NoticeSearchFailed
	// NoticeLoadFailed: the initial batch failed; a generic text is shown.
	NoticeLoadFailed
	// NoticeFavoritesFailed: resolving favorites failed; a generic text is shown.
	NoticeFavoritesFailed
	// NoticeSaveFailed: the favorites set could not be persisted.
	NoticeSaveFailed
	// NoticeNotInView: a card was opened that is not in the displayed list.
	NoticeNotInView
)

// PadID formats id as a zero-padded three digit number.
func PadID(id int) string {
	return fmt.Sprintf("%03d", id)
}

// TranslateStat returns the short label for a stat name. Unknown names are
// upper-cased.
func TranslateStat(name string) string {
	if label, ok := statLabels[name]; ok {
		return label
	}
	return strings.ToUpper(name)
}

// FormatMeasure renders a value stored in tenths, e.g. 69 → "6.9 kg".
func FormatMeasure(tenths int, unit string) string {
	return strconv.FormatFloat(float64(tenths)/10, 'f', -1, 64) + " " + unit
}

// Cards maps a list of records to cards, marking favorites with isFavorite.
func Cards(list []models.Pokemon, isFavorite func(id int) bool) []Card {
	cards := make([]Card, 0, len(list))
	for _, p := range list {
		cards = append(cards, NewCard(p, isFavorite(p.ID)))
	}
	return cards
}

// NewCard maps one record to a card.
func NewCard(p models.Pokemon, favorite bool) Card {
	return Card{
		ID:       p.ID,
		Name:     p.Name,
		Number:   PadID(p.ID),
		Image:    p.Image(),
		Favorite: favorite,
	}
}

// NewDetail maps a record to its detail view.
func NewDetail(p models.Pokemon, favorite bool) Detail {
	d := Detail{
		ID:       p.ID,
		Name:     p.Name,
		Number:   PadID(p.ID),
		Image:    p.Image(),
		Weight:   FormatMeasure(p.Weight, "kg"),
		Height:   FormatMeasure(p.Height, "m"),
		Favorite: favorite,
	}
	for _, t := range p.TypeNames() {
		d.Types = append(d.Types, strings.ToUpper(t))
	}
	for _, s := range p.Stats {
		d.Stats = append(d.Stats, Stat{
			Name:    s.Stat.Name,
			Label:   TranslateStat(s.Stat.Name),
			Value:   s.BaseStat,
			Percent: float64(s.BaseStat) / MaxBaseStat * 100,
		})
	}
	return d
}
