package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pokedex-cli/pokedex/pkg/catalog"
)

const barWidth = 20

var typeColors = map[string]string{
	"NORMAL":   "#A8A878",
	"FIRE":     "#F08030",
	"WATER":    "#6890F0",
	"ELECTRIC": "#F8D030",
	"GRASS":    "#78C850",
	"ICE":      "#98D8D8",
	"FIGHTING": "#C03028",
	"POISON":   "#A040A0",
	"GROUND":   "#E0C068",
	"FLYING":   "#A890F0",
	"PSYCHIC":  "#F85888",
	"BUG":      "#A8B820",
	"ROCK":     "#B8A038",
	"GHOST":    "#705898",
	"DRAGON":   "#7038F8",
	"DARK":     "#705848",
	"STEEL":    "#B8B8D0",
	"FAIRY":    "#EE99AC",
}

// Terminal draws views as text on w. It keeps the last drawn card list so a
// single card's favorite marker can change without redrawing the grid.
type Terminal struct {
	w        io.Writer
	loc      *Localization
	renderer *lipgloss.Renderer
	cards    []Card
	loading  bool

	title    lipgloss.Style
	subtle   lipgloss.Style
	box      lipgloss.Style
	heart    lipgloss.Style
	alert    lipgloss.Style
	button   lipgloss.Style
	barFull  lipgloss.Style
	barEmpty lipgloss.Style
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer, loc *Localization) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w:        w,
		loc:      loc,
		renderer: r,
		title:    r.NewStyle().Bold(true),
		subtle:   r.NewStyle().Faint(true),
		box:      r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		heart:    r.NewStyle().Foreground(lipgloss.Color("#E3350D")),
		alert:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#E3350D")),
		button:   r.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.NormalBorder()),
		barFull:  r.NewStyle().Foreground(lipgloss.Color("#78C850")),
		barEmpty: r.NewStyle().Faint(true),
	}
}

// ShowLoading shows the loading indicator.
func (t *Terminal) ShowLoading() {
	t.loading = true
	fmt.Fprintln(t.w, t.subtle.Render(t.loc.Text(KeyLoading)))
}

// HideLoading clears the loading indicator.
func (t *Terminal) HideLoading() {
	t.loading = false
}

// ShowGrid draws cards as a table.
func (t *Terminal) ShowGrid(cards []Card) {
	t.cards = append(t.cards[:0], cards...)

	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{t.marker(c.Favorite), "#" + c.Number, c.Name, c.Image})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("♥", "#", t.loc.Text(KeyColumnName), t.loc.Text(KeyColumnImage)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.title.Padding(0, 1)
			}
			return t.renderer.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(t.w, tbl.Render())
}

// ShowEmpty draws the empty favorites indicator.
func (t *Terminal) ShowEmpty() {
	t.cards = t.cards[:0]
	fmt.Fprintln(t.w, t.box.Render(t.loc.Text(KeyNoFavorites)))
}

// UpdateCard changes the favorite marker of one displayed card.
func (t *Terminal) UpdateCard(id int, favorite bool) {
	for i := range t.cards {
		if t.cards[i].ID != id {
			continue
		}
		t.cards[i].Favorite = favorite
		key := KeyFavoriteRemoved
		if favorite {
			key = KeyFavoriteAdded
		}
		fmt.Fprintln(t.w, t.loc.Text(key, t.cards[i].Number, t.cards[i].Name))
		return
	}
}

// ShowDetail draws the detail view of one record.
func (t *Terminal) ShowDetail(d Detail) {
	t.cards = t.cards[:0]

	var b strings.Builder
	b.WriteString(t.title.Render(fmt.Sprintf("%s #%s", d.Name, d.Number)))
	b.WriteString("\n")

	badges := make([]string, 0, len(d.Types))
	for _, typ := range d.Types {
		badges = append(badges, t.typeBadge(typ))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n")
	b.WriteString(t.subtle.Render(d.Image))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s   %s %s\n",
		t.loc.Text(KeyWeight), d.Weight, t.loc.Text(KeyHeight), d.Height)

	label := t.loc.Text(KeyAddFavorite)
	if d.Favorite {
		label = t.loc.Text(KeyRemoveFavorite)
	}
	b.WriteString(t.button.Render(t.marker(d.Favorite) + " " + label))
	b.WriteString("\n\n")

	b.WriteString(t.title.Render(t.loc.Text(KeyBaseStats)))
	for _, s := range d.Stats {
		fmt.Fprintf(&b, "\n%-8s %s %3d", s.Label, t.bar(s.Percent), s.Value)
	}

	fmt.Fprintln(t.w, t.box.Render(b.String()))
}

// Notify shows a blocking notification.
func (t *Terminal) Notify(n Notice, err error) {
	fmt.Fprintln(t.w, t.alert.Render("! "+t.NoticeText(n, err)))
}

// NoticeText returns the user-facing text of a notice.
func (t *Terminal) NoticeText(n Notice, err error) string {
	switch n {
	case NoticeEmptyQuery:
		return t.loc.Text(KeyEmptyQuery)
	case NoticeSearchFailed:
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			return t.loc.Text(KeyNotFound, nf.Query)
		}
		if err != nil {
			return err.Error()
		}
		return t.loc.Text(KeyNotFound, "")
	case NoticeLoadFailed:
		return t.loc.Text(KeyLoadFailed)
	case NoticeFavoritesFailed:
		return t.loc.Text(KeyFavoritesFailed)
	case NoticeSaveFailed:
		return t.loc.Text(KeySaveFailed)
	case NoticeNotInView:
		return t.loc.Text(KeyNothingToOpen)
	default:
		return "notice " + strconv.Itoa(int(n))
	}
}

// Println writes a plain line, used for help and command feedback.
func (t *Terminal) Println(s string) {
	fmt.Fprintln(t.w, s)
}

func (t *Terminal) marker(favorite bool) string {
	if favorite {
		return t.heart.Render("♥")
	}
	return "♡"
}

func (t *Terminal) typeBadge(typ string) string {
	style := t.renderer.NewStyle().Bold(true).Padding(0, 1)
	if c, ok := typeColors[typ]; ok {
		style = style.Background(lipgloss.Color(c)).Foreground(lipgloss.Color("#FFFFFF"))
	}
	return style.Render(typ)
}

func (t *Terminal) bar(percent float64) string {
	filled := int(math.Round(percent / 100 * barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return t.barFull.Render(strings.Repeat("█", filled)) +
		t.barEmpty.Render(strings.Repeat("░", barWidth-filled))
}
