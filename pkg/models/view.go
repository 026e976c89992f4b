package models

// View identifies which screen the controller is showing.
type View string

const (
	// ViewGrid shows a list of cards.
	ViewGrid View = "grid"

	// ViewDetail shows a single record.
	ViewDetail View = "detail"

	// ViewFavorites shows the favorites list, possibly empty.
	ViewFavorites View = "favorites"
)

// String returns the string representation of View
func (v View) String() string {
	return string(v)
}

// IsList returns true if the view displays a card list
func (v View) IsList() bool {
	return v == ViewGrid || v == ViewFavorites
}

// ViewState is a snapshot of the controller's state.
type ViewState struct {
	View View
	// Current is set only in ViewDetail.
	Current *Pokemon
	// List holds the records backing the grid or favorites view.
	List []Pokemon
	// Loaded is false until the first successful transition.
	Loaded bool
}
