package models

// NamedResource is a {name, url} reference as the catalog API returns it.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Sprites holds the image references of a record.
type Sprites struct {
	FrontDefault string `json:"front_default"`
}

// TypeSlot is one entry of a record's ordered type list.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatEntry is one (stat name, base value) pair. BaseStat is in [0, 255].
type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// Pokemon is a single catalog entity as fetched from the read endpoint.
// Records are treated as immutable once fetched.
type Pokemon struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Sprites Sprites     `json:"sprites"`
	Weight  int         `json:"weight"`
	Height  int         `json:"height"`
	Types   []TypeSlot  `json:"types"`
	Stats   []StatEntry `json:"stats"`
}

// Image returns the default sprite URL.
func (p Pokemon) Image() string {
	return p.Sprites.FrontDefault
}

// TypeNames returns the type tags in API order.
func (p Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// ListPage is the response of the list endpoint.
type ListPage struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}
