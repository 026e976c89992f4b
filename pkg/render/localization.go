package render

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAddFavorite     = "add_favorite"
	KeyRemoveFavorite  = "remove_favorite"
	KeyWeight          = "weight"
	KeyHeight          = "height"
	KeyBaseStats       = "base_stats"
	KeyNoFavorites     = "no_favorites"
	KeyLoading         = "loading"
	KeyEmptyQuery      = "empty_query"
	KeyNotFound        = "not_found"
	KeyLoadFailed      = "load_failed"
	KeyFavoritesFailed = "favorites_failed"
	KeySaveFailed      = "save_failed"
	KeyFavoriteAdded   = "favorite_added"
	KeyFavoriteRemoved = "favorite_removed"
	KeyFavoriteDropped = "favorite_dropped"
	KeyFavoritesClear  = "favorites_clear"
	KeyColumnName      = "column_name"
	KeyColumnImage     = "column_image"
	KeyHelp            = "help"
	KeyUnknownCommand  = "unknown_command"
	KeyNothingToOpen   = "nothing_to_open"
	KeyInvalidID       = "invalid_id"
)

// NewLocalization creates a localization manager for lang, falling back to Spanish.
func NewLocalization(lang string) *Localization {
	l := &Localization{
		currentLanguage: "es",
		texts:           make(map[string]map[string]string),
	}
	l.initializeTexts()
	l.SetLanguage(lang)
	return l
}

// SetLanguage sets the current language when it is known.
func (l *Localization) SetLanguage(lang string) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// Text returns the text for key, formatted with args when given.
// Unknown keys are returned as-is.
func (l *Localization) Text(key string, args ...any) string {
	text, ok := l.texts[l.currentLanguage][key]
	if !ok {
		text, ok = l.texts["es"][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

func (l *Localization) initializeTexts() {
	l.texts["es"] = map[string]string{
		KeyAddFavorite:     "AGREGAR A FAVORITOS",
		KeyRemoveFavorite:  "QUITAR DE FAVORITOS",
		KeyWeight:          "Peso:",
		KeyHeight:          "Altura:",
		KeyBaseStats:       "Estadísticas Base",
		KeyNoFavorites:     "No tienes Pokémon favoritos aún",
		KeyLoading:         "Cargando...",
		KeyEmptyQuery:      "Por favor, ingresa el nombre o ID de un Pokémon",
		KeyNotFound:        "Pokémon no encontrado: %s",
		KeyLoadFailed:      "Error al cargar los Pokémon iniciales",
		KeyFavoritesFailed: "Error al cargar los Pokémon favoritos",
		KeySaveFailed:      "No se pudieron guardar los favoritos",
		KeyFavoriteAdded:   "♥ #%s %s agregado a favoritos",
		KeyFavoriteRemoved: "♡ #%s %s quitado de favoritos",
		KeyFavoriteDropped: "♡ #%s quitado de favoritos",
		KeyFavoritesClear:  "Favoritos borrados: %d",
		KeyColumnName:      "NOMBRE",
		KeyColumnImage:     "IMAGEN",
		KeyHelp: "Comandos: search <nombre|id>, load, favorites, open <id>, fav <id>, help, quit\n" +
			"Texto sin comando = búsqueda.",
		KeyUnknownCommand: "Comando desconocido: %s (escribe help)",
		KeyNothingToOpen:  "Ese Pokémon no está en la lista actual",
		KeyInvalidID:      "ID inválido: %s",
	}

	l.texts["en"] = map[string]string{
		KeyAddFavorite:     "ADD TO FAVORITES",
		KeyRemoveFavorite:  "REMOVE FROM FAVORITES",
		KeyWeight:          "Weight:",
		KeyHeight:          "Height:",
		KeyBaseStats:       "Base Stats",
		KeyNoFavorites:     "You have no favorite Pokémon yet",
		KeyLoading:         "Loading...",
		KeyEmptyQuery:      "Please enter a Pokémon name or ID",
		KeyNotFound:        "Pokémon not found: %s",
		KeyLoadFailed:      "Error loading the initial Pokémon",
		KeyFavoritesFailed: "Error loading favorite Pokémon",
		KeySaveFailed:      "Could not save favorites",
		KeyFavoriteAdded:   "♥ #%s %s added to favorites",
		KeyFavoriteRemoved: "♡ #%s %s removed from favorites",
		KeyFavoriteDropped: "♡ #%s removed from favorites",
		KeyFavoritesClear:  "Favorites cleared: %d",
		KeyColumnName:      "NAME",
		KeyColumnImage:     "IMAGE",
		KeyHelp: "Commands: search <name|id>, load, favorites, open <id>, fav <id>, help, quit\n" +
			"Bare text is a search.",
		KeyUnknownCommand: "Unknown command: %s (type help)",
		KeyNothingToOpen:  "That Pokémon is not in the current list",
		KeyInvalidID:      "Invalid id: %s",
	}
}
