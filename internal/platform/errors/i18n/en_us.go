package i18n

import i18ncatalog "github.com/louisbranch/staredown/internal/platform/i18n/catalog"

// Codes lists every error code with a user-facing template.
var Codes = []Code{
	"INVALID_SELECTION",
	"ILLEGAL_MOVE",
	"NOT_HUMAN_TURN",
	"GAME_OVER",
	"INVALID_CARD",
	"INVALID_SETUP",
}

// BaseCatalog returns the catalog for the base locale.
func BaseCatalog() *Catalog {
	return GetCatalog(i18ncatalog.BaseLocale)
}
