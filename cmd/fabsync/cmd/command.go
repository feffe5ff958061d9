// Package cmd implements the fabsync CLI subcommands. Commands receive
// their dependencies through the App interface so the app package can wire
// them without an import cycle.
package cmd

import (
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	fabsync "github.com/Ty9112/FabricationSample-sub002"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
)

// App is the slice of the application that commands depend on.
type App interface {
	Client() (fabsync.Client, error)
	Logger() *zerolog.Logger
}

var titleCaser = cases.Title(language.English)

// categoryTitle renders a category id for display: "price-lists" becomes
// "Price Lists".
func categoryTitle(id fabdb.CategoryID) string {
	return titleCaser.String(strings.ReplaceAll(string(id), "-", " "))
}
