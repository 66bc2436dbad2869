// Package views holds the HTML pages as templ components. Edit the .templ
// files and run `templ generate` to refresh the *_templ.go files.
package views

import (
	"aurevo-menu/menu"
	"aurevo-menu/models"

	"github.com/a-h/templ"
)

// HomePage renders the menu for a signed-in user: featured dishes first, then
// one section per category.
func HomePage(username string, doc models.MenuDocument) templ.Component {
	return homePage(username, menu.Featured(doc), menu.Sections(doc))
}
