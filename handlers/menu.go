package handlers

import (
	"net/http"

	"aurevo-menu/menu"
	"aurevo-menu/session"
	"aurevo-menu/views"

	"github.com/gin-gonic/gin"
)

// Home renders the menu page.
func (h *Handlers) Home(c *gin.Context, id session.Identity) {
	render(c, http.StatusOK, views.HomePage(id.Username, h.menu.Load()))
}

// GetMenu returns the whole menu document.
func (h *Handlers) GetMenu(c *gin.Context, _ session.Identity) {
	c.JSON(http.StatusOK, h.menu.Load())
}

// SearchMenu returns the items matching ?q=. A blank query returns [].
func (h *Handlers) SearchMenu(c *gin.Context, _ session.Identity) {
	c.JSON(http.StatusOK, menu.Search(c.Query("q"), h.menu.Load()))
}

// Payment renders the payment placeholder.
func (h *Handlers) Payment(c *gin.Context, id session.Identity) {
	render(c, http.StatusOK, views.PaymentPage(id.Username))
}
