// Package handlers shows how an application serves frame-aware pages: a
// full page render for normal navigation, and a single-fragment render when
// the request carries a frame id.
package handlers

import (
	"fmt"

	"github.com/abiiranathan/rex"

	"github.com/abiiranathan/rex-frames/middleware"
	"github.com/abiiranathan/rex-frames/mutation"
	"github.com/abiiranathan/rex-frames/routing"
)

// CartItem is one line in the shopping cart.
type CartItem struct {
	ID    uint
	Name  string
	Price float64
}

// Handler holds service dependencies.
type Handler struct {
	Resolver *routing.Resolver
	Hub      *mutation.Hub
}

// loadCart returns the current cart items.
func loadCart() []CartItem {
	return []CartItem{
		{ID: 1, Name: "Milk", Price: 2.5},
		{ID: 2, Name: "Bread", Price: 1.8},
	}
}

// RenderCart answers both full-page and partial requests. The cart template
// declares:
//
//	<frame id="cart-items">...</frame>
//	<frame id="item_@.ID" prefix="item_">...</frame>
//
// so "cart-items" resolves exactly and "item_42" resolves via the stable
// prefix. When the request targets a frame, only the owning template is
// rendered; an unroutable frame id falls back to the full page.
func (h *Handler) RenderCart() rex.HandlerFunc {
	return func(c *rex.Context) error {
		items := loadCart()

		if frameID := middleware.RexFrameID(c); frameID != "" {
			if tmpl, ok := h.Resolver.Resolve(frameID); ok {
				return c.Render(tmpl, rex.Map{"items": items, "frameID": frameID})
			}
		}

		return c.Render("views/cart.html", rex.Map{"items": items})
	}
}

// RemoveItem deletes a cart line, broadcasts the mutation so every connected
// client drops the row without a reload, and re-renders the cart fragment
// for the requesting client.
func (h *Handler) RemoveItem() rex.HandlerFunc {
	return func(c *rex.Context) error {
		id := c.ParamUint("id")

		h.Hub.Broadcast(mutation.Record{
			Op:     mutation.OpRemove,
			Target: fmt.Sprintf("item_%d", id),
		})
		return c.Render("views/partials/cart_items.html", rex.Map{"items": loadCart()})
	}
}
