package http

import (
	"net/http"

	"storefront-service/internal/cart"
	"storefront-service/internal/domain"

	"github.com/gin-gonic/gin"
)

func cartPayload(items []domain.CartItem) gin.H {
	return gin.H{
		"items":      items,
		"totalItems": cart.TotalItems(items),
		"totalPrice": cart.TotalPrice(items),
	}
}

func (h *Handler) GetCart(c *gin.Context) {
	items, err := h.carts.Items(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cartPayload(items))
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	// name, price and image are captured here and stay frozen in the
	// cart even if the product changes afterwards
	product, err := h.catalog.GetProductById(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.carts.AddItem(c.Request.Context(), c.Param("cartId"), product)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cartPayload(items))
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, found := parseID(c, "productId")
	if !found {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	items, err := h.carts.UpdateQuantity(c.Request.Context(), c.Param("cartId"), productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cartPayload(items))
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, found := parseID(c, "productId")
	if !found {
		return
	}
	items, err := h.carts.RemoveItem(c.Request.Context(), c.Param("cartId"), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cartPayload(items))
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), c.Param("cartId")); err != nil {
		respondError(c, err)
		return
	}
	ok(c, cartPayload(nil))
}
