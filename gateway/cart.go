package gateway

import (
	"net/http"

	"github.com/example/agrigrow/pkg/service"
	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (g *Gateway) getCart(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("userId"))
	if !ok {
		return
	}

	cart, err := g.services.Cart.Fetch(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (g *Gateway) addToCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}
	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}

	cart, err := g.services.Cart.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "cart": cart})
}

// toggleCart removes the whole line for the product.
func (g *Gateway) toggleCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}
	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}

	cart, removed, err := g.services.Cart.RemoveItem(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	message := "Removed from cart"
	if !removed {
		message = "Item not found in cart"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "cart": cart})
}

func (g *Gateway) setCartQuantity(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}
	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}

	cart, err := g.services.Cart.SetQuantity(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart})
}

func (g *Gateway) toggleWishlist(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}
	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}

	action, wishlist, err := g.services.Wishlist.Toggle(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	if action == service.WishlistAdded {
		c.JSON(http.StatusCreated, gin.H{"message": "Added to wishlist", "wishlist": wishlist})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist", "wishlist": wishlist})
}

func (g *Gateway) getWishlist(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("userId"))
	if !ok {
		return
	}

	wishlist, err := g.services.Wishlist.Fetch(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}
