package gateway

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/example/agrigrow/pkg/service"
	"github.com/gin-gonic/gin"
)

const defaultAuditLimit = 50

type statusRequest struct {
	Status string `json:"status"`
}

func (g *Gateway) placeOrder(c *gin.Context) {
	var in service.PlaceOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequestBody(c, err)
		return
	}

	order, err := g.services.Orders.Place(c.Request.Context(), principal(c).UserID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed. Payment pending verification.",
		"orderId": order.ID.Hex(),
	})
}

func (g *Gateway) orderHistory(c *gin.Context) {
	orders, err := g.services.Orders.History(c.Request.Context(), principal(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (g *Gateway) allOrders(c *gin.Context) {
	orders, err := g.services.Orders.All(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (g *Gateway) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}

	order, err := g.services.Orders.Transition(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order status successfully updated to %s.", order.Payment.Status),
		"order":   order,
	})
}

func (g *Gateway) listAddresses(c *gin.Context) {
	addresses, err := g.services.Addresses.List(c.Request.Context(), principal(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (g *Gateway) addAddress(c *gin.Context) {
	var in service.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequestBody(c, err)
		return
	}

	address, err := g.services.Addresses.Add(c.Request.Context(), principal(c).UserID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address successfully added.", "address": address})
}

func (g *Gateway) updateAddress(c *gin.Context) {
	var in service.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequestBody(c, err)
		return
	}

	address, err := g.services.Addresses.Update(c.Request.Context(), principal(c).UserID, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address successfully updated.", "address": address})
}

func (g *Gateway) auditTrail(c *gin.Context) {
	limit := int64(defaultAuditLimit)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			writeError(c, service.NewInvalidInput("Invalid limit."))
			return
		}
		limit = n
	}

	logs, err := g.services.Audit.GetAuditLogs(c.Request.Context(), c.Param("entityId"), limit)
	if err != nil {
		writeError(c, service.NewStoreFailure("Error fetching audit trail", err))
		return
	}
	c.JSON(http.StatusOK, logs)
}
