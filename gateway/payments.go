package gateway

import (
	"net/http"

	"github.com/example/agrigrow/pkg/service"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) submitPayment(c *gin.Context) {
	var in service.SubmitPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequestBody(c, err)
		return
	}

	entry, err := g.services.Payments.Submit(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Payment saved successfully!", "payment": entry})
}

func (g *Gateway) listPayments(c *gin.Context) {
	entries, err := g.services.Payments.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (g *Gateway) setPaymentStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}

	entry, err := g.services.Payments.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": entry})
}
