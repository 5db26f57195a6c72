package gateway

import (
	"net/http"

	"github.com/example/agrigrow/pkg/service"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) listProducts(c *gin.Context) {
	products, err := g.services.Catalog.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (g *Gateway) getProduct(c *gin.Context) {
	product, err := g.services.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) addProduct(c *gin.Context) {
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequestBody(c, err)
		return
	}

	product, err := g.services.Catalog.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully!", "product": product})
}

func (g *Gateway) updateProduct(c *gin.Context) {
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequestBody(c, err)
		return
	}

	product, err := g.services.Catalog.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully!", "product": product})
}

func (g *Gateway) deleteProduct(c *gin.Context) {
	if err := g.services.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!"})
}
