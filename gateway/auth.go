package gateway

import (
	"net/http"

	"github.com/example/agrigrow/pkg/service"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (g *Gateway) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}

	profile, err := g.services.Auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Signup successful!", "user": profile})
}

func (g *Gateway) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, err)
		return
	}

	token, profile, err := g.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful!",
		"token":      token,
		"token_type": "Bearer",
		"user":       profile,
	})
}

// profile is readable by its owner and by admins.
func (g *Gateway) profile(c *gin.Context) {
	profile, err := g.services.Auth.Profile(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}

	p := principal(c)
	if profile.ID != p.UserID && !p.IsAdmin() {
		writeError(c, service.NewForbidden("Not allowed to view this profile."))
		return
	}
	c.JSON(http.StatusOK, profile)
}
