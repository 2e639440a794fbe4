package controllers

import (
	"net/http"
	"time"

	"familydiet/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	secret       []byte
	passcodeHash string
	ttl          time.Duration
}

func NewAuthController(secret []byte, passcodeHash string, ttl time.Duration) *AuthController {
	return &AuthController{secret: secret, passcodeHash: passcodeHash, ttl: ttl}
}

type SessionInput struct {
	Passcode string `json:"passcode" binding:"required"`
	Device   string `json:"device"`
}

// Session exchanges the household passcode for a session token.
func (ac *AuthController) Session(c *gin.Context) {
	var input SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if !utils.CheckPasswordHash(input.Passcode, ac.passcodeHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid passcode"})
		return
	}

	subject := "household"
	if input.Device != "" {
		subject = "household:" + input.Device
	}
	token, err := utils.GenerateJWT(ac.secret, subject, ac.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": time.Now().Add(ac.ttl).UTC(),
	})
}
