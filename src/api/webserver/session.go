package webserver

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/slonskitech/slownik/src/api/config"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookie = "slownik_admin"

// Sessions issues and verifies the admin cookie. The token is a
// one-way hash over the configured credentials and secret, so nothing
// is held server-side between requests.
type Sessions struct {
	email    string
	password string
	token    []byte
}

func NewSessions(cfg config.Config) Sessions {
	return Sessions{
		email:    cfg.AdminEmail,
		password: cfg.AdminPassword,
		token:    sessionToken(cfg.AdminEmail, cfg.AdminPassword, cfg.SessionSecret),
	}
}

func sessionToken(email, password, secret string) []byte {
	sum := sha256.Sum256([]byte(email + ":" + password + ":" + secret))
	return []byte(hex.EncodeToString(sum[:]))
}

func (s Sessions) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.email)) == 1
	var passwordOK bool
	if strings.HasPrefix(s.password, "$2") {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(s.password), []byte(req.Password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.password)) == 1
	}
	if !emailOK || !passwordOK {
		log.Printf("failed admin login for %q from %s", req.Email, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.SetCookie(sessionCookie, string(s.token), 7*24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s Sessions) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s Sessions) Probe(c *gin.Context) {
	if s.valid(c) {
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "email": s.email})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

func (s Sessions) valid(c *gin.Context) bool {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie), s.token) == 1
}

func (s Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.valid(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
