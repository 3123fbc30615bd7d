package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The engine consumes identity as an opaque stable user id supplied by
// the upstream identity provider. Absence of a user means "cannot
// persist, view-only": games still run, records are not written.

// currentUserID reads the user id placed in the cookie session.
func currentUserID(c *gin.Context) string {
	session := sessions.Default(c)
	userID, _ := session.Get("userID").(string)
	return userID
}

// IdentityHandler binds the upstream identity to the cookie session.
type IdentityHandler struct {
	log *zap.Logger
}

func NewIdentityHandler(log *zap.Logger) *IdentityHandler {
	return &IdentityHandler{log: log}
}

type identifyRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// Identify stores the provider-issued user id in the session cookie.
func (h *IdentityHandler) Identify(c *gin.Context) {
	var req identifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	session := sessions.Default(c)
	session.Set("userID", req.UserID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Forget clears the bound identity.
func (h *IdentityHandler) Forget(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Error("Failed to clear session", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}
