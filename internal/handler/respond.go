package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agriplan/internal/model"
	"agriplan/internal/service"
)

// respondErr maps service sentinels onto the error contract: every failure is
// a {"detail": ...} body, with the window-closed detail string matched by
// clients to flip their local window state.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrEntryWindowClosed),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

// currentUser returns the account the auth middleware resolved for this
// request. Routes behind the middleware always have one.
func currentUser(c *gin.Context) *model.User {
	u, _ := c.Get("user")
	user, _ := u.(*model.User)
	return user
}
