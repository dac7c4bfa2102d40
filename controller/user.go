package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"assistantia/service"
)

// UserController handles the admin-only user management routes.
type UserController struct {
	users  *service.UserService
	logger *logrus.Logger
}

func NewUserController(users *service.UserService, logger *logrus.Logger) *UserController {
	return &UserController{users: users, logger: logger}
}

// List returns every account without password hashes.
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.users.List(c.Request.Context())
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to list users: %s", c.GetString("requestId"), err)
		fail(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"created_at": u.CreatedAt,
			"role":       u.Role,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Delete removes a target account and all its data. "me" targets the caller;
// any other id is admin-only.
func (ctrl *UserController) Delete(c *gin.Context) {
	targetID := c.Param("id")
	actor := currentUser(c)

	if targetID == "me" {
		result, err := ctrl.users.DeleteAccount(c.Request.Context(), actor.ID)
		if err != nil {
			ctrl.logger.Warnf("[%s] Failed to delete account %s: %s", c.GetString("requestId"), actor.ID, err)
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	if !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
		return
	}

	result, err := ctrl.users.AdminDeleteUser(c.Request.Context(), targetID)
	if err != nil {
		ctrl.logger.Warnf("[%s] Failed to delete user %s: %s", c.GetString("requestId"), targetID, err)
		fail(c, err)
		return
	}

	ctrl.logger.Infof("[%s] Admin %s deleted user %s", c.GetString("requestId"), currentUser(c).ID, targetID)
	c.JSON(http.StatusOK, result)
}
