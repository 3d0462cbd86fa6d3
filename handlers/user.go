package handlers

import (
	"errors"
	"net/http"

	"carelink/middleware"
	"carelink/models"
	userService "carelink/services/user"
	"carelink/utils"

	"github.com/gin-gonic/gin"
)

// RegisterUserHandler creates a client account.
func RegisterUserHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			models.User
			Password string `json:"password" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid registration request", err.Error())
			return
		}

		resp, err := svc.RegisterUser(c.Request.Context(), req.User, req.Password)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, resp)
		case errors.Is(err, userService.ErrEmailInUse):
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to register user", err.Error())
		}
	}
}

// AuthenticateUserHandler signs a client in.
func AuthenticateUserHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid login request", err.Error())
			return
		}

		resp, err := svc.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, resp)
		case errors.Is(err, userService.ErrInvalidPassword):
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to authenticate user", err.Error())
		}
	}
}

// RevokeUserAuthTokenHandler signs the authenticated client out.
func RevokeUserAuthTokenHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserIDKey)
		if err := svc.RevokeUserAuthToken(c.Request.Context(), userID); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to revoke token", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "revoked"})
	}
}

// GetUserByIDHandler returns the authenticated client's profile.
func GetUserByIDHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserIDKey)
		if c.Param("id") != userID {
			utils.JSONError(c, http.StatusForbidden, "Not your profile", "")
			return
		}

		u, err := svc.GetUserByID(c.Request.Context(), userID)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, u)
		case errors.Is(err, userService.ErrUserNotFound):
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		}
	}
}

// UpdateUserHandler updates the authenticated client's profile.
func UpdateUserHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserIDKey)
		if c.Param("id") != userID {
			utils.JSONError(c, http.StatusForbidden, "Not your profile", "")
			return
		}

		current, err := svc.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
			return
		}

		var req struct {
			Name        string `json:"name"`
			PhoneNumber string `json:"phoneNumber"`
			FCMToken    string `json:"fcmToken"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid update request", err.Error())
			return
		}
		if req.Name != "" {
			current.Name = req.Name
		}
		if req.PhoneNumber != "" {
			current.PhoneNumber = req.PhoneNumber
		}
		if req.FCMToken != "" {
			current.FCMToken = req.FCMToken
		}

		if err := svc.UpdateUser(c.Request.Context(), current); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update user", err.Error())
			return
		}
		c.JSON(http.StatusOK, current)
	}
}

// DeleteUserHandler removes the authenticated client's account.
func DeleteUserHandler(svc userService.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserIDKey)
		if c.Param("id") != userID {
			utils.JSONError(c, http.StatusForbidden, "Not your profile", "")
			return
		}

		err := svc.DeleteUser(c.Request.Context(), userID)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		case errors.Is(err, userService.ErrUserNotFound):
			utils.JSONError(c, http.StatusNotFound, "User not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to delete user", err.Error())
		}
	}
}
