package handlers

import (
	"errors"
	"net/http"

	"carelink/middleware"
	"carelink/models"
	providerService "carelink/services/provider"
	"carelink/utils"

	"github.com/gin-gonic/gin"
)

// RegisterProviderHandler creates a caregiver account.
func RegisterProviderHandler(svc providerService.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			models.Provider
			Password string `json:"password" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid registration request", err.Error())
			return
		}

		resp, err := svc.RegisterProvider(c.Request.Context(), req.Provider, req.Password)
		switch {
		case err == nil:
			c.JSON(http.StatusCreated, resp)
		case errors.Is(err, providerService.ErrEmailInUse):
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to register caregiver", err.Error())
		}
	}
}

// AuthenticateProviderHandler signs a caregiver in.
func AuthenticateProviderHandler(svc providerService.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid login request", err.Error())
			return
		}

		resp, err := svc.AuthenticateProvider(c.Request.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, resp)
		case errors.Is(err, providerService.ErrInvalidPassword):
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to authenticate caregiver", err.Error())
		}
	}
}

// RevokeProviderAuthTokenHandler signs the authenticated caregiver out.
func RevokeProviderAuthTokenHandler(svc providerService.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.GetString(middleware.ContextProviderIDKey)
		if err := svc.RevokeProviderAuthToken(c.Request.Context(), providerID); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to revoke token", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "revoked"})
	}
}

// GetProviderByIDHandler returns a caregiver's public profile.
func GetProviderByIDHandler(svc providerService.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetProviderByID(c.Request.Context(), c.Param("id"))
		switch {
		case err == nil:
			c.JSON(http.StatusOK, p)
		case errors.Is(err, providerService.ErrProviderNotFound):
			utils.JSONError(c, http.StatusNotFound, "Caregiver not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch caregiver", err.Error())
		}
	}
}

// UpdateProviderHandler updates the authenticated caregiver's profile fields.
func UpdateProviderHandler(svc providerService.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.GetString(middleware.ContextProviderIDKey)
		if c.Param("id") != providerID {
			utils.JSONError(c, http.StatusForbidden, "Not your profile", "")
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid update request", err.Error())
			return
		}

		p, err := svc.UpdateProvider(c.Request.Context(), providerID, updates)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, p)
		case errors.Is(err, providerService.ErrProviderNotFound):
			utils.JSONError(c, http.StatusNotFound, "Caregiver not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update caregiver", err.Error())
		}
	}
}

// DeleteProviderHandler removes the authenticated caregiver's account.
func DeleteProviderHandler(svc providerService.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.GetString(middleware.ContextProviderIDKey)
		if c.Param("id") != providerID {
			utils.JSONError(c, http.StatusForbidden, "Not your profile", "")
			return
		}

		err := svc.DeleteProvider(c.Request.Context(), providerID)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		case errors.Is(err, providerService.ErrProviderNotFound):
			utils.JSONError(c, http.StatusNotFound, "Caregiver not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to delete caregiver", err.Error())
		}
	}
}

// SetWeeklyTemplateHandler stores the caregiver's recurring weekly
// availability pattern.
func SetWeeklyTemplateHandler(svc providerService.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.GetString(middleware.ContextProviderIDKey)
		if c.Param("id") != providerID {
			utils.JSONError(c, http.StatusForbidden, "Not your availability", "")
			return
		}

		var req struct {
			WeeklyTemplate models.WeeklyTemplate `json:"weeklyTemplate" binding:"required"`
			GranularityMin int                   `json:"granularityMin"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid template request", err.Error())
			return
		}

		tpl, err := svc.SetWeeklyTemplate(c.Request.Context(), providerID, req.WeeklyTemplate, req.GranularityMin)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"weeklyTemplate": tpl})
		case errors.Is(err, providerService.ErrInvalidTemplate):
			utils.JSONError(c, http.StatusBadRequest, "Invalid weekly template", err.Error())
		case errors.Is(err, providerService.ErrProviderNotFound):
			utils.JSONError(c, http.StatusNotFound, "Caregiver not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to store weekly template", err.Error())
		}
	}
}

// GetWeeklyTemplateHandler returns the caregiver's stored pattern.
func GetWeeklyTemplateHandler(svc providerService.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.GetString(middleware.ContextProviderIDKey)
		if c.Param("id") != providerID {
			utils.JSONError(c, http.StatusForbidden, "Not your availability", "")
			return
		}

		tpl, err := svc.GetWeeklyTemplate(c.Request.Context(), providerID)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"weeklyTemplate": tpl})
		case errors.Is(err, providerService.ErrProviderNotFound):
			utils.JSONError(c, http.StatusNotFound, "Caregiver not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch weekly template", err.Error())
		}
	}
}
