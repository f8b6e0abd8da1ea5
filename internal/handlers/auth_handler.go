package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Login authenticates with the demo credentials and issues a session token
// @Summary Demo login
// @Description Authenticate with email and the demo password, returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.LoginRequest true "Credentials"
// @Success 200 {object} services.LoginResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Login attempt", "email", req.Email)

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err, "log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the current session
// @Summary Logout
// @Description Revoke the session behind the bearer token
// @Tags auth
// @Produce json
// @Success 204 "Session revoked"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("session_token")

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.HandleServiceError(c, err, "log out")
		return
	}

	c.Status(http.StatusNoContent)
}

// Me returns the user behind the current session
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
