package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nucesstack/notestack/internal/app/models/dto"
	"github.com/nucesstack/notestack/internal/app/services"
	"github.com/nucesstack/notestack/internal/middleware"
	"github.com/nucesstack/notestack/internal/pkg/auth"
)

const refreshCookieName = "refresh_token"

// AuthController handles panel login, token refresh and logout.
type AuthController struct {
	authService *services.AuthService
	jwtService  *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
	}
}

func (c *AuthController) setRefreshCookie(ctx *gin.Context, token string, maxAge int) {
	// HTTP-only so panel scripts never see the refresh token.
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(refreshCookieName, token, maxAge, "/api/v1/auth", "", false, true)
}

// Login verifies credentials, returns an access token in the body and
// sets the refresh token as an HTTP-only cookie.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Username and password are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokens, refreshToken, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setRefreshCookie(ctx, refreshToken, c.jwtService.RefreshCookieMaxAge())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tokens))
}

// Refresh rotates the refresh cookie and returns a new access token.
func (c *AuthController) Refresh(ctx *gin.Context) {
	refreshToken, err := ctx.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Refresh token missing")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	tokens, newRefreshToken, err := c.authService.Refresh(ctx, refreshToken)
	if err != nil {
		// Clear the dead cookie so the client stops replaying it.
		c.setRefreshCookie(ctx, "", -1)
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setRefreshCookie(ctx, newRefreshToken, c.jwtService.RefreshCookieMaxAge())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tokens))
}

// Logout revokes the refresh token and clears the cookie.
func (c *AuthController) Logout(ctx *gin.Context) {
	refreshToken, _ := ctx.Cookie(refreshCookieName)

	if err := c.authService.Logout(ctx, refreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setRefreshCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Logged out"}))
}
