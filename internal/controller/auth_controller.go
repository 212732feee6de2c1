package controller

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reviewin_backend/internal/repository"
	"reviewin_backend/internal/service"
	"reviewin_backend/internal/util"
)

type AuthController struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
	UserRepo     *repository.UserRepository
}

func NewAuthController(authService *service.AuthService, tokenService *service.TokenService, userRepo *repository.UserRepository) *AuthController {
	return &AuthController{
		AuthService:  authService,
		TokenService: tokenService,
		UserRepo:     userRepo,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Register creates the account and immediately signs the new user in
// with a fresh token pair.
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		var verr *util.ValidationError
		switch {
		case errors.As(err, &verr):
			util.BadRequest(ctx, verr.Message)
		case errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, "Email already registered")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	accessToken, refreshToken, err := c.TokenService.IssueTokenPair(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(201, gin.H{
		"message":       "Registration successful",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          userView(user),
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx, "Invalid email or password")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	accessToken, refreshToken, err := c.TokenService.IssueTokenPair(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{
		"message":       "Login successful",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          userView(user),
	})
}

// Logout revokes exactly the presented access token.
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Unauthorized")
		return
	}

	if err := c.TokenService.Revoke(ctx.Request.Context(), claims); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{"message": "Logged out successfully"})
}

// GetSession restores the signed-in user from a valid access token.
func (c *AuthController) GetSession(ctx *gin.Context) {
	user := util.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Unauthorized")
		return
	}

	ctx.JSON(200, gin.H{"user": userView(user)})
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token travels in the Authorization header like any other credential.
func (c *AuthController) Refresh(ctx *gin.Context) {
	tokenString := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		util.Unauthorized(ctx, "Missing authorization token")
		return
	}

	claims, err := c.TokenService.ParseRefreshToken(ctx.Request.Context(), tokenString)
	if err != nil {
		util.Unauthorized(ctx, "Invalid or expired refresh token")
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	accessToken, err := c.TokenService.IssueAccessToken(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(200, gin.H{"access_token": accessToken})
}
