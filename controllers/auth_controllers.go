package controllers

import (
	"github.com/evalle012006/sg-sub011/dto"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/response"
	"github.com/evalle012006/sg-sub011/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(db *gorm.DB, mailer services.Mailer) *AuthController {
	return &AuthController{
		auth: services.NewAuthService(db, mailer),
	}
}

// Login checks credentials and returns a token
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid login payload")
		return
	}

	token, user, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, dto.LoginResponse{
		Token: token,
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Register creates a staff account and sends a verification code
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid registration payload")
		return
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	}
	if err := ac.auth.Register(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"id": user.ID, "email": user.Email})
}

// VerifyCode confirms a one-time verification code
func (ac *AuthController) VerifyCode(c *gin.Context) {
	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid verification payload")
		return
	}

	if err := ac.auth.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// AuthGoogle logs in with a Google id token
func (ac *AuthController) AuthGoogle(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid credential payload")
		return
	}

	token, user, err := ac.auth.LoginWithGoogle(c.Request.Context(), req.Credential)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, dto.LoginResponse{
		Token: token,
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// ForgotPassword emails a reset code
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	if err := ac.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// ResetPassword sets a new password given a valid reset code
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	if err := ac.auth.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// Logout is stateless; the client drops its token
func (ac *AuthController) Logout(c *gin.Context) {
	response.Success(c, nil)
}
