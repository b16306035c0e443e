package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/evalle012006/sg-sub011/constants"
	apperrors "github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/models"
	"github.com/evalle012006/sg-sub011/validator"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

// AuthService handles staff account registration, login and verification.
type AuthService struct {
	db     *gorm.DB
	mailer Mailer
}

func NewAuthService(db *gorm.DB, mailer Mailer) *AuthService {
	return &AuthService{db: db, mailer: mailer}
}

// GenerateVerificationCode produces a 6 digit one-time code.
func GenerateVerificationCode() (string, error) {
	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += n.String()
	}
	return code, nil
}

// Register creates a staff account and emails a verification code.
func (s *AuthService) Register(ctx context.Context, user *models.User) error {
	if err := validator.ValidateEmail(user.Email); err != nil {
		return err
	}
	if err := validator.ValidatePassword(user.Password); err != nil {
		return err
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return apperrors.NewAppError(apperrors.ErrCodeUserExists, "Email is already registered", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Cannot hash password", err)
	}
	user.Password = string(hashed)

	code, err := GenerateVerificationCode()
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Cannot generate verification code", err)
	}
	user.Code = code
	user.CodeCreatedAt = time.Now()
	user.Status = constants.UserStatusActive

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapStorage("Failed to create user", err)
	}

	if s.mailer != nil {
		if err := s.mailer.Send([]string{user.Email}, "Your verification code", verificationBody(user.Name, code)); err != nil {
			// Account exists either way; the code can be resent.
			return nil
		}
	}
	return nil
}

// Login checks credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", apperrors.ErrGuestNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "Invalid password", err)
	}

	if user.Status != constants.UserStatusActive {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Account is inactive", nil)
	}

	token, err := GenerateToken(&user)
	if err != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Cannot generate token", err)
	}
	return token, &user, nil
}

// VerifyCode checks a one-time code; codes expire after 15 minutes.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", nil)
	}

	if user.Code == "" || user.Code != code {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidCode, "Invalid verification code", nil)
	}
	if time.Since(user.CodeCreatedAt) > 15*time.Minute {
		return apperrors.NewAppError(apperrors.ErrCodeExpiredCode, "Verification code has expired", nil)
	}

	if err := s.db.WithContext(ctx).Model(&user).
		Updates(map[string]interface{}{"is_verified": true, "code": ""}).Error; err != nil {
		return wrapStorage("Failed to verify user", err)
	}
	return nil
}

// LoginWithGoogle validates a Google id token and logs in or provisions
// the matching staff account.
func (s *AuthService) LoginWithGoogle(ctx context.Context, credential string) (string, *models.User, error) {
	payload, err := idtoken.Validate(ctx, credential, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid Google credential", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeInvalidEmail, "Google credential has no email", nil)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		name, _ := payload.Claims["name"].(string)
		user = models.User{
			Email:      email,
			Name:       name,
			IsVerified: true,
			Status:     constants.UserStatusActive,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return "", nil, wrapStorage("Failed to create user", err)
		}
	}

	token, err := GenerateToken(&user)
	if err != nil {
		return "", nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Cannot generate token", err)
	}
	return token, &user, nil
}

// ForgotPassword emails a fresh code the reset endpoint accepts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", nil)
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Cannot generate verification code", err)
	}
	if err := s.db.WithContext(ctx).Model(&user).
		Updates(map[string]interface{}{"code": code, "code_created_at": time.Now()}).Error; err != nil {
		return wrapStorage("Failed to store reset code", err)
	}

	if s.mailer != nil {
		if err := s.mailer.Send([]string{user.Email}, "Password reset code", verificationBody(user.Name, code)); err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeValidation, "Cannot send reset email", err)
		}
	}
	return nil
}

// ResetPassword sets a new password given a valid reset code.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := validator.ValidatePassword(newPassword); err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "User not found", nil)
	}
	if user.Code == "" || user.Code != code {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidCode, "Invalid reset code", nil)
	}
	if time.Since(user.CodeCreatedAt) > 15*time.Minute {
		return apperrors.NewAppError(apperrors.ErrCodeExpiredCode, "Reset code has expired", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Cannot hash password", err)
	}
	if err := s.db.WithContext(ctx).Model(&user).
		Updates(map[string]interface{}{"password": string(hashed), "code": ""}).Error; err != nil {
		return wrapStorage("Failed to reset password", err)
	}
	return nil
}

func verificationBody(name, code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
	<p>Hello %s,</p>
	<p>Your one-time verification code is: <strong>%s</strong></p>
	<p>If you did not request this code you can safely ignore this email.</p>
	<p>Thanks,<br>The accounts team</p>
</body>
</html>`, name, code)
}
