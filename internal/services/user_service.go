package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/otp"
)

// userService handles the OTP login flow and profile updates.
type userService struct {
	db        *gorm.DB
	generator otp.Generator
	otpExpiry time.Duration
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, generator otp.Generator, otpExpiry time.Duration) UserServicer {
	return &userService{db: db, generator: generator, otpExpiry: otpExpiry}
}

// SendOTP issues a new one-time code for the phone number, creating the user
// record if it does not exist yet. Re-issuing a code resets the verified flag,
// so an outstanding token stops working until the new code is confirmed.
// It returns the plaintext code so the handler can expose it in development.
func (s *userService) SendOTP(phoneNumber string) (string, time.Time, error) {
	code := s.generator.Generate()
	expiry := time.Now().Add(s.otpExpiry)

	// Only the hash is stored, even though the development code is a constant.
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var user models.User
	err = s.db.Where("phone_number = ?", phoneNumber).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			PhoneNumber: phoneNumber,
			OTPHash:     string(hash),
			OTPExpiry:   &expiry,
			IsVerified:  false,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return "", time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		updates := map[string]interface{}{
			"otp_hash":    string(hash),
			"otp_expiry":  &expiry,
			"is_verified": false,
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return "", time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return code, expiry, nil
}

// VerifyOTP checks the submitted code against the stored hash. Expiry is
// checked before the code itself, so an expired-but-correct code still fails
// with OTP_EXPIRED. On success the user is marked verified and the code is
// cleared, making it single-use.
func (s *userService) VerifyOTP(phoneNumber, code string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("phone_number = ?", phoneNumber).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if user.OTPExpiry == nil || time.Now().After(*user.OTPExpiry) {
		return nil, apperrors.ErrOTPExpired
	}

	if user.OTPHash == "" || bcrypt.CompareHashAndPassword([]byte(user.OTPHash), []byte(code)) != nil {
		return nil, apperrors.ErrInvalidOTP
	}

	updates := map[string]interface{}{
		"is_verified": true,
		"otp_hash":    "",
		"otp_expiry":  nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user.IsVerified = true
	user.OTPHash = ""
	user.OTPExpiry = nil
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdateProfile updates the user's name and/or email.
func (s *userService) UpdateProfile(userID string, name, email *string) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = strings.TrimSpace(*name)
	}
	if email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*email))
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}
