package services

import (
	"errors"

	"github.com/sunstate-labs/agentcrm/internal/models"
	"github.com/sunstate-labs/agentcrm/internal/token"
	"github.com/sunstate-labs/agentcrm/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput holds the fields accepted by POST /api/auth/register
type RegisterInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	RealtorLicense string `json:"realtorLicense"`
	FloridaCounty  string `json:"floridaCounty"`
}

// Register creates a new user account and issues a bearer token.
func Register(db *gorm.DB, tokens *token.Manager, in RegisterInput) (*models.User, string, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, "", types.NewValidationError("Missing required fields")
	}

	var existing models.User
	err := quiet(db).Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, "", types.NewConflictError("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Email:          in.Email,
		PasswordHash:   string(hash),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		RealtorLicense: in.RealtorLicense,
		FloridaCounty:  in.FloridaCounty,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, "", err
	}

	signed, err := tokens.Sign(user.ID)
	if err != nil {
		return nil, "", err
	}

	return &user, signed, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password return the identical error so neither check is revealed.
func Login(db *gorm.DB, tokens *token.Manager, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", types.NewValidationError("Email and password required")
	}

	var user models.User
	if err := quiet(db).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", types.NewAuthError("Invalid credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", types.NewAuthError("Invalid credentials")
	}

	signed, err := tokens.Sign(user.ID)
	if err != nil {
		return nil, "", err
	}

	return &user, signed, nil
}

// CurrentUser loads the authenticated caller's account.
func CurrentUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := quiet(db).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return &user, nil
}
