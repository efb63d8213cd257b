package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kumalab/prompt-manager/pkg/internal/database"
	"github.com/kumalab/prompt-manager/pkg/internal/models"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("incorrect username or password")

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where(models.Account{
		BaseModel: models.BaseModel{ID: id},
	}).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetAccountWithName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where(models.Account{Name: name}).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func NewAccount(name, email, password string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err == nil {
		return account, fmt.Errorf("username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, err
	}
	if err := database.C.Where("email = ?", email).First(&account).Error; err == nil {
		return account, fmt.Errorf("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return account, err
	}

	account = models.Account{
		Name:     name,
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}

	err = database.C.Create(&account).Error

	return account, err
}

// AuthenticateAccount verifies the password and issues a bearer token.
func AuthenticateAccount(name, password string) (models.Account, string, error) {
	account, err := GetAccountWithName(name)
	if err != nil {
		return account, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return account, "", ErrInvalidCredentials
	}
	if !account.IsActive {
		return account, "", fmt.Errorf("account is inactive")
	}

	token, err := IssueAccessToken(account)
	return account, token, err
}

func IssueAccessToken(account models.Account) (string, error) {
	duration := viper.GetDuration("security.access_token_duration")
	if duration <= 0 {
		duration = 24 * time.Hour
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(int(account.ID)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(viper.GetString("secret")))
}

// ParseAccessToken resolves a bearer token back into the account it was
// issued for.
func ParseAccessToken(raw string) (models.Account, error) {
	var account models.Account

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString("secret")), nil
	})
	if err != nil {
		return account, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return account, fmt.Errorf("invalid access token")
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return account, fmt.Errorf("invalid access token subject: %v", err)
	}

	return GetAccount(uint(id))
}
