package service

import (
	"errors"
	"testing"
	"time"

	"github.com/atolye-store/internal/config"
	"github.com/atolye-store/internal/constants"
	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/repository"

	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "user_auth_service_test")
	cfg := &config.Config{
		UserJWT: config.JWTConfig{
			SecretKey:             "test-secret-key",
			ExpireHours:           24,
			RememberMeExpireHours: 168,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:       "  Ayse@Example.com ",
		Password:    "Guvenli123",
		DisplayName: " Ayşe ",
		Locale:      "tr",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ayse@example.com" {
		t.Fatalf("email normalize want ayse@example.com got %s", user.Email)
	}
	if user.DisplayName != "Ayşe" {
		t.Fatalf("display name want Ayşe got %q", user.DisplayName)
	}
	if user.PasswordHash == "Guvenli123" || user.PasswordHash == "" {
		t.Fatalf("password must be stored as a hash")
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("status want active got %s", user.Status)
	}

	// 邮箱大小写不敏感去重
	if _, err := svc.Register(RegisterInput{Email: "AYSE@example.com", Password: "Guvenli123"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate register want ErrEmailTaken got %v", err)
	}

	logged, token, expiresAt, err := svc.Login("ayse@example.com", "Guvenli123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login user id want %d got %d", user.ID, logged.ID)
	}
	if token == "" {
		t.Fatalf("login should return a token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token expiry should be in the future, got %v", expiresAt)
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("last login should be recorded")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims want user %d/%s got %d/%s", user.ID, user.Email, claims.UserID, claims.Email)
	}

	if _, _, _, err := svc.Login("ayse@example.com", "yanlis-parola"); !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("wrong password want ErrPasswordIncorrect got %v", err)
	}
	if _, _, _, err := svc.Login("yok@example.com", "Guvenli123"); !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("unknown email want ErrPasswordIncorrect got %v", err)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "Guvenli123"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad email want ErrInvalidInput got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "", Password: "Guvenli123"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty email want ErrInvalidInput got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "ok@example.com", Password: "zayif"}); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("weak password want ErrPasswordTooWeak got %v", err)
	}

	// 不支持的语言回落到默认语言
	user, err := svc.Register(RegisterInput{Email: "de@example.com", Password: "Guvenli123", Locale: "de"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Locale != "tr" {
		t.Fatalf("locale fallback want tr got %s", user.Locale)
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{Email: "kapali@example.com", Password: "Guvenli123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login("kapali@example.com", "Guvenli123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestLoginRememberMeExtendsExpiry(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{Email: "hatirla@example.com", Password: "Guvenli123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, shortExpiry, err := svc.LoginWithRememberMe("hatirla@example.com", "Guvenli123", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	_, _, longExpiry, err := svc.LoginWithRememberMe("hatirla@example.com", "Guvenli123", true)
	if err != nil {
		t.Fatalf("remember-me login failed: %v", err)
	}
	if !longExpiry.After(shortExpiry.Add(24 * time.Hour)) {
		t.Fatalf("remember-me expiry %v should be well beyond %v", longExpiry, shortExpiry)
	}
}

func TestParseUserJWTRejectsTampered(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{Email: "jwt@example.com", Password: "Guvenli123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, _, err := svc.GenerateUserJWT(user, 0)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	if _, err := svc.ParseUserJWT(token + "x"); err == nil {
		t.Fatalf("tampered token should not parse")
	}
	if _, err := svc.ParseUserJWT("not-a-token"); err == nil {
		t.Fatalf("garbage token should not parse")
	}
}
