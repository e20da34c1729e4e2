package models

import (
	"github.com/atolye-store/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultUser 初始化默认演示账号（仅空库时创建，便于本地联调）
func InitDefaultUser(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "demo@atolye.store"
	}
	if password == "" {
		password = "demo1234"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Demo",
		Status:       "active",
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "demo1234" {
		logger.Warnw("default_user_created_with_default_password", "email", email)
	} else {
		logger.Warnw("default_user_created", "email", email, "password_hidden", true)
	}
	return nil
}
