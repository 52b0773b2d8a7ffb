package db

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// InitAdmin creates the first staff account when it does not exist yet.
func InitAdmin(ctx context.Context, database DB, username, password string, logger *zap.Logger) error {
	if username == "" || password == "" {
		return errors.New("admin username and password are required")
	}

	var count int
	err := database.ExecQueryRow(ctx, "SELECT COUNT(*) FROM staff_users WHERE username = $1", username).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count staff users: %w", err)
	}
	if count > 0 {
		logger.Info("admin user already exists", zap.String("username", username))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	_, err = database.Exec(ctx,
		"INSERT INTO staff_users (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING",
		username, string(hash))
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logger.Info("admin user created", zap.String("username", username))
	return nil
}
