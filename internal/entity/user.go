package entity

import (
	"context"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

const (
	RoleAdministrator = "Administrator"
	RoleManager       = "Manager"
	RoleSubAdmin      = "Sub-Admin"
	RoleAdvisor       = "Advisor"
	RoleClient        = "Client"
)

type User struct {
	ID           string
	Name         string
	Email        string
	Role         string
	Category     *string
	Avatar       *string
	ProductsSold []string
	PasswordHash *string
	DeletedAt    *time.Time
}

type UserRepositoryInterface interface {
	// FindActiveByEmail ignores soft-deleted users and returns
	// ErrUserNotFound when nothing matches.
	FindActiveByEmail(ctx context.Context, email string) (*User, error)
}
