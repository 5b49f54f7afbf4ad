package handler

import (
	"context"

	"unicatalog/internal/entity"
	"unicatalog/internal/repository"
)

// UserStore is the account storage the registration and login handlers
// need. repository.UserRepository satisfies it.
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, excludeID int) (bool, error)
	Create(ctx context.Context, name, email, passwordHash string) (entity.User, error)
	FindByEmail(ctx context.Context, email string) (entity.User, error)
	GetByID(ctx context.Context, id int) (entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	UpdateAccount(ctx context.Context, id int, name, email string) (entity.User, error)
	Delete(ctx context.Context, id int) error
}

var _ UserStore = (*repository.UserRepository)(nil)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgLoginUnavailable   = "Unable to log in. Please try again later."
	msgAccountExists      = "This account already exists."
	msgRegisterFailed     = "Unable to complete your registration. Please try again later."
	msgRegistered         = "Registration successful! You may now login with your credentials."
	msgPermissionDenied   = "Permission denied: you cannot modify this account."
	msgUserNotFound       = "User not found."
	msgEmailInUse         = "An account with that email already exists."
	msgAccountUpdated     = "Account updated successfully."
	msgUpdateFailed       = "Unable to update the account. Please try again later."
	msgSelfDelete         = "You cannot delete your own account."
	msgUserDeleted        = "User deleted successfully."
	msgDeleteFailed       = "Unable to delete the account. Please try again later."
	msgUsersUnavailable   = "Unable to load users right now."
)
