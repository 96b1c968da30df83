package repo

import "github.com/rogerio-castellano/stockroom/internal/models"

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)

	// RoleOf looks up a user's role directly by username. Permission checks
	// go through this instead of re-authenticating the user.
	RoleOf(username string) (string, error)
}
