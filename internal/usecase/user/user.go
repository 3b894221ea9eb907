package user

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinica-turnos/internal/authz"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/httperr"
	"github.com/BruksfildServices01/clinica-turnos/internal/models"
)

// ======================================================
// AUTHENTICATE
// ======================================================

type Authenticate struct {
	repo clinic.Repository
}

func NewAuthenticate(repo clinic.Repository) *Authenticate {
	return &Authenticate{repo: repo}
}

// Execute returns the actor for valid credentials. Unknown users and wrong
// passwords fail the same way.
func (uc *Authenticate) Execute(ctx context.Context, usuario, password string) (*authz.Actor, error) {
	users, err := uc.repo.Users(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Usuario != usuario {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			continue
		}
		return &authz.Actor{User: u.Usuario, Role: authz.Role(u.Role)}, nil
	}

	return nil, httperr.Validation("invalid_credentials", "Usuario o contraseña incorrectos.")
}

// ======================================================
// ADD
// ======================================================

type AddUser struct {
	repo clinic.Repository
}

func NewAddUser(repo clinic.Repository) *AddUser {
	return &AddUser{repo: repo}
}

func validRole(r authz.Role) bool {
	switch r {
	case authz.RoleSecretaria, authz.RoleMedico, authz.RoleAdministrador:
		return true
	}
	return false
}

// Execute stores a new user with a bcrypt hash of password.
func (uc *AddUser) Execute(ctx context.Context, usuario, password string, role authz.Role) error {
	usuario = strings.TrimSpace(usuario)
	if usuario == "" || password == "" {
		return httperr.Validation("missing_field", "Usuario y contraseña son obligatorios.")
	}
	if !validRole(role) {
		return httperr.Validation("invalid_role", "Rol inválido.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return uc.repo.Atomic(ctx, func(tx clinic.Repository) error {
		users, err := tx.Users(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Usuario == usuario {
				return httperr.Conflict("duplicate_user", "El usuario ya existe.")
			}
		}

		return tx.SaveUsers(ctx, append(users, models.User{
			Usuario:      usuario,
			PasswordHash: string(hash),
			Role:         string(role),
		}))
	})
}
