package readstore

import (
	"context"

	"ticketgo/internal/infra"
	"ticketgo/internal/infra/db"
	"ticketgo/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `
		SELECT id, email, full_name, phone_number, role, is_active
		FROM users
		WHERE id = $1`

	view := &queries.AuthorizedUserView{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Email, &view.FullName, &view.PhoneNumber, &view.Role, &view.IsActive,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	const query = `
		SELECT id, email, password_hash, full_name, phone_number, role, is_active
		FROM users
		WHERE email = $1`

	view := &queries.AuthorizedUserView{}
	var passwordHash string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&view.ID, &view.Email, &passwordHash, &view.FullName, &view.PhoneNumber, &view.Role, &view.IsActive,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return view, passwordHash, nil
}
