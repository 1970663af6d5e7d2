// Package users manages the authenticated user surface (current user, update,
// delete) and the public profile projection.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/usguri/almoxarifado-go/apperror"
	"github.com/usguri/almoxarifado-go/db"
	"github.com/usguri/almoxarifado-go/password"
)

// Service implements user lookup, update, deletion and the profile listing.
type Service struct {
	db     db.Querier
	hashes *password.Pool
}

// NewService creates a Service. The hash pool is shared with registration so
// updated passwords go through the same bounded hashing path.
func NewService(querier db.Querier, hashes *password.Pool) *Service {
	return &Service{db: querier, hashes: hashes}
}

// GetByID returns the full projection of the user with the given id. A valid
// token does not imply the row still exists, so a missing user is NotFound
// even for an authenticated request.
func (s *Service) GetByID(ctx context.Context, id int) (*UserResponse, error) {
	var resp UserResponse
	query := `SELECT id, name, email, created_at, updated_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(
		&resp.ID,
		&resp.Name,
		&resp.Email,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &resp, nil
}

// Update applies a partial update to the user with the given id and returns
// the updated projection. Only the fields present in the request are touched;
// a new password is re-hashed on the worker pool before it reaches the query.
func (s *Service) Update(ctx context.Context, id int, req UpdateUserRequest) (*UserResponse, error) {
	var setClauses []string
	var args []any
	argID := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *req.Name)
		argID++
	}
	if req.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, strings.ToLower(*req.Email))
		argID++
	}
	if req.Password != nil {
		hashed, err := s.hashes.Hash(ctx, *req.Password)
		if err != nil {
			return nil, err
		}
		setClauses = append(setClauses, fmt.Sprintf("password = $%d", argID))
		args = append(args, hashed)
		argID++
	}

	if len(setClauses) == 0 {
		return s.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING id, name, email, created_at, updated_at`,
		strings.Join(setClauses, ", "), argID,
	)

	var resp UserResponse
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&resp.ID,
		&resp.Name,
		&resp.Email,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
		}
		err = apperror.OnConstraint(err, "users_email_key", "email already taken")
		if apperror.IsConflictError(err) {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}
	return &resp, nil
}

// Delete removes the user with the given id. Deleting an unknown id is
// NotFound, observed through the affected-row count of the single DELETE.
func (s *Service) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
	}
	return nil
}

// ListProfiles returns the public projection of every user.
func (s *Service) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, email FROM users ORDER BY id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan profile", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list profiles", err)
	}
	return profiles, nil
}

// GetProfile returns the public projection of one user.
func (s *Service) GetProfile(ctx context.Context, id int) (*Profile, error) {
	var p Profile
	err := s.db.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("profile with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get profile", err)
	}
	return &p, nil
}
