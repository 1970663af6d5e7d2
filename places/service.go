package places

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/usguri/almoxarifado-go/apperror"
	"github.com/usguri/almoxarifado-go/db"
)

const placeColumns = "id, name, description, image, created_at, updated_at"

// Service implements place CRUD over the database.
type Service struct {
	db db.Querier
}

// NewService creates a Service.
func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

// List returns every place ordered by id.
func (s *Service) List(ctx context.Context) ([]Place, error) {
	rows, err := s.db.Query(ctx, `SELECT `+placeColumns+` FROM places ORDER BY id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list places", err)
	}
	defer rows.Close()

	places := []Place{}
	for rows.Next() {
		var p Place
		if err := scanPlace(rows, &p); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan place", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list places", err)
	}
	return places, nil
}

// Get returns the place with the given id.
func (s *Service) Get(ctx context.Context, id int) (*Place, error) {
	var p Place
	row := s.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id)
	if err := scanPlace(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("place with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get place", err)
	}
	return &p, nil
}

// Create inserts a new place. A duplicate name surfaces as a Conflict via the
// pre-declared constraint name.
func (s *Service) Create(ctx context.Context, req CreatePlaceRequest) (*Place, error) {
	var p Place
	query := `INSERT INTO places (name, description, image)
              VALUES ($1, $2, $3)
              RETURNING ` + placeColumns
	row := s.db.QueryRow(ctx, query, req.Name, req.Description, req.Image)
	if err := scanPlace(row, &p); err != nil {
		err = apperror.OnConstraint(err, "places_name_key", "name already taken")
		if apperror.IsConflictError(err) {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to create place", err)
	}
	return &p, nil
}

// Update applies a partial update to the place with the given id and returns
// the updated row. Only the fields present in the request are touched.
func (s *Service) Update(ctx context.Context, id int, req UpdatePlaceRequest) (*Place, error) {
	var setClauses []string
	var args []any
	argID := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *req.Name)
		argID++
	}
	if req.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *req.Description)
		argID++
	}
	if req.Image != nil {
		setClauses = append(setClauses, fmt.Sprintf("image = $%d", argID))
		args = append(args, *req.Image)
		argID++
	}

	if len(setClauses) == 0 {
		return s.Get(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE places SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argID, placeColumns,
	)

	var p Place
	if err := scanPlace(s.db.QueryRow(ctx, query, args...), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("place with id %d not found", id), nil)
		}
		err = apperror.OnConstraint(err, "places_name_key", "name already taken")
		if apperror.IsConflictError(err) {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to update place", err)
	}
	return &p, nil
}

// Delete removes the place with the given id. Deleting an unknown id is
// NotFound.
func (s *Service) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete place", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("place with id %d not found", id), nil)
	}
	return nil
}

func scanPlace(row pgx.Row, p *Place) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Image,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}
