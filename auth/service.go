package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/usguri/almoxarifado-go/apperror"
	"github.com/usguri/almoxarifado-go/db"
	"github.com/usguri/almoxarifado-go/password"
	"github.com/usguri/almoxarifado-go/token"
)

// dummyPasswordHash is verified when a login targets an email that does not
// exist, so the response time does not reveal whether the email is registered.
// It is a fake hash that never matches any password, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Service implements registration and login.
type Service struct {
	db     db.Querier
	hashes *password.Pool
	tokens *token.Issuer
}

// NewService creates a Service. The hash pool and token issuer are shared,
// immutable process-wide dependencies.
func NewService(querier db.Querier, hashes *password.Pool, tokens *token.Issuer) *Service {
	return &Service{
		db:     querier,
		hashes: hashes,
		tokens: tokens,
	}
}

// Register creates a new user and returns its public fields with a fresh
// session token. The password is hashed on the worker pool before the single
// INSERT; a duplicate email surfaces as a Conflict via the pre-declared
// constraint name and leaves no partial row behind.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hashed, err := s.hashes.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:  req.Name,
		Email: strings.ToLower(req.Email),
	}
	query := `INSERT INTO users (name, email, password)
              VALUES ($1, $2, $3)
              RETURNING id, created_at`
	err = s.db.QueryRow(ctx, query, user.Name, user.Email, hashed).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		err = apperror.OnConstraint(err, "users_email_key", "email already taken")
		if apperror.IsConflictError(err) {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	return s.respondWithToken(user)
}

// Login verifies credentials and returns the same body shape as Register.
// Unknown email and wrong password are deliberately indistinguishable.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.getUserByEmail(ctx, req.Email)

	targetHash := dummyPasswordHash
	userExists := false
	switch {
	case err == nil:
		targetHash = user.HashedPassword
		userExists = true
	case errors.Is(err, pgx.ErrNoRows):
		// Fall through and verify against the dummy hash.
	default:
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	valid, err := s.hashes.Verify(ctx, req.Password, targetHash)
	if err != nil && userExists {
		return nil, err
	}
	if !userExists || !valid {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	return s.respondWithToken(user)
}

// respondWithToken issues a session token for the user and shapes the
// response body shared by Register and Login.
func (s *Service) respondWithToken(user *User) (*AuthResponse, error) {
	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: signed,
	}, nil
}

func (s *Service) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
