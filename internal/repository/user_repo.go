package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `email, password_hash, COALESCE(auth_token, ''), created_at,
	jira_user, jira_url, jira_project, jira_token,
	bitbucket_user, bitbucket_workspace, bitbucket_repo, bitbucket_pass`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.Email,
		&u.PasswordHash,
		&u.AuthToken,
		&u.CreatedAt,
		&u.JiraUser,
		&u.JiraURL,
		&u.JiraProject,
		&u.JiraToken,
		&u.BitbucketUser,
		&u.BitbucketWorkspace,
		&u.BitbucketRepo,
		&u.BitbucketPass,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Get(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByToken resolves a bearer token via the unique auth_token index. At most
// one user holds any given token.
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE auth_token = $1`, token)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2)`,
		email, passwordHash)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}

// SetToken overwrites the user's auth token, invalidating any prior session.
func (r *UserRepository) SetToken(ctx context.Context, email, token string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET auth_token = $1 WHERE email = $2`, token, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// credentialColumns is the set of user fields a client may update through
// the authorizations endpoint. The secret fields arrive already encrypted.
var credentialColumns = map[string]bool{
	"jira_user":           true,
	"jira_url":            true,
	"jira_project":        true,
	"jira_token":          true,
	"bitbucket_user":      true,
	"bitbucket_workspace": true,
	"bitbucket_repo":      true,
	"bitbucket_pass":      true,
}

// UpdateCredentials merges the given fields into the user's record. Fields
// not present in the map are left untouched.
func (r *UserRepository) UpdateCredentials(ctx context.Context, email string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	set := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for col, val := range fields {
		if !credentialColumns[col] {
			return fmt.Errorf("unknown credential field %q", col)
		}
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, email)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE email = $%d`,
		strings.Join(set, ", "), len(args))
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
