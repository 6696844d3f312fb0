package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/user"
)

// UserDal represents the user data access layer model.
type UserDal struct {
	Id           int64  `db:"id"`
	Name         string `db:"name"`
	Image        string `db:"image"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Age          int    `db:"age"`
	Address      string `db:"address"`
}

// ToModel converts UserDal to the service layer User model.
func (u *UserDal) ToModel() *user.User {
	return &user.User{
		ID:           u.Id,
		Name:         u.Name,
		Image:        u.Image,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Age:          u.Age,
		Address:      u.Address,
	}
}

// PostgresUserRepository represents a Postgres user repository.
type PostgresUserRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.GenericConn) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var userColumns = []string{"id", "name", "image", "email", "password_hash", "age", "address"}

// Insert inserts a user and returns it with the generated id.
func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) (*user.User, error) {
	sql, args, err := r.sb.
		Insert("users").
		Columns("name", "image", "email", "password_hash", "age", "address").
		Values(u.Name, u.Image, u.Email, u.PasswordHash, u.Age, u.Address).
		Suffix("RETURNING id, name, image, email, password_hash, age, address").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var dal UserDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id, &dal.Name, &dal.Image, &dal.Email, &dal.PasswordHash, &dal.Age, &dal.Address,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByID retrieves a user by id. Returns nil when no user matches.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByEmail retrieves a user by email. Returns nil when no user matches.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *PostgresUserRepository) getOne(ctx context.Context, where sq.Eq) (*user.User, error) {
	sql, args, err := r.sb.
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal UserDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id, &dal.Name, &dal.Image, &dal.Email, &dal.PasswordHash, &dal.Age, &dal.Address,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return dal.ToModel(), nil
}

// Update overwrites the mutable profile fields of a user. Returns nil when no
// user matches.
func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) (*user.User, error) {
	sql, args, err := r.sb.
		Update("users").
		Set("name", u.Name).
		Set("image", u.Image).
		Set("password_hash", u.PasswordHash).
		Set("age", u.Age).
		Set("address", u.Address).
		Where(sq.Eq{"id": u.ID}).
		Suffix("RETURNING id, name, image, email, password_hash, age, address").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var dal UserDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id, &dal.Name, &dal.Image, &dal.Email, &dal.PasswordHash, &dal.Age, &dal.Address,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return dal.ToModel(), nil
}
