package sqlxrepos

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/tsegazeab/timhirt/core"
	"github.com/tsegazeab/timhirt/core/user"
)

type dbUser struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	PasswordHash []byte         `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    time.Time      `db:"last_login"`
}

func (du dbUser) toUser() user.User {
	return user.User{
		ID:           du.ID,
		Name:         du.Name,
		Username:     du.Username,
		Email:        du.Email,
		IsActive:     du.IsActive,
		Roles:        du.Roles,
		PasswordHash: du.PasswordHash,
		CreatedAt:    du.CreatedAt,
		UpdatedAt:    du.UpdatedAt,
		LastLogin:    du.LastLogin,
	}
}

func toUsers(dbUsers []dbUser) []user.User {
	users := make([]user.User, 0, len(dbUsers))
	for _, du := range dbUsers {
		users = append(users, du.toUser())
	}
	return users
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	excludedIDs := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		excludedIDs = append(excludedIDs, usr.ID)
	}

	var matches []dbUser
	query := `SELECT username, email FROM "user" WHERE (username = $1 OR email = $2) AND NOT (id = ANY($3))`
	if err := repo.db.Select(&matches, query, username, email, pq.Array(excludedIDs)); err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}
	for _, m := range matches {
		if username != "" && m.Username == username {
			return user.ErrUsernameExists
		}
		if email != "" && m.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	query := `
INSERT INTO "user" (id, name, username, email, is_active, roles, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.Exec(query,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.IsActive,
		pq.Array(usr.Roles), usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var dbUsers []dbUser
	if err := repo.db.Select(&dbUsers, `SELECT * FROM "user"`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return toUsers(dbUsers), nil
}

func (repo *userRepository) getUser(query string, args ...interface{}) (user.User, error) {
	var du dbUser
	if err := repo.db.Get(&du, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return du.toUser(), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	return repo.getUser(`SELECT * FROM "user" WHERE id = $1`, id)
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getUser(`SELECT * FROM "user" WHERE username = $1`, username)
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getUser(`SELECT * FROM "user" WHERE email = $1`, email)
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	return repo.getUser(`SELECT * FROM "user" WHERE username = $1 OR email = $1`, username)
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter, ordering ...core.DBOrdering) ([]user.User, error) {
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %[1]s OR username ILIKE %[1]s OR email ILIKE %[1]s)", p))
	}
	if filter.Roles != nil {
		conds = append(conds, fmt.Sprintf("roles && %s", arg(pq.Array(filter.Roles))))
	}
	if filter.IsActive != nil {
		conds = append(conds, fmt.Sprintf("is_active = %s", arg(*filter.IsActive)))
	}
	if !filter.CreatedFrom.IsZero() {
		conds = append(conds, fmt.Sprintf("created_at >= %s", arg(filter.CreatedFrom)))
	}
	if !filter.CreatedTo.IsZero() {
		conds = append(conds, fmt.Sprintf("created_at <= %s", arg(filter.CreatedTo)))
	}

	query := `SELECT * FROM "user"`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if len(ordering) > 0 {
		ords := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			ords = append(ords, ord.String())
		}
		query += " ORDER BY " + strings.Join(ords, ", ")
	}

	var dbUsers []dbUser
	if err := repo.db.Select(&dbUsers, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return toUsers(dbUsers), nil
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	query := `
UPDATE "user" SET
    name          = COALESCE(NULLIF($2, ''), name),
    username      = COALESCE(NULLIF($3, ''), username),
    email         = COALESCE(NULLIF($4, ''), email),
    roles         = COALESCE($5, roles),
    password_hash = COALESCE($6, password_hash),
    last_login    = CASE WHEN $7::timestamptz IS NULL THEN last_login ELSE $7 END,
    updated_at    = CASE WHEN $8::timestamptz IS NULL THEN updated_at ELSE $8 END,
    is_active     = COALESCE($9, is_active)
WHERE id = $1
RETURNING *`

	var roles interface{}
	if usr.Roles != nil {
		roles = pq.Array(usr.Roles)
	}
	var pwdHash interface{}
	if usr.PasswordHash != nil {
		pwdHash = usr.PasswordHash
	}
	var lastLogin, updatedAt interface{}
	if !usr.LastLogin.IsZero() {
		lastLogin = usr.LastLogin
	}
	if !usr.UpdatedAt.IsZero() {
		updatedAt = usr.UpdatedAt
	}
	var active interface{}
	if isActive != nil {
		active = *isActive
	}

	var du dbUser
	err := repo.db.Get(&du, query, usr.ID, usr.Name, usr.Username, usr.Email, roles, pwdHash, lastLogin, updatedAt, active)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return du.toUser(), nil
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	if _, err := repo.db.Exec(`DELETE FROM "user" WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
