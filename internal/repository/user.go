package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const insertUser = `
INSERT INTO users (id, name, email, password, is_admin)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, email, password, is_admin, created_at, updated_at
`

type InsertUserParams struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

func (q *Queries) InsertUser(c context.Context, arg InsertUserParams) (User, error) {
	row := q.db.QueryRow(c, insertUser, arg.ID, arg.Name, arg.Email, arg.Password, arg.IsAdmin)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const findUserById = `
SELECT id, name, email, password, is_admin, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) FindUserById(c context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(c, findUserById, id)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const findUserByEmail = `
SELECT id, name, email, password, is_admin, created_at, updated_at
FROM users
WHERE email = $1
`

func (q *Queries) FindUserByEmail(c context.Context, email string) (User, error) {
	row := q.db.QueryRow(c, findUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const findUsers = `
SELECT id, name, email, password, is_admin, created_at, updated_at
FROM users
ORDER BY created_at
`

func (q *Queries) FindUsers(c context.Context) ([]User, error) {
	rows, err := q.db.Query(c, findUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []User{}
	for rows.Next() {
		var u User
		err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.Password,
			&u.IsAdmin,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const updateUser = `
UPDATE users
SET name = $2, email = $3, password = $4, is_admin = $5, updated_at = NOW()
WHERE id = $1
RETURNING id, name, email, password, is_admin, created_at, updated_at
`

type UpdateUserParams struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

func (q *Queries) UpdateUser(c context.Context, arg UpdateUserParams) (User, error) {
	row := q.db.QueryRow(c, updateUser, arg.ID, arg.Name, arg.Email, arg.Password, arg.IsAdmin)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const deleteUserById = `
DELETE FROM users
WHERE id = $1
`

func (q *Queries) DeleteUserById(c context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteUserById, id)
	return tag.RowsAffected(), err
}
