package domain

import "time"

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID          int64      `db:"id"`
	Email       string     `db:"email"`
	Password    string     `db:"password"`
	Roles       []string   `db:"roles"`
	IsActive    bool       `db:"is_active"`
	Name        string     `db:"name"`
	Department  string     `db:"department"`
	Phone       string     `db:"phone"`
	CreatedAt   time.Time  `db:"created_at"`
	LastLoginAt *time.Time `db:"last_login_at"`
}

func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// Principal is the authenticated identity derived from a validated
// token. It is passed explicitly into handlers instead of living in
// any ambient session state.
type Principal struct {
	UserID int64
	Email  string
	Roles  []string
}

func (p Principal) IsAdmin() bool {
	for _, r := range p.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
