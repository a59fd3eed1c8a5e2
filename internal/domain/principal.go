package domain

// Role of an authenticated caller
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "cliente"
)

// Principal identity extracted from the bearer token
type Principal struct {
	ID    int64
	Email string
	Role  Role
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
