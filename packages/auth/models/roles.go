package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func DefaultRoles() Roles {
	return Roles{RoleUser}
}

func AllRoles() []string {
	return []string{
		RoleUser,
		RoleAdmin,
	}
}
