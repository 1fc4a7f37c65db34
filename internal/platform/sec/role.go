// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

const (
	// RoleAdmin may publish posts and portfolio items.
	RoleAdmin = "ADMIN"

	// RoleUser is granted to every registered account.
	RoleUser = "USER"
)

// DefaultRoles returns the role set assigned on registration.
func DefaultRoles() []string {
	return []string{RoleUser}
}

// HasRole reports whether roles contains role.
func HasRole(roles []string, role string) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}
