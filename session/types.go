// Package session owns the authenticated-user identity and the auth
// lifecycle against the remote API.
//
// The store is an explicitly constructed instance: the host application
// creates one at startup, injects its collaborators (gateway, notifier,
// navigator), and passes it to whatever consumes it. Identity state is
// only ever mutated on confirmed server responses, with two deliberate
// exceptions: logout clears local state regardless of the network
// outcome, and a session-invalidation signal from the gateway clears it
// immediately.
package session

// Role is a user's authorization level.
type Role string

const (
	// RoleUser is a regular account.
	RoleUser Role = "user"

	// RoleAdmin can list and delete other accounts.
	RoleAdmin Role = "admin"
)

// ValidRoles returns all valid role values.
func ValidRoles() []Role {
	return []Role{RoleUser, RoleAdmin}
}

// IsValid returns true if the role is a known valid value.
func (r Role) IsValid() bool {
	for _, valid := range ValidRoles() {
		if r == valid {
			return true
		}
	}
	return false
}

// User is the identity record for an account. Passwords are write-only
// inputs and never appear here.
type User struct {
	// ID is the server-assigned identifier.
	ID string `json:"_id"`

	// Name is the display name.
	Name string `json:"name"`

	// Email is the login email address.
	Email string `json:"email"`

	// Role is the authorization level.
	Role Role `json:"role"`

	// Photo is the avatar URL.
	Photo string `json:"photo"`

	// Bio is the profile text.
	Bio string `json:"bio"`

	// IsVerified reports whether the email address was verified.
	IsVerified bool `json:"isVerified"`
}

// Draft holds the in-progress registration or login input. The password
// lives here only until the request is issued; a successful register or
// login clears the whole draft.
type Draft struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate describes a partial profile update.
// Nil pointers mean "don't update this field".
type UserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Photo *string `json:"photo,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

// userPatch is the wire shape of identity responses. Pointer fields let
// partial responses merge into the known identity without blanking
// fields the server omitted.
type userPatch struct {
	ID         *string `json:"_id"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *Role   `json:"role"`
	Photo      *string `json:"photo"`
	Bio        *string `json:"bio"`
	IsVerified *bool   `json:"isVerified"`
}

func (p userPatch) apply(u *User) {
	if p.ID != nil {
		u.ID = *p.ID
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Photo != nil {
		u.Photo = *p.Photo
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
}
