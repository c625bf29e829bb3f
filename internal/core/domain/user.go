package domain

import "time"

// Role identifies one of the fixed operator roles. The numeric values are part
// of the wire contract (roleId in payloads, role claim in tokens).
type Role int64

const (
	RoleAdmin   Role = 1
	RoleWorker  Role = 5
	RoleAnalyst Role = 6
	RoleHead    Role = 7
	RoleSenior  Role = 8
)

var roleNames = map[Role]string{
	RoleAdmin:   "admin",
	RoleWorker:  "worker",
	RoleAnalyst: "analyst",
	RoleHead:    "head",
	RoleSenior:  "senior",
}

// Valid reports whether r is part of the fixed role catalog.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Name returns the role code, or "unknown".
func (r Role) Name() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// UserState is the lifecycle state of an operator account. Accounts are never
// hard-deleted; blocking is reversible.
type UserState int

const (
	UserActive  UserState = 0
	UserBlocked UserState = 1
)

var userTransitions = map[UserState][]UserState{
	UserActive:  {UserBlocked},
	UserBlocked: {UserActive},
}

// CanTransitionTo reports whether the transition from s to next is allowed.
func (s UserState) CanTransitionTo(next UserState) bool {
	for _, allowed := range userTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known user state.
func (s UserState) Valid() bool {
	return s == UserActive || s == UserBlocked
}

// User models an operator account.
type User struct {
	ID               int64      `json:"id" bson:"_id"`
	Login            string     `json:"login" bson:"login"`
	PasswordHash     string     `json:"-" bson:"passwordHash"`
	RoleID           Role       `json:"roleId" bson:"roleId"`
	State            UserState  `json:"state" bson:"state"`
	BlockedUntil     *time.Time `json:"blockedUntil" bson:"blockedUntil"`
	FullName         string     `json:"fullName" bson:"fullName"`
	OrganizationName string     `json:"organizationName" bson:"organizationName"`
	Post             string     `json:"post" bson:"post"`
	Email            string     `json:"email" bson:"email"`
	PhoneNumber      string     `json:"phoneNumber" bson:"phoneNumber"`
	ObjectIDs        []int64    `json:"objectIds" bson:"objectIds"`
	CreatedAt        time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt" bson:"updatedAt"`
	CreatedBy        int64      `json:"createdBy" bson:"createdBy"`
	UpdatedBy        int64      `json:"updatedBy" bson:"updatedBy"`
}

// BlockedNow reports whether the account is unusable at the given instant,
// either explicitly blocked or inside a lockout period.
func (u *User) BlockedNow(now time.Time) bool {
	if u.State == UserBlocked {
		return true
	}
	return u.BlockedUntil != nil && now.Before(*u.BlockedUntil)
}
