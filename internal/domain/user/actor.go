package user

import "github.com/google/uuid"

// Actor is the identity performing an operation. Privileged is the staff/superuser
// capability; it is a flag on the identity, not a separate identity type.
type Actor struct {
	UserID     uuid.UUID
	Privileged bool
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID uuid.UUID) bool {
	return a.UserID != uuid.Nil && a.UserID == userID
}

// CanManage reports whether the actor may manage a resource owned by ownerID.
func (a Actor) CanManage(ownerID uuid.UUID) bool {
	return a.Privileged || a.Is(ownerID)
}
