package services

import "github.com/google/uuid"

// Actor is the acting principal, threaded explicitly into every workflow
// call. Verified mirrors the identity provider's email-verification state.
type Actor struct {
	ID       uuid.UUID
	Verified bool
}
