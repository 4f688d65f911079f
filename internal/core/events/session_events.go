package events

import (
	"time"

	"github.com/google/uuid"
)

// NewIdentityChanged records a provider-side identity notification before
// any profile resolution happens. A blank identity id means the provider
// reported signed-out.
func NewIdentityChanged(identityID, email string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeIdentityChanged,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"identity_id": identityID,
			"email":       email,
		},
	}
}

// NewSessionChanged records that a session was resolved or replaced.
// Origin names the path that produced it: "remote", "local" or "restored".
func NewSessionChanged(userID, email, role, origin string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeSessionChanged,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id": userID,
			"email":   email,
			"role":    role,
			"origin":  origin,
		},
	}
}

// NewSessionCleared records a logout or invalidation.
func NewSessionCleared() BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeSessionCleared,
		Timestamp: time.Now(),
		Data:      map[string]interface{}{},
	}
}

// NewUserSignedUp records an account creation, remote or degraded-local.
func NewUserSignedUp(userID, email, role string, localOnly bool) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      TypeUserSignedUp,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id":    userID,
			"email":      email,
			"role":       role,
			"local_only": localOnly,
		},
	}
}
