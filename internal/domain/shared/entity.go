package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the updated timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// OwnedEntity extends BaseEntity with per-user data isolation.
// Every record belongs to exactly one user; repositories must scope
// all queries by CreatedByUserID.
type OwnedEntity struct {
	BaseEntity
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewOwnedEntity creates a new entity owned by the given user
func NewOwnedEntity(ownerID uuid.UUID) OwnedEntity {
	return OwnedEntity{
		BaseEntity:      NewBaseEntity(),
		CreatedByUserID: ownerID,
	}
}

// OwnedBy reports whether the entity belongs to the given user
func (e *OwnedEntity) OwnedBy(userID uuid.UUID) bool {
	return e.CreatedByUserID == userID
}
