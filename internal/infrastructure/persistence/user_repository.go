package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/domain/identity"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

var userSortable = map[string]bool{
	"email":      true,
	"first_name": true,
	"last_name":  true,
	"created_at": true,
	"last_login": true,
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByFirebaseID finds a user by its external identity subject
func (r *GormUserRepository) FindByFirebaseID(ctx context.Context, firebaseID string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).Preload("Role").
		Where("firebase_id = ?", firebaseID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).Preload("Role").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll finds all users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := r.db.WithContext(ctx).Model(&identity.User{}).Preload("Role")
	query = applySearch(query, filter.Search, "email", "first_name", "last_name")
	query = applyOrder(query, filter, userSortable, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count counts users matching the filter
func (r *GormUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.User{})
	query = applySearch(query, filter.Search, "email", "first_name", "last_name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a user. The role association is stored by RoleID only.
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	if err := r.db.WithContext(ctx).Omit("Role").Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Search returns the top users matching the query by email or name
func (r *GormUserRepository) Search(ctx context.Context, query string, limit int) ([]identity.User, error) {
	var users []identity.User
	q := r.db.WithContext(ctx).Model(&identity.User{}).Preload("Role")
	q = applySearch(q, query, "email", "first_name", "last_name")

	if err := q.Order("email ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByName finds a role by name
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.UserRole, error) {
	var role identity.UserRole
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.ToUpper(strings.TrimSpace(name))).
		First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindOrCreateByName returns the role with the given name, creating it
// when it does not exist yet
func (r *GormRoleRepository) FindOrCreateByName(ctx context.Context, name, description string) (*identity.UserRole, error) {
	role, err := r.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	created := identity.NewUserRole(name, description)
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		// Lost a concurrent create race; the role exists now.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByName(ctx, name)
		}
		return nil, err
	}
	return created, nil
}

var (
	_ identity.UserRepository = (*GormUserRepository)(nil)
	_ identity.RoleRepository = (*GormRoleRepository)(nil)
)
