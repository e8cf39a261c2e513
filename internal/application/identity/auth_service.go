package identity

import (
	"context"
	"errors"
	"time"

	"github.com/ledgerly/backend/internal/domain/identity"
	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/infrastructure/auth"
)

// AuthService handles registration and login against externally issued
// ID tokens.
type AuthService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	verifier auth.TokenVerifier
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, roleRepo identity.RoleRepository, verifier auth.TokenVerifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		verifier: verifier,
	}
}

// Register provisions a local account for a verified identity. The
// token's subject and email must not be taken by an existing account.
func (s *AuthService) Register(ctx context.Context, idToken string, req RegisterRequest) (*UserResponse, error) {
	ident, err := s.verifyToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByFirebaseID(ctx, ident.Subject); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, ident.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(ident.Subject, ident.Email, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	role, err := s.roleRepo.FindOrCreateByName(ctx, identity.RoleClient, "Default role for registered users")
	if err != nil {
		return nil, err
	}
	user.AssignRole(role)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Login resolves a verified identity to its local account and stamps
// the login time. Unknown subjects must register first.
func (s *AuthService) Login(ctx context.Context, idToken string) (*UserResponse, error) {
	ident, err := s.verifyToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByFirebaseID(ctx, ident.Subject)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found, please register")
		}
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

func (s *AuthService) verifyToken(ctx context.Context, idToken string) (*auth.VerifiedIdentity, error) {
	ident, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Identity token has expired")
		}
		return nil, shared.NewDomainError("UNAUTHORIZED", "Identity token could not be verified")
	}
	return ident, nil
}
