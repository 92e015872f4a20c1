package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/utils/identity"
	"gorm.io/gorm"
)

// IdentityService is the bridge between the external identity provider
// and local user records. Every protected request funnels through
// Resolve exactly once.
type IdentityService struct {
	db            *gorm.DB
	verifier      identity.TokenVerifier
	operatorEmail string
}

// NewIdentityService creates an identity service. operatorEmail is the
// address that receives the admin role on first contact.
func NewIdentityService(db *gorm.DB, verifier identity.TokenVerifier, operatorEmail string) *IdentityService {
	return &IdentityService{
		db:            db,
		verifier:      verifier,
		operatorEmail: strings.ToLower(operatorEmail),
	}
}

// Resolve verifies the bearer token and returns the matching local
// user, creating the account on first sight.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if s.verifier == nil {
		return nil, identity.ErrNoVerifier
	}

	claims, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.Upsert(ctx, claims)
}

// Upsert maps verified claims to the local user record. New accounts
// get the guest role, or admin when the email matches the operator
// address. Repeat contacts refresh email and display name; an elevated
// role is never downgraded. Exactly one write; a write failure
// propagates to the caller who retries at the transport layer.
func (s *IdentityService) Upsert(ctx context.Context, claims *identity.Claims) (*model.User, error) {
	email := strings.ToLower(claims.Email)

	var user model.User
	err := s.db.WithContext(ctx).Where("firebase_uid = ?", claims.Subject).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role := model.RoleGuest
		if s.operatorEmail != "" && email == s.operatorEmail {
			role = model.RoleAdmin
		}
		user = model.User{
			FirebaseUID: claims.Subject,
			Email:       email,
			DisplayName: claims.Name,
			Role:        role,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	updates := map[string]interface{}{}
	if email != "" && email != user.Email {
		updates["email"] = email
	}
	if claims.Name != "" && claims.Name != user.DisplayName {
		updates["display_name"] = claims.Name
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to refresh user: %w", err)
		}
	}

	return &user, nil
}
