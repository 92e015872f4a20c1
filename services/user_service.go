package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// UserService covers the admin user-management surface: listing
// accounts and changing roles.
type UserService struct {
	db         *gorm.DB
	audit      *AuditService
	dispatcher *dispatch.Dispatcher
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, audit *AuditService, dispatcher *dispatch.Dispatcher) *UserService {
	return &UserService{
		db:         db,
		audit:      audit,
		dispatcher: dispatcher,
	}
}

// List returns users, optionally filtered by role, newest first.
func (s *UserService) List(ctx context.Context, role model.Role, limit, offset int) ([]model.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.User{})
	if role != "" {
		if !model.ValidRole(role) {
			return nil, 0, fmt.Errorf("%w: invalid role %q", ErrValidation, role)
		}
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, total, nil
}

// ChangeRole moves a user to a new role. Admins cannot demote
// themselves; losing the last admin would lock the panel.
func (s *UserService) ChangeRole(ctx context.Context, admin *model.User, userID uint, role model.Role, meta AuditMeta) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}
	if userID == admin.ID && role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: you cannot remove your own admin role", ErrForbidden)
	}

	var user model.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	previous := user.Role
	if previous == role {
		return &user, nil
	}

	user.Role = role
	if err := s.db.WithContext(ctx).Model(&user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	// A tutor without a profile row has nowhere to carry the rating
	// aggregate, so elevation creates the stub the tutor later fills in.
	if role == model.RoleTutor {
		var profile model.TutorProfile
		err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Attrs(model.TutorProfile{UserID: userID, Category: model.CategoryOther}).
			FirstOrCreate(&profile).Error
		if err != nil {
			return nil, fmt.Errorf("failed to create tutor profile: %w", err)
		}
	}

	actorID := admin.ID
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "user_role_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     "user_role_change",
				EntityType: "user",
				EntityID:   userID,
				Changes:    map[string]interface{}{"from": previous, "to": role},
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return &user, nil
}
