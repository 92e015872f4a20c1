package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t, &model.User{}, &model.TutorProfile{}, &model.AuditLog{})
	return NewUserService(db, NewAuditService(db), dispatch.NewSync()), db
}

func TestChangeRoleElevationToTutorCreatesProfileStub(t *testing.T) {
	service, db := newUserService(t)

	admin := model.User{FirebaseUID: "uid-admin", Email: "admin@example.com", Role: model.RoleAdmin}
	student := model.User{FirebaseUID: "uid-student", Email: "s@example.com", Role: model.RoleStudent}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&student).Error)

	updated, err := service.ChangeRole(context.Background(), &admin, student.ID, model.RoleTutor, AuditMeta{})
	require.NoError(t, err)
	assert.Equal(t, model.RoleTutor, updated.Role)

	var profile model.TutorProfile
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&profile).Error)
	assert.Equal(t, model.CategoryOther, profile.Category)
	assert.Zero(t, profile.RatingCount)
}

func TestChangeRoleKeepsExistingTutorProfile(t *testing.T) {
	service, db := newUserService(t)

	admin := model.User{FirebaseUID: "uid-admin", Email: "admin@example.com", Role: model.RoleAdmin}
	tutor := model.User{FirebaseUID: "uid-tutor", Email: "t@example.com", Role: model.RoleStaff}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&tutor).Error)
	require.NoError(t, db.Create(&model.TutorProfile{
		UserID:   tutor.ID,
		Subjects: "Physics",
		Price:    "40 USD/hour",
		Category: model.CategoryALevels,
	}).Error)

	_, err := service.ChangeRole(context.Background(), &admin, tutor.ID, model.RoleTutor, AuditMeta{})
	require.NoError(t, err)

	var profiles []model.TutorProfile
	require.NoError(t, db.Where("user_id = ?", tutor.ID).Find(&profiles).Error)
	require.Len(t, profiles, 1, "existing profile is untouched")
	assert.Equal(t, model.CategoryALevels, profiles[0].Category)
}

func TestChangeRoleSelfDemotionForbidden(t *testing.T) {
	service, db := newUserService(t)

	admin := model.User{FirebaseUID: "uid-admin", Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	_, err := service.ChangeRole(context.Background(), &admin, admin.ID, model.RoleStaff, AuditMeta{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	service, _ := newUserService(t)
	admin := model.User{ID: 1, Role: model.RoleAdmin}

	_, err := service.ChangeRole(context.Background(), &admin, 2, "superuser", AuditMeta{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChangeRoleRecordsAudit(t *testing.T) {
	service, db := newUserService(t)

	admin := model.User{FirebaseUID: "uid-admin", Email: "admin@example.com", Role: model.RoleAdmin}
	guest := model.User{FirebaseUID: "uid-guest", Email: "g@example.com", Role: model.RoleGuest}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&guest).Error)

	_, err := service.ChangeRole(context.Background(), &admin, guest.ID, model.RoleStudent, AuditMeta{RequestID: "req-1"})
	require.NoError(t, err)

	var entry model.AuditLog
	require.NoError(t, db.Where("action = ?", "user_role_change").First(&entry).Error)
	assert.Equal(t, admin.ID, entry.ActorID)
	assert.Equal(t, guest.ID, entry.EntityID)
	assert.Equal(t, "req-1", entry.RequestID)
}
