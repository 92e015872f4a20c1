package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorslink/api/config"
	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

func newApplicationService(t *testing.T) (*ApplicationService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t, &model.User{}, &model.TutorApplication{}, &model.Notification{}, &model.AuditLog{})
	service := NewApplicationService(db,
		NewNotificationService(db),
		NewEmailService(&config.EnvironmentVariable{}),
		NewWebhookService(""),
		NewAuditService(db),
		dispatch.NewSync())
	return service, db
}

func validApplicationInput() CreateApplicationInput {
	return CreateApplicationInput{
		FullName:       "Dana Applicant",
		Email:          "dana@example.com",
		Subjects:       "Mathematics",
		Experience:     "5 years of tutoring",
		Qualifications: "BSc Mathematics",
		AgreeToTerms:   true,
	}
}

func TestApplicationCreateRequiresTermsAgreement(t *testing.T) {
	service, db := newApplicationService(t)

	input := validApplicationInput()
	input.AgreeToTerms = false

	_, err := service.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&model.TutorApplication{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "nothing persisted on rejection")
}

func TestApplicationCreatePendingWithStaffNotification(t *testing.T) {
	service, db := newApplicationService(t)

	staff := model.User{FirebaseUID: "uid-staff", Email: "staff@example.com", Role: model.RoleStaff}
	require.NoError(t, db.Create(&staff).Error)

	application, err := service.Create(context.Background(), validApplicationInput())
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, application.Status)
	assert.True(t, application.AgreeToTerms)

	var notifications []model.Notification
	require.NoError(t, db.Where("user_id = ?", staff.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "New tutor application", notifications[0].Title)
}

func TestApplicationUpdateStatusApprovesPending(t *testing.T) {
	service, db := newApplicationService(t)

	admin := model.User{FirebaseUID: "uid-admin", Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	application, err := service.Create(context.Background(), validApplicationInput())
	require.NoError(t, err)

	updated, err := service.UpdateStatus(context.Background(), &admin, application.ID, model.ApplicationApproved, AuditMeta{})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationApproved, updated.Status)

	var audits int64
	require.NoError(t, db.Model(&model.AuditLog{}).
		Where("action = ?", "application_status_change").Count(&audits).Error)
	assert.EqualValues(t, 1, audits)
}

func TestApplicationUpdateStatusDecisionIsTerminal(t *testing.T) {
	service, db := newApplicationService(t)

	admin := model.User{FirebaseUID: "uid-admin", Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	application, err := service.Create(context.Background(), validApplicationInput())
	require.NoError(t, err)
	_, err = service.UpdateStatus(context.Background(), &admin, application.ID, model.ApplicationApproved, AuditMeta{})
	require.NoError(t, err)

	_, err = service.UpdateStatus(context.Background(), &admin, application.ID, model.ApplicationRejected, AuditMeta{})
	assert.ErrorIs(t, err, ErrValidation)

	// Re-asserting the current status is a no-op, not a transition.
	updated, err := service.UpdateStatus(context.Background(), &admin, application.ID, model.ApplicationApproved, AuditMeta{})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationApproved, updated.Status)
}

func TestApplicationUpdateStatusUnknownValues(t *testing.T) {
	service, _ := newApplicationService(t)
	admin := model.User{ID: 1, Role: model.RoleAdmin}

	_, err := service.UpdateStatus(context.Background(), &admin, 1, "archived", AuditMeta{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.UpdateStatus(context.Background(), &admin, 999, model.ApplicationApproved, AuditMeta{})
	assert.ErrorIs(t, err, ErrNotFound)
}
