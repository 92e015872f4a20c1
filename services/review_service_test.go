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

func newReviewService(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t, &model.User{}, &model.TutorProfile{}, &model.Enrollment{},
		&model.Review{}, &model.Notification{}, &model.AuditLog{})
	return NewReviewService(db, NewNotificationService(db), NewAuditService(db), dispatch.NewSync()), db
}

func seedReviewPair(t *testing.T, db *gorm.DB) (student, tutor model.User, enrollment model.Enrollment) {
	t.Helper()

	student = model.User{FirebaseUID: "uid-student", Email: "s@example.com", Role: model.RoleStudent}
	tutor = model.User{FirebaseUID: "uid-tutor", Email: "t@example.com", Role: model.RoleTutor}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&tutor).Error)

	enrollment = model.Enrollment{
		StudentID:      student.ID,
		TutorID:        tutor.ID,
		MonthlyRate:    200,
		CommissionRate: 0.15,
		Status:         model.EnrollmentActive,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return student, tutor, enrollment
}

func TestRecomputeCreatesProfileForProfilelessTutor(t *testing.T) {
	service, db := newReviewService(t)
	student, tutor, enrollment := seedReviewPair(t, db)

	// A tutor elevated by role change before the profile-stub backfill
	// may carry visible reviews with no profile row to aggregate into.
	require.NoError(t, db.Create(&model.Review{
		StudentID:    student.ID,
		TutorID:      tutor.ID,
		EnrollmentID: enrollment.ID,
		Rating:       4,
		IsVisible:    true,
	}).Error)

	require.NoError(t, service.RecomputeTutorRating(context.Background(), tutor.ID))

	var profile model.TutorProfile
	require.NoError(t, db.Where("user_id = ?", tutor.ID).First(&profile).Error)
	assert.InDelta(t, 4.0, profile.RatingAverage, 1e-9)
	assert.Equal(t, 1, profile.RatingCount)
}

func TestRecomputeUpdatesExistingProfile(t *testing.T) {
	service, db := newReviewService(t)
	student, tutor, enrollment := seedReviewPair(t, db)
	require.NoError(t, db.Create(&model.TutorProfile{
		UserID: tutor.ID, Subjects: "Maths", Price: "30 USD/hour", Category: model.CategoryIGCSE,
	}).Error)

	require.NoError(t, db.Create(&model.Review{
		StudentID: student.ID, TutorID: tutor.ID, EnrollmentID: enrollment.ID,
		Rating: 5, IsVisible: true,
	}).Error)
	require.NoError(t, db.Create(&model.Review{
		StudentID: student.ID, TutorID: tutor.ID, EnrollmentID: enrollment.ID + 1000,
		Rating: 2, IsVisible: true,
	}).Error)
	require.NoError(t, db.Create(&model.Review{
		StudentID: student.ID, TutorID: tutor.ID, EnrollmentID: enrollment.ID + 2000,
		Rating: 1, IsVisible: false,
	}).Error)

	require.NoError(t, service.RecomputeTutorRating(context.Background(), tutor.ID))

	var profile model.TutorProfile
	require.NoError(t, db.Where("user_id = ?", tutor.ID).First(&profile).Error)
	assert.InDelta(t, 3.5, profile.RatingAverage, 1e-9, "hidden reviews are excluded")
	assert.Equal(t, 2, profile.RatingCount)
	assert.Equal(t, model.CategoryIGCSE, profile.Category, "recompute leaves profile fields alone")
}

func TestReviewCreateAggregatesAndNotifies(t *testing.T) {
	service, db := newReviewService(t)
	student, tutor, enrollment := seedReviewPair(t, db)
	require.NoError(t, db.Create(&model.TutorProfile{
		UserID: tutor.ID, Subjects: "Maths", Price: "30 USD/hour", Category: model.CategoryOther,
	}).Error)

	review, err := service.Create(context.Background(), &student, CreateReviewInput{
		TutorID:      tutor.ID,
		EnrollmentID: enrollment.ID,
		Rating:       4,
		Title:        "Great sessions",
	}, AuditMeta{})
	require.NoError(t, err)
	assert.True(t, review.IsVisible)

	var profile model.TutorProfile
	require.NoError(t, db.Where("user_id = ?", tutor.ID).First(&profile).Error)
	assert.InDelta(t, 4.0, profile.RatingAverage, 1e-9)
	assert.Equal(t, 1, profile.RatingCount)

	var notifications int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("user_id = ?", tutor.ID).Count(&notifications).Error)
	assert.EqualValues(t, 1, notifications)
}

func TestReviewCreateRequiresOwnEnrollment(t *testing.T) {
	service, db := newReviewService(t)
	_, tutor, enrollment := seedReviewPair(t, db)

	outsider := model.User{FirebaseUID: "uid-other", Email: "o@example.com", Role: model.RoleStudent}
	require.NoError(t, db.Create(&outsider).Error)

	_, err := service.Create(context.Background(), &outsider, CreateReviewInput{
		TutorID:      tutor.ID,
		EnrollmentID: enrollment.ID,
		Rating:       5,
	}, AuditMeta{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReviewCreateRejectsSecondReviewPerEnrollment(t *testing.T) {
	service, db := newReviewService(t)
	student, tutor, enrollment := seedReviewPair(t, db)
	require.NoError(t, db.Create(&model.TutorProfile{
		UserID: tutor.ID, Subjects: "Maths", Price: "30 USD/hour", Category: model.CategoryOther,
	}).Error)

	input := CreateReviewInput{TutorID: tutor.ID, EnrollmentID: enrollment.ID, Rating: 3}
	_, err := service.Create(context.Background(), &student, input, AuditMeta{})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), &student, input, AuditMeta{})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestReviewCreateRatingBounds(t *testing.T) {
	service, db := newReviewService(t)
	student, tutor, enrollment := seedReviewPair(t, db)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Create(context.Background(), &student, CreateReviewInput{
			TutorID:      tutor.ID,
			EnrollmentID: enrollment.ID,
			Rating:       rating,
		}, AuditMeta{})
		assert.ErrorIs(t, err, ErrValidation, "rating %d", rating)
	}
}
