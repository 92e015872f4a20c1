package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// SessionService manages class sessions and the two-party attendance
// reconciliation state machine.
type SessionService struct {
	db            *gorm.DB
	notifications *NotificationService
	audit         *AuditService
	dispatcher    *dispatch.Dispatcher
}

// NewSessionService creates a new session service
func NewSessionService(db *gorm.DB, notifications *NotificationService, audit *AuditService, dispatcher *dispatch.Dispatcher) *SessionService {
	return &SessionService{
		db:            db,
		notifications: notifications,
		audit:         audit,
		dispatcher:    dispatcher,
	}
}

// CreateSessionInput is the tutor-provided shape of a new session.
type CreateSessionInput struct {
	EnrollmentID    uint      `json:"enrollment_id" validate:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"gte=0,lte=240"`
}

// Create schedules a session. Only the enrollment's tutor may create
// sessions, and only on an active enrollment.
func (s *SessionService) Create(ctx context.Context, tutor *model.User, input CreateSessionInput, meta AuditMeta) (*model.Session, error) {
	var enrollment model.Enrollment
	err := s.db.WithContext(ctx).First(&enrollment, input.EnrollmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: enrollment not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if enrollment.TutorID != tutor.ID {
		return nil, fmt.Errorf("%w: not your enrollment", ErrForbidden)
	}
	if enrollment.Status != model.EnrollmentActive {
		return nil, fmt.Errorf("%w: enrollment is not active", ErrValidation)
	}

	duration := input.DurationMinutes
	if duration == 0 {
		duration = enrollment.ClassDuration
	}

	session := &model.Session{
		EnrollmentID:    enrollment.ID,
		ScheduledAt:     input.ScheduledAt,
		DurationMinutes: duration,
		Status:          model.SessionScheduled,
		StudentMark:     model.MarkUnset,
		TutorMark:       model.MarkUnset,
		FinalMark:       model.MarkUnset,
	}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	studentID := enrollment.StudentID
	scheduledAt := session.ScheduledAt
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "session_notify_student",
		Fn: func(taskCtx context.Context) error {
			return s.notifications.Notify(taskCtx, studentID, model.NotificationSession,
				"Session scheduled", fmt.Sprintf("A new session was scheduled for %s.", scheduledAt.Format(time.RFC1123)))
		},
	})

	return session, nil
}

// ListForUser returns sessions on enrollments where the caller is
// student or tutor, newest first.
func (s *SessionService) ListForUser(ctx context.Context, userID uint) ([]model.Session, error) {
	var sessions []model.Session
	err := s.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.id = sessions.enrollment_id").
		Where("enrollments.student_id = ? OR enrollments.tutor_id = ?", userID, userID).
		Order("sessions.scheduled_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// MarkAttendance records one party's self-report and derives the final
// mark. Each party's mark is overwritten in place (last write wins per
// party, no history); when both marks are in, agreement wins and
// disagreement resolves to the tutor's mark. Re-marking the same value
// is an effective no-op apart from the refreshed timestamp.
func (s *SessionService) MarkAttendance(ctx context.Context, actor *model.User, sessionID uint, mark model.AttendanceMark, meta AuditMeta) (*model.Session, error) {
	if !model.ValidAttendanceMark(mark) {
		return nil, fmt.Errorf("%w: invalid attendance status %q", ErrValidation, mark)
	}

	var session model.Session
	err := s.db.WithContext(ctx).Preload("Enrollment").First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: session not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{}
	switch actor.ID {
	case session.Enrollment.StudentID:
		session.StudentMark = mark
		session.StudentMarkedAt = &now
		updates["student_mark"] = mark
		updates["student_marked_at"] = now
	case session.Enrollment.TutorID:
		session.TutorMark = mark
		session.TutorMarkedAt = &now
		updates["tutor_mark"] = mark
		updates["tutor_marked_at"] = now
	default:
		return nil, fmt.Errorf("%w: not a party to this session", ErrForbidden)
	}

	session.FinalMark = model.ResolveFinalMark(session.StudentMark, session.TutorMark)
	updates["final_mark"] = session.FinalMark

	if err := s.db.WithContext(ctx).Model(&model.Session{}).Where("id = ?", session.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark attendance: %w", err)
	}

	actorID := actor.ID
	finalMark := session.FinalMark
	s.dispatcher.Enqueue(dispatch.Task{
		Name: "attendance_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     "session_mark_attendance",
				EntityType: "session",
				EntityID:   sessionID,
				Changes:    map[string]interface{}{"mark": mark, "final_mark": finalMark},
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})

	return &session, nil
}
