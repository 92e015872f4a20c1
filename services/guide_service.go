package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorslink/api/model"
	"github.com/tutorslink/api/services/dispatch"
	"gorm.io/gorm"
)

// GuideService manages help articles and their translations.
type GuideService struct {
	db         *gorm.DB
	audit      *AuditService
	dispatcher *dispatch.Dispatcher
}

// NewGuideService creates a new guide service
func NewGuideService(db *gorm.DB, audit *AuditService, dispatcher *dispatch.Dispatcher) *GuideService {
	return &GuideService{
		db:         db,
		audit:      audit,
		dispatcher: dispatcher,
	}
}

// ListPublished returns published guides localized to lang, optionally
// filtered by category.
func (s *GuideService) ListPublished(ctx context.Context, category, lang string) ([]model.LocalizedGuide, error) {
	query := s.db.WithContext(ctx).Preload("Translations").Where("published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var guides []model.Guide
	if err := query.Order("created_at DESC").Find(&guides).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch guides: %w", err)
	}

	out := make([]model.LocalizedGuide, 0, len(guides))
	for i := range guides {
		out = append(out, guides[i].Localize(lang))
	}
	return out, nil
}

// GetBySlug returns one published guide localized to lang.
func (s *GuideService) GetBySlug(ctx context.Context, slug, lang string) (*model.LocalizedGuide, error) {
	var guide model.Guide
	err := s.db.WithContext(ctx).Preload("Translations").
		Where("slug = ? AND published = ?", slug, true).First(&guide).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: guide not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	localized := guide.Localize(lang)
	return &localized, nil
}

// GuideInput is the admin-provided shape for creating or updating a
// guide's default-language content.
type GuideInput struct {
	Slug      string `json:"slug" validate:"required,max=255"`
	Category  string `json:"category" validate:"max=100"`
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content" validate:"required"`
	Published *bool  `json:"published"`
}

// Create publishes a new guide.
func (s *GuideService) Create(ctx context.Context, admin *model.User, input GuideInput, meta AuditMeta) (*model.Guide, error) {
	guide := &model.Guide{
		Slug:      input.Slug,
		Category:  input.Category,
		Title:     input.Title,
		Content:   input.Content,
		Published: true,
	}
	if input.Published != nil {
		guide.Published = *input.Published
	}

	if err := s.db.WithContext(ctx).Create(guide).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: a guide with this slug already exists", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create guide: %w", err)
	}

	s.recordAudit(admin.ID, "guide_create", guide.ID, guide, meta)
	return guide, nil
}

// Update modifies an existing guide's default-language content.
func (s *GuideService) Update(ctx context.Context, admin *model.User, guideID uint, input GuideInput, meta AuditMeta) (*model.Guide, error) {
	var guide model.Guide
	err := s.db.WithContext(ctx).First(&guide, guideID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: guide not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	guide.Slug = input.Slug
	guide.Category = input.Category
	guide.Title = input.Title
	guide.Content = input.Content
	if input.Published != nil {
		guide.Published = *input.Published
	}

	if err := s.db.WithContext(ctx).Save(&guide).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: a guide with this slug already exists", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update guide: %w", err)
	}

	s.recordAudit(admin.ID, "guide_update", guide.ID, &guide, meta)
	return &guide, nil
}

// TranslationInput is one localized variant of a guide.
type TranslationInput struct {
	Lang    string `json:"lang" validate:"required,max=10"`
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// UpsertTranslation creates or replaces the translation for one
// language of a guide.
func (s *GuideService) UpsertTranslation(ctx context.Context, admin *model.User, guideID uint, input TranslationInput, meta AuditMeta) (*model.GuideTranslation, error) {
	if input.Lang == model.DefaultGuideLang {
		return nil, fmt.Errorf("%w: default-language content lives on the guide itself", ErrValidation)
	}

	var guide model.Guide
	err := s.db.WithContext(ctx).First(&guide, guideID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: guide not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var tr model.GuideTranslation
	err = s.db.WithContext(ctx).
		Where("guide_id = ? AND lang = ?", guideID, input.Lang).First(&tr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		tr = model.GuideTranslation{GuideID: guideID, Lang: input.Lang, Title: input.Title, Content: input.Content}
		if err := s.db.WithContext(ctx).Create(&tr).Error; err != nil {
			return nil, fmt.Errorf("failed to create translation: %w", err)
		}
	case err != nil:
		return nil, err
	default:
		tr.Title = input.Title
		tr.Content = input.Content
		if err := s.db.WithContext(ctx).Save(&tr).Error; err != nil {
			return nil, fmt.Errorf("failed to update translation: %w", err)
		}
	}

	s.recordAudit(admin.ID, "guide_translation_upsert", guideID, &tr, meta)
	return &tr, nil
}

// Delete removes a guide and, through the FK constraint, its
// translations.
func (s *GuideService) Delete(ctx context.Context, admin *model.User, guideID uint, meta AuditMeta) error {
	result := s.db.WithContext(ctx).Delete(&model.Guide{}, guideID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete guide: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: guide not found", ErrNotFound)
	}

	s.recordAudit(admin.ID, "guide_delete", guideID, nil, meta)
	return nil
}

func (s *GuideService) recordAudit(actorID uint, action string, entityID uint, changes interface{}, meta AuditMeta) {
	s.dispatcher.Enqueue(dispatch.Task{
		Name: action + "_audit",
		Fn: func(taskCtx context.Context) error {
			return s.audit.Record(taskCtx, AuditEntry{
				ActorID:    actorID,
				Action:     action,
				EntityType: "guide",
				EntityID:   entityID,
				Changes:    changes,
				RequestID:  meta.RequestID,
				IPAddress:  meta.IPAddress,
				UserAgent:  meta.UserAgent,
			})
		},
	})
}
