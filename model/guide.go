package model

import (
	"time"
)

// DefaultGuideLang is the language guides are authored in; requests for
// a missing translation fall back to this content.
const DefaultGuideLang = "en"

// Guide is a help article published on the platform. Title and Content
// hold the default-language text; translated variants live in
// GuideTranslation rows.
type Guide struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Category  string    `gorm:"type:varchar(100);index" json:"category"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Published bool      `gorm:"default:true" json:"published"`

	Translations []GuideTranslation `gorm:"foreignKey:GuideID;constraint:OnDelete:CASCADE" json:"-"`
}

// GuideTranslation is one localized variant of a guide.
type GuideTranslation struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	GuideID uint   `gorm:"not null;uniqueIndex:idx_guide_lang" json:"guide_id"`
	Lang    string `gorm:"type:varchar(10);not null;uniqueIndex:idx_guide_lang" json:"lang"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
}

// LocalizedGuide is the API shape for a guide resolved to one language.
type LocalizedGuide struct {
	ID        uint      `json:"id"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category"`
	Lang      string    `json:"lang"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Localize resolves the guide to the requested language, falling back
// to the default-language content when no matching translation exists.
func (g *Guide) Localize(lang string) LocalizedGuide {
	out := LocalizedGuide{
		ID:        g.ID,
		Slug:      g.Slug,
		Category:  g.Category,
		Lang:      DefaultGuideLang,
		Title:     g.Title,
		Content:   g.Content,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if lang == "" || lang == DefaultGuideLang {
		return out
	}
	for _, tr := range g.Translations {
		if tr.Lang == lang {
			out.Lang = tr.Lang
			out.Title = tr.Title
			out.Content = tr.Content
			return out
		}
	}
	return out
}
