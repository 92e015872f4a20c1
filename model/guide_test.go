package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuideLocalize(t *testing.T) {
	guide := Guide{
		ID:       7,
		Slug:     "getting-started",
		Category: "basics",
		Title:    "Getting Started",
		Content:  "Welcome!",
		Translations: []GuideTranslation{
			{GuideID: 7, Lang: "es", Title: "Primeros pasos", Content: "¡Bienvenido!"},
		},
	}

	t.Run("matching translation", func(t *testing.T) {
		localized := guide.Localize("es")
		assert.Equal(t, "es", localized.Lang)
		assert.Equal(t, "Primeros pasos", localized.Title)
		assert.Equal(t, "¡Bienvenido!", localized.Content)
		assert.Equal(t, "getting-started", localized.Slug)
	})

	t.Run("missing translation falls back to default", func(t *testing.T) {
		localized := guide.Localize("fr")
		assert.Equal(t, DefaultGuideLang, localized.Lang)
		assert.Equal(t, "Getting Started", localized.Title)
		assert.Equal(t, "Welcome!", localized.Content)
	})

	t.Run("empty and default lang resolve to default content", func(t *testing.T) {
		for _, lang := range []string{"", DefaultGuideLang} {
			localized := guide.Localize(lang)
			assert.Equal(t, DefaultGuideLang, localized.Lang)
			assert.Equal(t, "Getting Started", localized.Title)
		}
	})
}
