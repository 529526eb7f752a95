package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewsParagraphs(t *testing.T) {
	news := News{Content: "Первый абзац.\r\n\r\nВторой абзац\nс переносом.\n\n\n\n  \n\nТретий."}

	assert.Equal(t, []string{
		"Первый абзац.",
		"Второй абзац\nс переносом.",
		"Третий.",
	}, news.Paragraphs())
}

func TestNewsParagraphsEmpty(t *testing.T) {
	assert.Empty(t, News{}.Paragraphs())
	assert.NotNil(t, News{}.Paragraphs())
}

func TestProjectStatusBadgeColor(t *testing.T) {
	assert.Equal(t, "blue", ProjectStatusDesigning.BadgeColor())
	assert.Equal(t, "orange", ProjectStatusBuilding.BadgeColor())
	assert.Equal(t, "green", ProjectStatusCompleted.BadgeColor())
	assert.Equal(t, "purple", ProjectStatusUpcoming.BadgeColor())
	assert.Equal(t, "teal", ProjectStatusActive.BadgeColor())
	assert.Equal(t, "gray", ProjectStatus("archived").BadgeColor())
}
