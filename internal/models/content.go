package models

import (
	"strings"
	"time"
)

type News struct {
	Base
	Title       string    `json:"title" gorm:"not null"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at" gorm:"index"`
	Featured    bool      `json:"featured"`
	VideoURL    string    `json:"video_url,omitempty"`
	Images      []string  `json:"images" gorm:"serializer:json"`
}

func (News) TableName() string { return "news" }

// Paragraphs splits the article body on blank lines, dropping empty blocks.
func (n News) Paragraphs() []string {
	body := strings.ReplaceAll(n.Content, "\r\n", "\n")
	paragraphs := []string{}
	for _, block := range strings.Split(body, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

type Vacancy struct {
	Base
	Title          string `json:"title" gorm:"not null"`
	Location       string `json:"location"`
	SalaryRange    string `json:"salary_range"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	Benefits       string `json:"benefits"`
	EmploymentType string `json:"employment_type"`
	IsActive       bool   `json:"is_active"`
	DisplayOrder   int    `json:"display_order"`
}

func (Vacancy) TableName() string { return "vacancies" }

type Tender struct {
	Base
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	IsActive    bool       `json:"is_active"`
	Documents   []string   `json:"documents" gorm:"serializer:json"`
}

func (Tender) TableName() string { return "tenders" }

type Partner struct {
	Base
	Name         string `json:"name" gorm:"uniqueIndex;not null"`
	LogoURL      string `json:"logo_url"`
	WebsiteURL   string `json:"website_url"`
	DisplayOrder int    `json:"display_order"`
}

func (Partner) TableName() string { return "partners" }
