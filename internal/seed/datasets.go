package seed

import (
	"embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"towerup-backend/internal/models"
)

//go:embed data/*.yaml
var dataFS embed.FS

type partnerRecord struct {
	Name       string `yaml:"name"`
	LogoURL    string `yaml:"logo_url"`
	WebsiteURL string `yaml:"website_url"`
}

type vacancyRecord struct {
	Title          string `yaml:"title"`
	Location       string `yaml:"location"`
	SalaryRange    string `yaml:"salary_range"`
	EmploymentType string `yaml:"employment_type"`
	Description    string `yaml:"description"`
	Requirements   string `yaml:"requirements"`
	Benefits       string `yaml:"benefits"`
}

type floorPlanRecord struct {
	RoomType    string `yaml:"room_type"`
	Area        string `yaml:"area"`
	PricePerSqm string `yaml:"price_per_sqm"`
	ImageURL    string `yaml:"image_url"`
}

type projectRecord struct {
	Slug        string            `yaml:"slug"`
	Title       string            `yaml:"title"`
	Subtitle    string            `yaml:"subtitle"`
	Description string            `yaml:"description"`
	Status      string            `yaml:"status"`
	Location    string            `yaml:"location"`
	Address     string            `yaml:"address"`
	CoverImage  string            `yaml:"cover_image"`
	Images      []string          `yaml:"images"`
	IsFuture    bool              `yaml:"is_future"`
	FloorPlans  []floorPlanRecord `yaml:"floor_plans"`
}

func load[T any](name string) ([]T, error) {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", name, err)
	}
	var records []T
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", name, err)
	}
	return records, nil
}

func Partners() ([]models.Partner, error) {
	records, err := load[partnerRecord]("partners.yaml")
	if err != nil {
		return nil, err
	}
	rows := make([]models.Partner, 0, len(records))
	for i, r := range records {
		rows = append(rows, models.Partner{
			Name:         r.Name,
			LogoURL:      r.LogoURL,
			WebsiteURL:   r.WebsiteURL,
			DisplayOrder: i,
		})
	}
	return rows, nil
}

func Vacancies() ([]models.Vacancy, error) {
	records, err := load[vacancyRecord]("vacancies.yaml")
	if err != nil {
		return nil, err
	}
	rows := make([]models.Vacancy, 0, len(records))
	for i, r := range records {
		rows = append(rows, models.Vacancy{
			Title:          r.Title,
			Location:       r.Location,
			SalaryRange:    r.SalaryRange,
			EmploymentType: r.EmploymentType,
			Description:    r.Description,
			Requirements:   r.Requirements,
			Benefits:       r.Benefits,
			IsActive:       true,
			DisplayOrder:   i,
		})
	}
	return rows, nil
}

// ProjectSample is a project together with the floor plans seeded for it.
type ProjectSample struct {
	Project    models.Project
	FloorPlans []models.FloorPlan
}

func Projects() ([]ProjectSample, error) {
	records, err := load[projectRecord]("projects.yaml")
	if err != nil {
		return nil, err
	}

	samples := make([]ProjectSample, 0, len(records))
	for i, r := range records {
		sample := ProjectSample{Project: models.Project{
			Slug:         r.Slug,
			Title:        r.Title,
			Subtitle:     r.Subtitle,
			Description:  r.Description,
			Status:       models.ProjectStatus(r.Status),
			Location:     r.Location,
			Address:      r.Address,
			CoverImage:   r.CoverImage,
			Images:       append([]string{}, r.Images...),
			IsFuture:     r.IsFuture,
			DisplayOrder: i,
		}}
		for j, fp := range r.FloorPlans {
			area, err := decimal.NewFromString(fp.Area)
			if err != nil {
				return nil, fmt.Errorf("project %s plan %d: bad area: %w", r.Slug, j, err)
			}
			price, err := decimal.NewFromString(fp.PricePerSqm)
			if err != nil {
				return nil, fmt.Errorf("project %s plan %d: bad price: %w", r.Slug, j, err)
			}
			sample.FloorPlans = append(sample.FloorPlans, models.FloorPlan{
				RoomType:     fp.RoomType,
				Area:         area,
				PricePerSqm:  price,
				ImageURL:     fp.ImageURL,
				DisplayOrder: j,
			})
		}
		samples = append(samples, sample)
	}
	return samples, nil
}
