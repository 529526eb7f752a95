package seed

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
)

// SeedIfEmpty inserts rows in one bulk write when the table is empty and
// reports how many rows it inserted. A non-empty table is left alone.
func SeedIfEmpty[T any](ctx context.Context, repo store.Repository[T], rows []T) (int, error) {
	n, err := repo.Count(ctx, store.Query{})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	if err := repo.CreateMany(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Seeder populates empty tables with the embedded datasets. It remembers which
// tables it has handled so repeated runs in one process skip them without a
// round trip. Two processes seeding the same empty table at once can still
// both insert.
type Seeder struct {
	repos *store.Repositories
	log   *zap.Logger

	mu   sync.Mutex
	done map[string]bool
}

func NewSeeder(repos *store.Repositories, log *zap.Logger) *Seeder {
	return &Seeder{repos: repos, log: log.Named("seed"), done: make(map[string]bool)}
}

// Result maps table name to rows inserted by this run.
type Result map[string]int

func (s *Seeder) Run(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := Result{}
	steps := []struct {
		table string
		run   func(context.Context) (int, error)
	}{
		{s.repos.Partners.Table(), s.seedPartners},
		{s.repos.Vacancies.Table(), s.seedVacancies},
		{s.repos.Projects.Table(), s.seedProjects},
	}

	for _, step := range steps {
		if s.done[step.table] {
			continue
		}
		n, err := step.run(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to seed %s: %w", step.table, err)
		}
		s.done[step.table] = true
		result[step.table] = n
		if n > 0 {
			s.log.Info("seeded table", zap.String("table", step.table), zap.Int("rows", n))
		}
	}
	return result, nil
}

func (s *Seeder) seedPartners(ctx context.Context) (int, error) {
	rows, err := Partners()
	if err != nil {
		return 0, err
	}
	return SeedIfEmpty(ctx, s.repos.Partners, rows)
}

func (s *Seeder) seedVacancies(ctx context.Context) (int, error) {
	rows, err := Vacancies()
	if err != nil {
		return 0, err
	}
	return SeedIfEmpty(ctx, s.repos.Vacancies, rows)
}

// seedProjects inserts the sample projects and their floor plans. Plans are
// only added for projects created by this run.
func (s *Seeder) seedProjects(ctx context.Context) (int, error) {
	n, err := s.repos.Projects.Count(ctx, store.Query{})
	if err != nil || n > 0 {
		return 0, err
	}

	samples, err := Projects()
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, sample := range samples {
		project := sample.Project
		if err := s.repos.Projects.Create(ctx, &project); err != nil {
			return inserted, err
		}
		inserted++

		plans := make([]models.FloorPlan, len(sample.FloorPlans))
		for i, plan := range sample.FloorPlans {
			plan.ProjectID = project.ID
			plans[i] = plan
		}
		if err := s.repos.FloorPlans.CreateMany(ctx, plans); err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}
