package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerup-backend/internal/models"
	"towerup-backend/internal/store"
	"towerup-backend/internal/store/storetest"
)

func TestGormRepositoryCreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := store.NewGormRepository[models.Partner](storetest.NewDB(t))

	for i, name := range []string{"Kcell", "Halyk Bank", "BI Group"} {
		require.NoError(t, repo.Create(ctx, &models.Partner{Name: name, LogoURL: "/logos/" + name + ".png", DisplayOrder: 3 - i}))
	}

	rows, err := repo.List(ctx, store.Query{}.OrderBy("display_order", false))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "BI Group", rows[0].Name)
	assert.Equal(t, "Halyk Bank", rows[1].Name)
	assert.Equal(t, "Kcell", rows[2].Name)
	assert.NotEqual(t, uuid.Nil, rows[0].ID)

	limited, err := repo.List(ctx, store.Query{}.OrderBy("display_order", true).Take(1))
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Kcell", limited[0].Name)
}

func TestGormRepositoryRoundTripsTypedColumns(t *testing.T) {
	ctx := context.Background()
	repo := store.NewGormRepository[models.FloorPlan](storetest.NewDB(t))

	plan := &models.FloorPlan{
		ProjectID:   uuid.New(),
		RoomType:    "2-комнатная",
		Area:        decimal.RequireFromString("55.5"),
		PricePerSqm: decimal.NewFromInt(12000000),
	}
	require.NoError(t, repo.Create(ctx, plan))

	got, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.True(t, got.Area.Equal(decimal.RequireFromString("55.5")))
	assert.True(t, got.PricePerSqm.Equal(decimal.NewFromInt(12000000)))
	assert.Equal(t, plan.ProjectID, got.ProjectID)
}

func TestGormRepositoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := store.NewGormRepository[models.Vacancy](storetest.NewDB(t))

	require.NoError(t, repo.CreateMany(ctx, []models.Vacancy{
		{Title: "Инженер ПТО", IsActive: true, DisplayOrder: 1},
		{Title: "Прораб", IsActive: false, DisplayOrder: 2},
		{Title: "Сметчик", IsActive: true, DisplayOrder: 3},
	}))

	active, err := repo.List(ctx, store.Query{}.Where("is_active", true).OrderBy("display_order", false))
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Инженер ПТО", active[0].Title)
	assert.Equal(t, "Сметчик", active[1].Title)

	n, err := repo.Count(ctx, store.Query{}.Where("is_active", false))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGormRepositoryUpdateWritesZeroValues(t *testing.T) {
	ctx := context.Background()
	repo := store.NewGormRepository[models.News](storetest.NewDB(t))

	news := &models.News{Title: "Старт продаж", Summary: "s", Content: "c", Featured: true, Images: []string{"/a.jpg"}}
	require.NoError(t, repo.Create(ctx, news))

	news.Featured = false
	news.Images = []string{}
	require.NoError(t, repo.Update(ctx, news))

	got, err := repo.Get(ctx, news.ID)
	require.NoError(t, err)
	assert.False(t, got.Featured)
	assert.Empty(t, got.Images)
}

func TestGormRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := store.NewGormRepository[models.Department](storetest.NewDB(t))

	_, err := repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	missing := &models.Department{Name: "Ghost"}
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, missing), store.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), store.ErrNotFound)
}

func TestGormRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := store.NewGormRepository[models.Department](storetest.NewDB(t))

	dept := &models.Department{Name: "Отдел продаж"}
	require.NoError(t, repo.Create(ctx, dept))
	require.NoError(t, repo.Delete(ctx, dept.ID))

	n, err := repo.Count(ctx, store.Query{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
