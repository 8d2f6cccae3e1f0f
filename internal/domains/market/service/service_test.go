package service

import (
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"agromap-backend/internal/domains/market/model"
	mediaModel "agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================================================
// FAKES
// =====================================================

type fakeRepo struct {
	mu            sync.Mutex
	markets       map[uuid.UUID]*model.Market
	productImages map[uuid.UUID][]string
	provinceCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{markets: map[uuid.UUID]*model.Market{}, productImages: map[uuid.UUID][]string{}}
}

func (r *fakeRepo) List(_ context.Context, f model.ListFilter) ([]model.MarketListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MarketListItem
	for _, m := range r.markets {
		if f.Province != nil && m.Province != *f.Province {
			continue
		}
		out = append(out, model.MarketListItem{Market: *m})
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Market, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.markets[id]
	if !ok {
		return nil, model.ErrMarketNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) GetDetail(ctx context.Context, id uuid.UUID) (*model.MarketDetail, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.MarketDetail{Market: *m, Manager: model.Manager{ID: m.ManagerID}, Products: []model.ProductSummary{}}, nil
}

func (r *fakeRepo) GetIDByManager(_ context.Context, managerID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.markets {
		if m.ManagerID == managerID {
			return id, nil
		}
	}
	return uuid.Nil, model.ErrNoMarketYet
}

func (r *fakeRepo) ExistsForManager(ctx context.Context, managerID uuid.UUID) (bool, error) {
	_, err := r.GetIDByManager(ctx, managerID)
	return err == nil, nil
}

func (r *fakeRepo) Create(_ context.Context, m *model.Market) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	cp := *m
	r.markets[m.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, m *model.Market) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.markets[m.ID]; !ok {
		return model.ErrMarketNotFound
	}
	cp := *m
	r.markets[m.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.markets[id]; !ok {
		return nil, model.ErrMarketNotFound
	}
	delete(r.markets, id)
	return r.productImages[id], nil
}

func (r *fakeRepo) Provinces(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provinceCalls++
	var out []string
	for _, m := range r.markets {
		out = append(out, m.Province)
	}
	return out, nil
}

type fakeUploader struct{ n int }

func (u *fakeUploader) Upload(_ context.Context, folder mediaModel.Folder, _ mediaModel.File) (string, error) {
	u.n++
	return "http://minio/agromap/" + string(folder) + "/" + uuid.NewString() + ".jpg", nil
}

func (u *fakeUploader) UploadAll(ctx context.Context, folder mediaModel.Folder, files []mediaModel.File) ([]string, error) {
	urls := []string{}
	for _, f := range files {
		url, _ := u.Upload(ctx, folder, f)
		urls = append(urls, url)
	}
	return urls, nil
}

type fakeCleaner struct {
	batches [][]string
}

func (c *fakeCleaner) Enqueue(_ context.Context, urls []string, _ string) error {
	if len(urls) > 0 {
		c.batches = append(c.batches, urls)
	}
	return nil
}

func (c *fakeCleaner) all() []string {
	var out []string
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}

type fixture struct {
	svc     *marketService
	repo    *fakeRepo
	cleaner *fakeCleaner
	cache   *cache.MemoryCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	havana, err := time.LoadLocation("America/Havana")
	require.NoError(t, err)

	repo := newFakeRepo()
	cleaner := &fakeCleaner{}
	mem := cache.NewMemoryCache()
	svc := NewMarketService(repo, mem, &fakeUploader{}, cleaner, havana, time.Minute).(*marketService)
	return fixture{svc: svc, repo: repo, cleaner: cleaner, cache: mem}
}

func manager() authz.Actor { return authz.Actor{ID: uuid.New(), Role: authz.RoleManager} }
func admin() authz.Actor   { return authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin} }

func validRequest() model.CreateMarketRequest {
	return model.CreateMarketRequest{
		Name:         "Mercado Agropecuario Central",
		Address:      "Calle Independencia 12",
		Province:     "Villa Clara",
		Municipality: "Santa Clara",
	}
}

func fullWeek() *model.Schedule {
	s := model.Schedule{}
	for _, d := range model.Weekdays {
		s[d] = model.DaySchedule{Opens: "08:00", Closes: "17:00"}
	}
	return &s
}

var oneImage = []mediaModel.File{{Name: "a.png", Data: []byte("x")}}

// =====================================================
// TESTS
// =====================================================

func TestCreate_ManagerOwnsOneMarket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := manager()

	detail, err := f.svc.Create(ctx, m, validRequest(), oneImage)
	require.NoError(t, err)
	assert.Equal(t, m.ID, detail.ManagerID)
	assert.Len(t, detail.Images, 1)

	_, err = f.svc.Create(ctx, m, validRequest(), nil)
	assert.ErrorIs(t, err, model.ErrAlreadyHasMarket)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCreate_AdminMayOwnSeveral(t *testing.T) {
	f := newFixture(t)
	a := admin()

	_, err := f.svc.Create(context.Background(), a, validRequest(), nil)
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), a, validRequest(), nil)
	require.NoError(t, err)
}

func TestCreate_RegularUserForbidden(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), authz.Actor{ID: uuid.New(), Role: authz.RoleRegular}, validRequest(), nil)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Municipality = "  "
	_, err := f.svc.Create(context.Background(), manager(), req, nil)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	req = validRequest()
	bad := fullWeek()
	(*bad)["lunes"] = model.DaySchedule{Opens: "18:00", Closes: "08:00"}
	req.Schedule = bad
	_, err = f.svc.Create(context.Background(), manager(), req, nil)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	req = validRequest()
	req.ScheduleJSON = "{not json"
	_, err = f.svc.Create(context.Background(), manager(), req, nil)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Empty(t, f.repo.markets)
}

func TestCreate_ScheduleFromFormField(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.ScheduleJSON = `{"domingo":{"closed":true},"lunes":{"opens":"08:00","closes":"17:00"},
		"martes":{"opens":"08:00","closes":"17:00"},"miercoles":{"opens":"08:00","closes":"17:00"},
		"jueves":{"opens":"08:00","closes":"17:00"},"viernes":{"opens":"08:00","closes":"17:00"},
		"sabado":{"opens":"08:00","closes":"12:00"}}`

	detail, err := f.svc.Create(context.Background(), manager(), req, nil)
	require.NoError(t, err)
	require.NotNil(t, detail.Schedule)
	assert.Equal(t, "12:00", (*detail.Schedule)["sabado"].Closes)
}

func TestStatus_UsesConfiguredTimeZone(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Schedule = fullWeek()
	detail, err := f.svc.Create(context.Background(), manager(), req, nil)
	require.NoError(t, err)

	// Monday 12:30 UTC is 08:30 in Havana (UTC-4 in summer)
	f.svc.now = func() time.Time { return time.Date(2024, 7, 1, 12, 30, 0, 0, time.UTC) }
	status, err := f.svc.Status(context.Background(), detail.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Status{Open: true, Message: "open until 17:00"}, *status)

	// Monday 11:59 UTC is 07:59 in Havana
	f.svc.now = func() time.Time { return time.Date(2024, 7, 1, 11, 59, 0, 0, time.UTC) }
	got, err := f.svc.GetDetail(context.Background(), detail.ID)
	require.NoError(t, err)
	assert.False(t, got.Status.Open)
	assert.Contains(t, got.Status.Message, "08:00")
}

func TestStatus_NoSchedule(t *testing.T) {
	f := newFixture(t)
	detail, err := f.svc.Create(context.Background(), manager(), validRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, model.Status{Open: false, Message: "schedule unavailable"}, detail.Status)
}

func TestUpdate_OwnershipAndImageReplacement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := manager()

	created, err := f.svc.Create(ctx, owner, validRequest(), oneImage)
	require.NoError(t, err)
	oldImages := created.Images

	name := "Mercado Nuevo"
	_, err = f.svc.Update(ctx, manager(), created.ID, model.UpdateMarketRequest{Name: &name}, nil)
	assert.ErrorIs(t, err, model.ErrForbidden)

	updated, err := f.svc.Update(ctx, owner, created.ID, model.UpdateMarketRequest{Name: &name}, oneImage)
	require.NoError(t, err)
	assert.Equal(t, "Mercado Nuevo", updated.Name)
	assert.NotEqual(t, oldImages, updated.Images)
	assert.Equal(t, oldImages, f.cleaner.all())

	// Without new images the stored set is kept
	desc := "Frutas y viandas"
	again, err := f.svc.Update(ctx, admin(), created.ID, model.UpdateMarketRequest{Description: &desc}, nil)
	require.NoError(t, err)
	assert.Equal(t, updated.Images, again.Images)
	assert.Len(t, f.cleaner.batches, 1)
}

func TestDelete_EnqueuesMarketAndProductImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, manager(), validRequest(), oneImage)
	require.NoError(t, err)
	f.repo.productImages[created.ID] = []string{"http://minio/agromap/products/p1.jpg"}

	assert.ErrorIs(t, f.svc.Delete(ctx, manager(), created.ID), model.ErrDeleteForbidden)

	require.NoError(t, f.svc.Delete(ctx, admin(), created.ID))
	assert.ElementsMatch(t, append(created.Images, "http://minio/agromap/products/p1.jpg"), f.cleaner.all())

	_, err = f.svc.GetDetail(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrMarketNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, admin(), created.ID), model.ErrMarketNotFound)
}

func TestMine(t *testing.T) {
	f := newFixture(t)
	m := manager()

	_, err := f.svc.Mine(context.Background(), m)
	assert.ErrorIs(t, err, model.ErrNoMarketYet)

	created, err := f.svc.Create(context.Background(), m, validRequest(), nil)
	require.NoError(t, err)

	mine, err := f.svc.Mine(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, created.ID, mine.ID)
}

func TestProvinces_MergedSortedAndCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest()
	req.Province = "Cienfuegos"
	_, err := f.svc.Create(ctx, admin(), req, nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, admin(), validRequest(), nil)
	require.NoError(t, err)

	provinces, err := f.svc.Provinces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cienfuegos", "Sancti Spiritus", "Villa Clara"}, provinces)

	_, err = f.svc.Provinces(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.provinceCalls)

	// A write invalidates the cached list
	req.Province = "Matanzas"
	_, err = f.svc.Create(ctx, admin(), req, nil)
	require.NoError(t, err)
	provinces, err = f.svc.Provinces(ctx)
	require.NoError(t, err)
	assert.Contains(t, provinces, "Matanzas")
	assert.Equal(t, 2, f.repo.provinceCalls)
}

func TestMergeProvinces(t *testing.T) {
	assert.Equal(t, []string{"Sancti Spiritus", "Villa Clara"}, mergeProvinces(defaultProvinces, nil))
	assert.Equal(t,
		[]string{"Artemisa", "Sancti Spiritus", "Villa Clara"},
		mergeProvinces(defaultProvinces, []string{"Villa Clara", "Artemisa", ""}),
	)
}
