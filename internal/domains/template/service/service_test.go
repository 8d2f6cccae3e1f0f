package service

import (
	"context"
	"sync"
	"testing"

	mediaModel "agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/domains/template/model"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu         sync.Mutex
	templates  map[uuid.UUID]*model.Template
	categories map[uuid.UUID]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{templates: map[uuid.UUID]*model.Template{}, categories: map[uuid.UUID]string{}}
}

func (r *fakeRepo) List(_ context.Context, f model.ListFilter) ([]model.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Template, 0)
	for _, t := range r.templates {
		if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, model.ErrTemplateNotFound
	}
	cp := *t
	cp.Category = model.CategoryRef{ID: t.CategoryID, Name: r.categories[t.CategoryID]}
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, t *model.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[t.CategoryID]; !ok {
		return model.ErrCategoryNotFound
	}
	t.ID = uuid.New()
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, t *model.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[t.CategoryID]; !ok {
		return model.ErrCategoryNotFound
	}
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.templates, id)
	return nil
}

func (r *fakeRepo) Upsert(ctx context.Context, t *model.Template) error {
	return r.Create(ctx, t)
}

type fakeUploader struct{}

func (fakeUploader) Upload(_ context.Context, folder mediaModel.Folder, f mediaModel.File) (string, error) {
	return "http://minio/agromap/" + string(folder) + "/" + f.Name, nil
}

func (u fakeUploader) UploadAll(ctx context.Context, folder mediaModel.Folder, files []mediaModel.File) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, f := range files {
		url, _ := u.Upload(ctx, folder, f)
		out = append(out, url)
	}
	return out, nil
}

type fakeCleaner struct{ urls []string }

func (c *fakeCleaner) Enqueue(_ context.Context, urls []string, _ string) error {
	c.urls = append(c.urls, urls...)
	return nil
}

var admin = authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}

func setup() (ServiceInterface, *fakeRepo, *fakeCleaner, uuid.UUID) {
	repo := newFakeRepo()
	categoryID := uuid.New()
	repo.categories[categoryID] = "Viandas"
	cleaner := &fakeCleaner{}
	return NewTemplateService(repo, fakeUploader{}, cleaner), repo, cleaner, categoryID
}

func TestCreate_WithImage(t *testing.T) {
	svc, _, _, categoryID := setup()

	tpl, err := svc.Create(context.Background(), admin,
		model.CreateTemplateRequest{Name: " Boniato ", CategoryID: categoryID.String()},
		&mediaModel.File{Name: "boniato.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Boniato", tpl.Name)
	assert.Equal(t, "Viandas", tpl.Category.Name)
	require.NotNil(t, tpl.Image)
	assert.Equal(t, "http://minio/agromap/templates/boniato.jpg", *tpl.Image)
}

func TestCreate_Rejections(t *testing.T) {
	svc, _, cleaner, categoryID := setup()
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, model.CreateTemplateRequest{CategoryID: categoryID.String()}, nil)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.Create(ctx, admin, model.CreateTemplateRequest{Name: "Yuca", CategoryID: "7"}, nil)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.Create(ctx, admin, model.CreateTemplateRequest{Name: "Yuca", CategoryID: uuid.NewString()},
		&mediaModel.File{Name: "yuca.jpg"})
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	assert.Equal(t, []string{"http://minio/agromap/templates/yuca.jpg"}, cleaner.urls)

	manager := authz.Actor{ID: uuid.New(), Role: authz.RoleManager}
	_, err = svc.Create(ctx, manager, model.CreateTemplateRequest{Name: "Yuca", CategoryID: categoryID.String()}, nil)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestUpdate_ReplacesImage(t *testing.T) {
	svc, _, cleaner, categoryID := setup()
	ctx := context.Background()

	tpl, err := svc.Create(ctx, admin, model.CreateTemplateRequest{Name: "Malanga", CategoryID: categoryID.String()},
		&mediaModel.File{Name: "old.jpg"})
	require.NoError(t, err)

	name := "Malanga amarilla"
	updated, err := svc.Update(ctx, admin, tpl.ID, model.UpdateTemplateRequest{Name: &name}, &mediaModel.File{Name: "new.jpg"})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "http://minio/agromap/templates/new.jpg", *updated.Image)
	assert.Equal(t, []string{"http://minio/agromap/templates/old.jpg"}, cleaner.urls)

	// no new image keeps the current one
	desc := "de Cumanayagua"
	updated, err = svc.Update(ctx, admin, tpl.ID, model.UpdateTemplateRequest{Description: &desc}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://minio/agromap/templates/new.jpg", *updated.Image)
	assert.Len(t, cleaner.urls, 1)

	other := uuid.NewString()
	_, err = svc.Update(ctx, admin, tpl.ID, model.UpdateTemplateRequest{CategoryID: &other}, nil)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}

func TestDelete_EnqueuesImage(t *testing.T) {
	svc, _, cleaner, categoryID := setup()
	ctx := context.Background()

	tpl, err := svc.Create(ctx, admin, model.CreateTemplateRequest{Name: "Papa", CategoryID: categoryID.String()},
		&mediaModel.File{Name: "papa.jpg"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, tpl.ID))
	assert.Equal(t, []string{"http://minio/agromap/templates/papa.jpg"}, cleaner.urls)

	_, err = svc.Get(ctx, tpl.ID)
	assert.ErrorIs(t, err, model.ErrTemplateNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, admin, tpl.ID), model.ErrTemplateNotFound)
}

func TestList_CategoryFilter(t *testing.T) {
	svc, repo, _, categoryID := setup()
	ctx := context.Background()
	other := uuid.New()
	repo.categories[other] = "Frutas"

	_, err := svc.Create(ctx, admin, model.CreateTemplateRequest{Name: "Papa", CategoryID: categoryID.String()}, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, model.CreateTemplateRequest{Name: "Mango", CategoryID: other.String()}, nil)
	require.NoError(t, err)

	list, err := svc.List(ctx, model.ListFilter{CategoryID: &other})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mango", list[0].Name)
}
