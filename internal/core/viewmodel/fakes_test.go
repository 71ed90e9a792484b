package viewmodel_test

import (
	"context"
	"io"
	"testing"

	logger_adapter "property-admin-service/internal/adapters/logger"
	"property-admin-service/internal/core/cache"
	"property-admin-service/internal/core/domain"
)

// fakePropertyAPI - управляемый из теста фасад удаленного API.
// Незаданный метод падает: тест обязан объявить, что он ожидает.
type fakePropertyAPI struct {
	t *testing.T

	list         func(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyPage, error)
	get          func(ctx context.Context, id int64) (*domain.Property, error)
	create       func(ctx context.Context, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error)
	update       func(ctx context.Context, id int64, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error)
	delete_      func(ctx context.Context, id int64) error
	restore      func(ctx context.Context, id int64) error
	uploadImages func(ctx context.Context, id int64, files []domain.FileAttachment) error
	deleteImage  func(ctx context.Context, propertyID, imageID int64) error
}

func (f *fakePropertyAPI) List(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyPage, error) {
	if f.list == nil {
		f.t.Fatal("unexpected List call")
	}
	return f.list(ctx, filters)
}

func (f *fakePropertyAPI) Get(ctx context.Context, id int64) (*domain.Property, error) {
	if f.get == nil {
		f.t.Fatal("unexpected Get call")
	}
	return f.get(ctx, id)
}

func (f *fakePropertyAPI) Create(ctx context.Context, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error) {
	if f.create == nil {
		f.t.Fatal("unexpected Create call")
	}
	return f.create(ctx, draft, files)
}

func (f *fakePropertyAPI) Update(ctx context.Context, id int64, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error) {
	if f.update == nil {
		f.t.Fatal("unexpected Update call")
	}
	return f.update(ctx, id, draft, files)
}

func (f *fakePropertyAPI) Delete(ctx context.Context, id int64) error {
	if f.delete_ == nil {
		f.t.Fatal("unexpected Delete call")
	}
	return f.delete_(ctx, id)
}

func (f *fakePropertyAPI) Restore(ctx context.Context, id int64) error {
	if f.restore == nil {
		f.t.Fatal("unexpected Restore call")
	}
	return f.restore(ctx, id)
}

func (f *fakePropertyAPI) UploadImages(ctx context.Context, id int64, files []domain.FileAttachment) error {
	if f.uploadImages == nil {
		f.t.Fatal("unexpected UploadImages call")
	}
	return f.uploadImages(ctx, id, files)
}

func (f *fakePropertyAPI) DeleteImage(ctx context.Context, propertyID, imageID int64) error {
	if f.deleteImage == nil {
		f.t.Fatal("unexpected DeleteImage call")
	}
	return f.deleteImage(ctx, propertyID, imageID)
}

func newTestCache(t *testing.T) *cache.QueryCache {
	t.Helper()
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	return cache.NewQueryCache(logger)
}

func pageOf(items []domain.Property, page, lastPage int) *domain.PropertyPage {
	return &domain.PropertyPage{
		Items: items,
		Meta: domain.PaginationMeta{
			CurrentPage: page,
			LastPage:    lastPage,
			PerPage:     10,
			Total:       lastPage * 10,
		},
	}
}
