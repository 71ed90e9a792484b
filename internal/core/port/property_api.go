package port

import (
	"context"

	"property-admin-service/internal/core/domain"
)

// PropertyAPIPort - фасад удаленного API объявлений. Одна операция
// на одно REST-действие; вся работа с HTTP и multipart спрятана
// в адаптере.
type PropertyAPIPort interface {
	List(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyPage, error)
	Get(ctx context.Context, id int64) (*domain.Property, error)

	// Create и Update сериализуют черновик как multipart-форму:
	// скалярные поля текстовыми частями, файлы - бинарными.
	// Update отправляется полным черновиком, не диффом.
	Create(ctx context.Context, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error)
	Update(ctx context.Context, id int64, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error)

	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error

	UploadImages(ctx context.Context, id int64, files []domain.FileAttachment) error
	DeleteImage(ctx context.Context, propertyID, imageID int64) error
}
