package viewmodel

import (
	"context"

	"github.com/mmcloughlin/geohash"

	"property-admin-service/internal/contextkeys"
	"property-admin-service/internal/core/cache"
	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/port"
)

// Точности геохэша хватает для ключа тайла карты на детальной странице.
const geohashPrecision = 5

// DetailViewState - состояние детального экрана.
type DetailViewState struct {
	Err      error
	Property *domain.Property

	// Geohash присутствует только у объектов с координатами.
	Geohash string
}

// PropertyDetailViewModel обслуживает детальный экран: чтение через
// кэш плюс операции над конкретным объявлением с положенной
// инвалидацией.
type PropertyDetailViewModel struct {
	queries port.QueryCachePort
	api     port.PropertyAPIPort
}

func NewPropertyDetailViewModel(queries port.QueryCachePort, api port.PropertyAPIPort) *PropertyDetailViewModel {
	return &PropertyDetailViewModel{queries: queries, api: api}
}

// Load читает объявление через кэш. 404 доходит до экрана как
// domain.ErrNotFound и рисуется состоянием "не найдено" без ретраев.
func (vm *PropertyDetailViewModel) Load(ctx context.Context, id int64) DetailViewState {
	value, err := vm.queries.Fetch(ctx, cache.DetailKey(id), func(ctx context.Context) (interface{}, error) {
		return vm.api.Get(ctx, id)
	})
	if err != nil {
		return DetailViewState{Err: err}
	}

	prop := value.(*domain.Property)
	state := DetailViewState{Property: prop}
	if prop.Latitude != nil && prop.Longitude != nil {
		state.Geohash = geohash.Encode(*prop.Latitude, *prop.Longitude)[:geohashPrecision]
	}
	return state
}

// Delete удаляет объявление и сбрасывает затронутые ключи:
// все списочное пространство и детальный ключ.
func (vm *PropertyDetailViewModel) Delete(ctx context.Context, id int64) error {
	if err := vm.api.Delete(ctx, id); err != nil {
		return err
	}
	vm.invalidate(ctx, id, "delete")
	return nil
}

// Restore возвращает удаленное объявление.
func (vm *PropertyDetailViewModel) Restore(ctx context.Context, id int64) error {
	if err := vm.api.Restore(ctx, id); err != nil {
		return err
	}
	vm.invalidate(ctx, id, "restore")
	return nil
}

// UploadImages дозагружает фотографии.
func (vm *PropertyDetailViewModel) UploadImages(ctx context.Context, id int64, files []domain.FileAttachment) error {
	if err := vm.api.UploadImages(ctx, id, files); err != nil {
		return err
	}
	vm.invalidate(ctx, id, "upload_images")
	return nil
}

// DeleteImage удаляет одну фотографию.
func (vm *PropertyDetailViewModel) DeleteImage(ctx context.Context, propertyID, imageID int64) error {
	if err := vm.api.DeleteImage(ctx, propertyID, imageID); err != nil {
		return err
	}
	vm.invalidate(ctx, propertyID, "delete_image")
	return nil
}

func (vm *PropertyDetailViewModel) invalidate(ctx context.Context, id int64, op string) {
	vm.queries.InvalidatePrefix(cache.ListKeyPrefix)
	vm.queries.Invalidate(cache.DetailKey(id))
	contextkeys.LoggerFromContext(ctx).Debug("Write invalidated cache", port.Fields{
		"component": "property_detail", "operation": op, "property_id": id,
	})
}
