package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"property-admin-service/internal/contextkeys"
	"property-admin-service/internal/core/cache"
	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/port"
)

var (
	// ErrFormNotReady - попытка отправить форму редактирования
	// до того, как она наполнилась из get(id).
	ErrFormNotReady = errors.New("form is not hydrated yet")

	// ErrSubmitInFlight - повторная отправка, пока первая летит.
	// Отправка блокируется, а не ставится в очередь.
	ErrSubmitInFlight = errors.New("submit already in flight")
)

// DraftValidator - локальная проверка черновика по контракту
// до похода на сервер (см. internal/contracts).
type DraftValidator func(domain.PropertyDraft) *domain.ValidationError

// Attachment - прикрепленный к форме файл с эфемерным preview id
// для отображения. Идентификаторы живут, пока набор не заменен.
type Attachment struct {
	File      domain.FileAttachment
	PreviewID string
}

// PropertyFormViewModel владеет черновиком формы создания или
// редактирования. Черновик всегда отправляется целиком: update -
// это полный снимок полей, а не дифф.
type PropertyFormViewModel struct {
	mu          sync.Mutex
	editID      int64 // 0 - создание
	hydrated    bool
	draft       domain.PropertyDraft
	attachments []Attachment
	fieldErrors map[string][]string
	inFlight    bool

	queries  port.QueryCachePort
	api      port.PropertyAPIPort
	validate DraftValidator
}

// NewCreateForm - форма создания с дефолтным черновиком.
func NewCreateForm(queries port.QueryCachePort, api port.PropertyAPIPort, validate DraftValidator) *PropertyFormViewModel {
	return &PropertyFormViewModel{
		draft:    domain.NewPropertyDraft(),
		hydrated: true,
		queries:  queries,
		api:      api,
		validate: validate,
	}
}

// NewEditForm - форма редактирования. До вызова Hydrate форма
// находится в состоянии загрузки и отправку не принимает.
func NewEditForm(queries port.QueryCachePort, api port.PropertyAPIPort, validate DraftValidator, id int64) *PropertyFormViewModel {
	return &PropertyFormViewModel{
		editID:   id,
		queries:  queries,
		api:      api,
		validate: validate,
	}
}

// Hydrate наполняет черновик из get(id), пройдя через кэш.
func (vm *PropertyFormViewModel) Hydrate(ctx context.Context) error {
	vm.mu.Lock()
	id := vm.editID
	vm.mu.Unlock()
	if id == 0 {
		return nil // создание наполняется дефолтами в конструкторе
	}

	value, err := vm.queries.Fetch(ctx, cache.DetailKey(id), func(ctx context.Context) (interface{}, error) {
		return vm.api.Get(ctx, id)
	})
	if err != nil {
		return err
	}

	prop := value.(*domain.Property)
	vm.mu.Lock()
	vm.draft = domain.DraftFromProperty(prop)
	vm.hydrated = true
	vm.mu.Unlock()
	return nil
}

// SetField применяет одно поле формы к черновику с явной коэрцией:
// числовые поля - пустой ввод превращается в 0; опциональные -
// пустой ввод означает отсутствие значения; текст особенностей
// разбирается в упорядоченный список.
func (vm *PropertyFormViewModel) SetField(name, value string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	switch name {
	case "title":
		vm.draft.Title = value
	case "description":
		vm.draft.Description = value
	case "property_type":
		vm.draft.PropertyType = value
	case "status":
		vm.draft.Status = value
	case "address":
		vm.draft.Address = value
	case "city":
		vm.draft.City = value
	case "district":
		vm.draft.District = value
	case "postal_code":
		vm.draft.PostalCode = value
	case "contact_name":
		vm.draft.ContactName = value
	case "contact_phone":
		vm.draft.ContactPhone = value
	case "contact_email":
		vm.draft.ContactEmail = value
	case "features":
		vm.draft.Features = domain.ParseFeatures(value)
	case "price":
		return setFloatField(&vm.draft.Price, name, value)
	case "area":
		return setFloatField(&vm.draft.Area, name, value)
	case "bedrooms":
		return setIntField(&vm.draft.Bedrooms, name, value)
	case "bathrooms":
		return setIntField(&vm.draft.Bathrooms, name, value)
	case "floors":
		return setIntField(&vm.draft.Floors, name, value)
	case "latitude":
		return setOptionalFloatField(&vm.draft.Latitude, name, value)
	case "longitude":
		return setOptionalFloatField(&vm.draft.Longitude, name, value)
	case "year_built":
		return setOptionalIntField(&vm.draft.YearBuilt, name, value)
	default:
		return fmt.Errorf("unknown form field %q", name)
	}
	return nil
}

// AttachFiles заменяет набор прикрепленных файлов и выдает по одному
// preview id на файл в порядке выбора. Прежние идентификаторы
// при этом считаются освобожденными.
func (vm *PropertyFormViewModel) AttachFiles(files []domain.FileAttachment) []string {
	attachments := make([]Attachment, 0, len(files))
	previews := make([]string, 0, len(files))
	for _, file := range files {
		id := uuid.New().String()
		attachments = append(attachments, Attachment{File: file, PreviewID: id})
		previews = append(previews, id)
	}

	vm.mu.Lock()
	vm.attachments = attachments
	vm.mu.Unlock()
	return previews
}

// Draft возвращает копию текущего черновика.
func (vm *PropertyFormViewModel) Draft() domain.PropertyDraft {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.draft
}

// FieldErrors - маппинг "поле -> сообщения" после неудачной отправки.
func (vm *PropertyFormViewModel) FieldErrors() map[string][]string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.fieldErrors
}

// Submit отправляет черновик: create для новой записи, update (полным
// снимком) для существующей. Успех инвалидирует списочное
// пространство ключей и, для редактирования, детальный ключ.
// Отказ валидации оставляет форму редактируемой: введенные значения
// сохраняются, сообщения ложатся под поля.
func (vm *PropertyFormViewModel) Submit(ctx context.Context) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "property_form"})

	vm.mu.Lock()
	if !vm.hydrated {
		vm.mu.Unlock()
		return nil, ErrFormNotReady
	}
	if vm.inFlight {
		vm.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	vm.inFlight = true
	vm.fieldErrors = nil
	draft := vm.draft
	files := make([]domain.FileAttachment, 0, len(vm.attachments))
	for _, a := range vm.attachments {
		files = append(files, a.File)
	}
	editID := vm.editID
	vm.mu.Unlock()

	defer func() {
		vm.mu.Lock()
		vm.inFlight = false
		vm.mu.Unlock()
	}()

	if vm.validate != nil {
		if ve := vm.validate(draft); ve != nil {
			logger.Warn("Draft rejected by local contract", port.Fields{"fields": ve.Fields})
			vm.setFieldErrors(ve)
			return nil, ve
		}
	}

	var (
		saved *domain.Property
		err   error
	)
	if editID == 0 {
		saved, err = vm.api.Create(ctx, draft, files)
	} else {
		saved, err = vm.api.Update(ctx, editID, draft, files)
	}
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			logger.Warn("Draft rejected by remote API", port.Fields{"fields": ve.Fields})
			vm.setFieldErrors(ve)
		}
		return nil, err
	}

	vm.queries.InvalidatePrefix(cache.ListKeyPrefix)
	if editID != 0 {
		vm.queries.Invalidate(cache.DetailKey(editID))
	}
	logger.Info("Draft submitted", port.Fields{"property_id": saved.ID, "edit": editID != 0})
	return saved, nil
}

func (vm *PropertyFormViewModel) setFieldErrors(ve *domain.ValidationError) {
	vm.mu.Lock()
	vm.fieldErrors = ve.Fields
	vm.mu.Unlock()
}

func setFloatField(dst *float64, name, value string) error {
	if value == "" {
		*dst = 0
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	*dst = parsed
	return nil
}

func setIntField(dst *int, name, value string) error {
	if value == "" {
		*dst = 0
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	*dst = parsed
	return nil
}

func setOptionalFloatField(dst **float64, name, value string) error {
	if value == "" {
		*dst = nil
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	*dst = &parsed
	return nil
}

func setOptionalIntField(dst **int, name, value string) error {
	if value == "" {
		*dst = nil
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	*dst = &parsed
	return nil
}
