package rest

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"property-admin-service/internal/contextkeys"
	"property-admin-service/internal/core/domain"
	"property-admin-service/internal/core/port"
	"property-admin-service/internal/core/viewmodel"
)

// Лимит памяти на разбор multipart-формы.
const maxMultipartMemory = 32 << 20

// Поля формы в порядке применения к черновику. Страница браузера
// отправляет форму целиком, но применяем только присланное:
// при редактировании остальное уже пришло из гидрации.
var draftFormFields = []string{
	"title", "description", "property_type", "status",
	"price", "area", "bedrooms", "bathrooms", "floors",
	"address", "city", "district", "postal_code",
	"latitude", "longitude", "year_built",
	"features",
	"contact_name", "contact_phone", "contact_email",
}

// PropertyHandlers обслуживает экраны списка, деталей и форм.
type PropertyHandlers struct {
	listVM   *viewmodel.PropertyListViewModel
	detailVM *viewmodel.PropertyDetailViewModel

	queries  port.QueryCachePort
	api      port.PropertyAPIPort
	validate viewmodel.DraftValidator
}

func NewPropertyHandlers(
	listVM *viewmodel.PropertyListViewModel,
	detailVM *viewmodel.PropertyDetailViewModel,
	queries port.QueryCachePort,
	api port.PropertyAPIPort,
	validate viewmodel.DraftValidator) *PropertyHandlers {

	return &PropertyHandlers{
		listVM:   listVM,
		detailVM: detailVM,
		queries:  queries,
		api:      api,
		validate: validate,
	}
}

// Порядок применения фильтров фиксирован, страница - последней:
// иначе смена фильтра затирала бы явно запрошенный номер страницы.
var listFilterFields = []string{"search", "city", "status", "min_price", "max_price", "sort", "order"}

// List обрабатывает GET /properties.
func (h *PropertyHandlers) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})

	query := r.URL.Query()
	for _, field := range listFilterFields {
		if !query.Has(field) {
			continue
		}
		if err := h.listVM.SetFilter(field, query.Get(field)); err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if query.Has("page") {
		if err := h.listVM.SetFilter("page", query.Get("page")); err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	state := h.listVM.Load(r.Context())
	if state.Err != nil {
		RespondWithDomainError(w, logger, state.Err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toListViewResponse(state))
}

// Detail обрабатывает GET /properties/{propertyID}.
func (h *PropertyHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "PropertyDetail"})

	id, err := propertyID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := h.detailVM.Load(r.Context(), id)
	if state.Err != nil {
		RespondWithDomainError(w, logger, state.Err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DetailViewResponse{
		Data:    toPropertyResponse(*state.Property),
		Geohash: state.Geohash,
	})
}

// Create обрабатывает POST /properties - отправку формы создания.
func (h *PropertyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	form := viewmodel.NewCreateForm(h.queries, h.api, h.validate)
	h.submitForm(w, r, form, http.StatusCreated)
}

// Update обрабатывает POST /properties/{propertyID} - отправку формы
// редактирования. Форма гидрируется из get(id), присланные поля
// ложатся поверх, на сервер уходит полный черновик.
func (h *PropertyHandlers) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProperty"})

	id, err := propertyID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	form := viewmodel.NewEditForm(h.queries, h.api, h.validate, id)
	if err := form.Hydrate(r.Context()); err != nil {
		RespondWithDomainError(w, logger, err)
		return
	}
	h.submitForm(w, r, form, http.StatusOK)
}

func (h *PropertyHandlers) submitForm(w http.ResponseWriter, r *http.Request, form *viewmodel.PropertyFormViewModel, successCode int) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitProperty"})

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	for _, field := range draftFormFields {
		values, ok := r.MultipartForm.Value[field]
		if !ok || len(values) == 0 {
			continue
		}
		if err := form.SetField(field, values[0]); err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	files, err := collectImageFiles(r.MultipartForm)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) > 0 {
		form.AttachFiles(files)
	}

	saved, err := form.Submit(r.Context())
	if err != nil {
		RespondWithDomainError(w, logger, err)
		return
	}
	RespondWithJSON(w, successCode, SavedResponse{Data: toPropertyResponse(*saved)})
}

// Delete обрабатывает DELETE /properties/{propertyID}.
func (h *PropertyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProperty"})

	id, err := propertyID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.detailVM.Delete(r.Context(), id); err != nil {
		RespondWithDomainError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "property deleted"})
}

// Restore обрабатывает POST /properties/{propertyID}/restore.
func (h *PropertyHandlers) Restore(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RestoreProperty"})

	id, err := propertyID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.detailVM.Restore(r.Context(), id); err != nil {
		RespondWithDomainError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "property restored"})
}

// UploadImages обрабатывает POST /properties/{propertyID}/images.
func (h *PropertyHandlers) UploadImages(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UploadImages"})

	id, err := propertyID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files, err := collectImageFiles(r.MultipartForm)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "No images in request")
		return
	}

	if err := h.detailVM.UploadImages(r.Context(), id, files); err != nil {
		RespondWithDomainError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "images uploaded"})
}

// DeleteImage обрабатывает DELETE /properties/{propertyID}/images/{imageID}.
func (h *PropertyHandlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteImage"})

	id, err := propertyID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	imageID, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	if err := h.detailVM.DeleteImage(r.Context(), id, imageID); err != nil {
		RespondWithDomainError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "image deleted"})
}

func propertyID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "propertyID"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid property id")
	}
	return id, nil
}

// collectImageFiles собирает файлы images[i] в порядке индексов.
func collectImageFiles(form *multipart.Form) ([]domain.FileAttachment, error) {
	type indexedFile struct {
		index  int
		header *multipart.FileHeader
	}

	var indexed []indexedFile
	for key, headers := range form.File {
		if !strings.HasPrefix(key, "images") || len(headers) == 0 {
			continue
		}
		index := 0
		if start := strings.IndexByte(key, '['); start >= 0 {
			if end := strings.IndexByte(key, ']'); end > start {
				index, _ = strconv.Atoi(key[start+1 : end])
			}
		}
		indexed = append(indexed, indexedFile{index: index, header: headers[0]})
	}
	sort.Slice(indexed, func(i, j int) bool { return indexed[i].index < indexed[j].index })

	var files []domain.FileAttachment
	for _, f := range indexed {
		file, err := f.header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", f.header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s: %w", f.header.Filename, err)
		}
		files = append(files, domain.FileAttachment{Name: f.header.Filename, Data: data})
	}
	return files, nil
}
