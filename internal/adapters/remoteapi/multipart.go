package remoteapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"property-admin-service/internal/core/domain"
)

// Create создает объявление. Черновик уходит multipart-формой:
// скалярные поля текстовыми частями, файлы - бинарными.
func (c *Client) Create(ctx context.Context, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error) {
	return c.submitDraft(ctx, "/properties", "", draft, files)
}

// Update отправляет полный черновик (не дифф) через POST с полем
// _method=PUT: multipart поверх настоящего PUT сервер не принимает.
func (c *Client) Update(ctx context.Context, id int64, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error) {
	return c.submitDraft(ctx, fmt.Sprintf("/properties/%d", id), http.MethodPut, draft, files)
}

// UploadImages дозагружает фотографии к существующему объявлению.
func (c *Client) UploadImages(ctx context.Context, id int64, files []domain.FileAttachment) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := writeFileParts(w, files); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/properties/%d/images", id), nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, false, nil)
}

func (c *Client) submitDraft(ctx context.Context, path, methodOverride string, draft domain.PropertyDraft, files []domain.FileAttachment) (*domain.Property, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if methodOverride != "" {
		if err := w.WriteField("_method", methodOverride); err != nil {
			return nil, fmt.Errorf("failed to write _method part: %w", err)
		}
	}
	if err := writeDraftFields(w, draft); err != nil {
		return nil, err
	}
	if err := writeFileParts(w, files); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp itemResponse
	if err := c.do(req, false, &resp); err != nil {
		return nil, err
	}
	prop := resp.Data.toDomain()
	return &prop, nil
}

// writeDraftFields - явный шаг сериализации черновика в проводной
// формат. Правила по полям:
//   - строки: пустая строка не передается, сервер трактует
//     отсутствие как "без изменений" (update) или дефолт (create);
//   - числа: передаются всегда, включая ноль;
//   - опциональные указатели: передаются только при наличии значения;
//   - features: индексированные части features[i], порядок сохраняется.
func writeDraftFields(w *multipart.Writer, draft domain.PropertyDraft) error {
	stringFields := []struct{ name, value string }{
		{"title", draft.Title},
		{"description", draft.Description},
		{"property_type", draft.PropertyType},
		{"status", draft.Status},
		{"address", draft.Address},
		{"city", draft.City},
		{"district", draft.District},
		{"postal_code", draft.PostalCode},
		{"contact_name", draft.ContactName},
		{"contact_phone", draft.ContactPhone},
		{"contact_email", draft.ContactEmail},
	}
	for _, f := range stringFields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	numberFields := []struct {
		name  string
		value string
	}{
		{"price", formatFloat(draft.Price)},
		{"area", formatFloat(draft.Area)},
		{"bedrooms", strconv.Itoa(draft.Bedrooms)},
		{"bathrooms", strconv.Itoa(draft.Bathrooms)},
		{"floors", strconv.Itoa(draft.Floors)},
	}
	for _, f := range numberFields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	if draft.Latitude != nil {
		if err := w.WriteField("latitude", formatFloat(*draft.Latitude)); err != nil {
			return err
		}
	}
	if draft.Longitude != nil {
		if err := w.WriteField("longitude", formatFloat(*draft.Longitude)); err != nil {
			return err
		}
	}
	if draft.YearBuilt != nil {
		if err := w.WriteField("year_built", strconv.Itoa(*draft.YearBuilt)); err != nil {
			return err
		}
	}

	for i, feature := range draft.Features {
		if err := w.WriteField(fmt.Sprintf("features[%d]", i), feature); err != nil {
			return fmt.Errorf("failed to write features[%d]: %w", i, err)
		}
	}
	return nil
}

// writeFileParts пишет файлы как images[i] в порядке выбора.
func writeFileParts(w *multipart.Writer, files []domain.FileAttachment) error {
	for i, file := range files {
		part, err := w.CreateFormFile(fmt.Sprintf("images[%d]", i), file.Name)
		if err != nil {
			return fmt.Errorf("failed to create file part images[%d]: %w", i, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return fmt.Errorf("failed to write file part images[%d]: %w", i, err)
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
