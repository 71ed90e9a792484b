package remoteapi

import (
	"context"
	"fmt"
	"net/http"

	"property-admin-service/internal/core/domain"
)

// List возвращает страницу объявлений. В query уходят только
// непустые поля фильтров (см. PropertyFilters.Values).
func (c *Client) List(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyPage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/properties", filters.Values(), nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := c.do(req, false, &resp); err != nil {
		return nil, err
	}

	page := &domain.PropertyPage{Meta: resp.Meta.toDomain()}
	for _, dto := range resp.Data {
		page.Items = append(page.Items, dto.toDomain())
	}
	return page, nil
}

// Get загружает одно объявление. 404 отдается как domain.ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (*domain.Property, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/properties/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var resp itemResponse
	if err := c.do(req, false, &resp); err != nil {
		return nil, err
	}

	prop := resp.Data.toDomain()
	return &prop, nil
}

// Delete удаляет объявление (мягко - на сервере есть restore).
func (c *Client) Delete(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/properties/%d", id), nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, false, nil)
}

// Restore возвращает удаленное объявление.
func (c *Client) Restore(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/properties/%d/restore", id), nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, false, nil)
}

// DeleteImage удаляет одну фотографию объявления.
func (c *Client) DeleteImage(ctx context.Context, propertyID, imageID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/properties/%d/images/%d", propertyID, imageID), nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, false, nil)
}
