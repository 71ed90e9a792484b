package remoteapi_test

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"property-admin-service/internal/core/domain"
)

func captureForm(t *testing.T, form **multipart.Form, method, path *string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		*form = r.MultipartForm
		if method != nil {
			*method = r.Method
		}
		if path != nil {
			*path = r.URL.Path
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": map[string]interface{}{"id": 11, "title": "Saved"},
		})
	}
}

func TestCreateWireFormat(t *testing.T) {
	var form *multipart.Form
	server := httptest.NewServer(captureForm(t, &form, nil, nil))
	defer server.Close()

	lat := 53.9
	draft := domain.PropertyDraft{
		Title:        "Flat",
		PropertyType: "apartment",
		Status:       "available",
		Price:        0, // ноль передается явно
		Area:         45.5,
		Floors:       1,
		Latitude:     &lat,
		Features:     []string{"Pool", "Gym"},
	}
	files := []domain.FileAttachment{
		{Name: "front.jpg", Data: []byte("jpeg-bytes")},
		{Name: "back.jpg", Data: []byte("more-bytes")},
	}

	client := newTestClient(t, server, "tok", nil)
	saved, err := client.Create(context.Background(), draft, files)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != 11 {
		t.Fatalf("saved.ID = %d", saved.ID)
	}

	value := func(key string) string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	// Числа присутствуют всегда, включая ноль.
	if value("price") != "0" || value("area") != "45.5" || value("floors") != "1" {
		t.Fatalf("numbers: price=%q area=%q floors=%q", value("price"), value("area"), value("floors"))
	}
	// Пустые строки не передаются.
	if _, ok := form.Value["description"]; ok {
		t.Fatal("empty description transmitted")
	}
	if _, ok := form.Value["city"]; ok {
		t.Fatal("empty city transmitted")
	}
	// Опциональные - только при наличии.
	if value("latitude") != "53.9" {
		t.Fatalf("latitude = %q", value("latitude"))
	}
	if _, ok := form.Value["longitude"]; ok {
		t.Fatal("nil longitude transmitted")
	}
	// features[i] в исходном порядке.
	if value("features[0]") != "Pool" || value("features[1]") != "Gym" {
		t.Fatalf("features: %v", form.Value)
	}
	// Создание идет без override.
	if _, ok := form.Value["_method"]; ok {
		t.Fatal("_method on create")
	}

	// images[i] в порядке выбора.
	for i, wantName := range []string{"front.jpg", "back.jpg"} {
		key := "images[" + string(rune('0'+i)) + "]"
		headers := form.File[key]
		if len(headers) != 1 {
			t.Fatalf("file part %s missing: %v", key, form.File)
		}
		if headers[0].Filename != wantName {
			t.Fatalf("%s filename = %q", key, headers[0].Filename)
		}
		f, err := headers[0].Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(f)
		f.Close()
		if len(data) == 0 {
			t.Fatalf("%s body empty", key)
		}
	}
}

func TestUpdateUsesMethodOverride(t *testing.T) {
	var form *multipart.Form
	var method, path string
	server := httptest.NewServer(captureForm(t, &form, &method, &path))
	defer server.Close()

	client := newTestClient(t, server, "tok", nil)
	if _, err := client.Update(context.Background(), 7, domain.NewPropertyDraft(), nil); err != nil {
		t.Fatal(err)
	}

	if method != http.MethodPost || path != "/properties/7" {
		t.Fatalf("request = %s %s", method, path)
	}
	if v := form.Value["_method"]; len(v) != 1 || v[0] != "PUT" {
		t.Fatalf("_method = %v", form.Value["_method"])
	}
}

func TestUploadImagesSendsOnlyFiles(t *testing.T) {
	var form *multipart.Form
	var path string
	server := httptest.NewServer(captureForm(t, &form, nil, &path))
	defer server.Close()

	client := newTestClient(t, server, "tok", nil)
	err := client.UploadImages(context.Background(), 3, []domain.FileAttachment{
		{Name: "extra.jpg", Data: []byte("x")},
	})
	if err != nil {
		t.Fatal(err)
	}

	if path != "/properties/3/images" {
		t.Fatalf("path = %q", path)
	}
	if len(form.Value) != 0 {
		t.Fatalf("unexpected text parts: %v", form.Value)
	}
	if len(form.File["images[0]"]) != 1 {
		t.Fatalf("files: %v", form.File)
	}
}
