package contracts

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"property-admin-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Сначала добавляем все схемы как ресурсы, чтобы работали
	// перекрестные `$ref`, потом компилируем и регистрируем.
	err := fs.WalkDir(schemasFS, "schemas/drafts", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			file, _ := schemasFS.Open(path)
			defer file.Close()
			if err := compiler.AddResource(path, file); err != nil {
				log.Fatalf("failed to add schema resource %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	err = fs.WalkDir(schemasFS, "schemas/drafts", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			schema, err := compiler.Compile(path)
			if err != nil {
				log.Printf("WARNING: could not compile schema %s: %v. Skipping.", path, err)
				return nil
			}
			compiledSchemas[generateKeyFromPath(path)] = schema
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// generateKeyFromPath преобразует путь вида
// "schemas/drafts/property-draft/v1.json" в ключ "PropertyDraft/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "schemas/drafts/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)

	var nameBuilder strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		nameBuilder.WriteString(caser.String(p))
	}

	version := strings.Replace(parts[1], "v", "", 1) + ".0.0"
	return fmt.Sprintf("%s/%s", nameBuilder.String(), version)
}

// ValidateDraft проверяет черновик по контракту до отправки на сервер.
// Нарушения возвращаются в том же виде "поле -> сообщения", что и
// отказы валидации удаленного API, так что форма рисует их одинаково.
func ValidateDraft(draft domain.PropertyDraft) *domain.ValidationError {
	schema, ok := compiledSchemas["PropertyDraft/1.0.0"]
	if !ok {
		// Схема не скомпилировалась на старте - не блокируем отправку,
		// серверная валидация все равно отработает.
		return nil
	}

	if err := schema.Validate(draftWireObject(draft)); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return &domain.ValidationError{
				Message: "draft failed contract validation",
				Fields:  collectViolations(ve),
			}
		}
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

// draftWireObject строит JSON-представление черновика, зеркальное
// multipart-сериализации: пустые строки отсутствуют, числа
// присутствуют всегда, указатели - только со значением.
func draftWireObject(draft domain.PropertyDraft) map[string]interface{} {
	obj := map[string]interface{}{
		"price":     draft.Price,
		"area":      draft.Area,
		"bedrooms":  draft.Bedrooms,
		"bathrooms": draft.Bathrooms,
		"floors":    draft.Floors,
	}

	setString := func(name, value string) {
		if value != "" {
			obj[name] = value
		}
	}
	setString("title", draft.Title)
	setString("description", draft.Description)
	setString("property_type", draft.PropertyType)
	setString("status", draft.Status)
	setString("address", draft.Address)
	setString("city", draft.City)
	setString("district", draft.District)
	setString("postal_code", draft.PostalCode)
	setString("contact_name", draft.ContactName)
	setString("contact_phone", draft.ContactPhone)
	setString("contact_email", draft.ContactEmail)

	if draft.Latitude != nil {
		obj["latitude"] = *draft.Latitude
	}
	if draft.Longitude != nil {
		obj["longitude"] = *draft.Longitude
	}
	if draft.YearBuilt != nil {
		obj["year_built"] = *draft.YearBuilt
	}
	if len(draft.Features) > 0 {
		features := make([]interface{}, 0, len(draft.Features))
		for _, f := range draft.Features {
			features = append(features, f)
		}
		obj["features"] = features
	}
	return obj
}

// collectViolations раскладывает дерево ошибок jsonschema в маппинг
// "поле -> сообщения". Нарушения на корне объекта (например, required)
// попадают под ключ "form".
func collectViolations(ve *jsonschema.ValidationError) map[string][]string {
	fields := make(map[string][]string)
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			field := fieldFromInstanceLocation(e.InstanceLocation)
			fields[field] = append(fields[field], e.Message)
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return fields
}

func fieldFromInstanceLocation(location string) string {
	location = strings.TrimPrefix(location, "/")
	if location == "" {
		return "form"
	}
	// Для вложенных путей вида "features/2" полем считается корень.
	if i := strings.IndexByte(location, '/'); i >= 0 {
		return location[:i]
	}
	return location
}
