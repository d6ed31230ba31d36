package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ключи схем
const (
	FavoriteChangedEvent = "FavoriteChangedEvent/1.0.0"
	ViewFiltersRequest   = "ViewFiltersRequest/1.0.0"
)

//go:embed schemas
var schemasFS embed.FS

const resourcePrefix = "mem://contracts/"

var (
	loadOnce        sync.Once
	loadErr         error
	compiledSchemas map[string]*jsonschema.Schema
)

// Load компилирует все встроенные схемы. Повторные вызовы возвращают первый результат.
func Load() error {
	loadOnce.Do(func() {
		compiledSchemas, loadErr = compileAll(schemasFS)
	})
	return loadErr
}

func compileAll(fsys fs.FS) (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		// все ресурсы добавляются до компиляции, чтобы работали $ref между файлами
		if err := compiler.AddResource(resourcePrefix+path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	compiled := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		key := generateKeyFromPath(path)
		if key == "" {
			return nil, fmt.Errorf("schema path %s does not follow <kind>/<name>/v<N>.json", path)
		}
		schema, err := compiler.Compile(resourcePrefix + path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		compiled[key] = schema
	}
	return compiled, nil
}

// generateKeyFromPath: "schemas/events/favorite-changed/v1.json" -> "FavoriteChangedEvent/1.0.0",
// "schemas/requests/view-filters/v1.json" -> "ViewFiltersRequest/1.0.0"
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "schemas/"), ".json")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "v") {
		return ""
	}

	var suffix string
	switch parts[0] {
	case "events":
		suffix = "Event"
	case "requests":
		suffix = "Request"
	default:
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[2], "v"))
}

// Validate проверяет JSON-документ по схеме с ключом key
func Validate(key string, body []byte) error {
	if err := Load(); err != nil {
		return err
	}
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' not found", key)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("document is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidateEvent - проверка по типу и версии события из заголовков сообщения
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	return Validate(eventType+"/"+eventVersion, body)
}
