package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// AssetRef указывает на сохраненный файл: публичный URL и идентификатор для удаления
// (ключ объекта в бакете или имя файла на диске).
type AssetRef struct {
	URL         string `json:"url"`
	Identifier  string `json:"identifier"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

type AssetRefs []AssetRef

func (a AssetRef) IsZero() bool {
	return a.URL == "" && a.Identifier == ""
}

// Ptr returns nil for an empty slot.
func (a AssetRef) Ptr() *AssetRef {
	if a.IsZero() {
		return nil
	}
	return &a
}

// IsRelative reports whether the URL is a server-relative path that has to be
// resolved against the serving host.
func (a AssetRef) IsRelative() bool {
	return a.URL != "" && !strings.Contains(a.URL, "://")
}

func (a AssetRef) Value() (driver.Value, error) {
	if a.IsZero() {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *AssetRef) Scan(value interface{}) error {
	*a = AssetRef{}
	return scanJSON(value, a)
}

func (a AssetRefs) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]AssetRef(a))
}

func (a *AssetRefs) Scan(value interface{}) error {
	*a = AssetRefs{}
	return scanJSON(value, (*[]AssetRef)(a))
}

// Identifiers собирает непустые идентификаторы для пакетного удаления.
func (a AssetRefs) Identifiers() []string {
	ids := make([]string, 0, len(a))
	for _, ref := range a {
		if ref.Identifier != "" {
			ids = append(ids, ref.Identifier)
		}
	}
	return ids
}

// jsonb приходит из pgx строкой, из database/sql байтами
func scanJSON(value interface{}, dst interface{}) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	return json.Unmarshal(raw, dst)
}
