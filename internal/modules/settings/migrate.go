package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"traveladdicts/internal/domain"
)

// upgrades[v] turns a version v document into version v+1.
var upgrades = map[int]func(doc map[string]any){
	1: upgradeV1,
}

// Migrate turns a stored document of any schema version into current Settings.
//
// Older versions are upgraded step by step, then every section is merged over the
// defaults: keys missing from the document keep their default, keys the schema does not
// know are dropped, and values of the wrong JSON type fall back to the default.
func Migrate(raw []byte) (domain.Settings, error) {
	if len(raw) == 0 {
		return domain.DefaultSettings(), nil
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings document: %w", err)
	}
	if doc == nil {
		return domain.DefaultSettings(), nil
	}

	// documents written before versioning have no version key
	version := 1
	if v, ok := doc["version"].(float64); ok && v >= 1 {
		version = int(v)
	}
	if version > domain.SettingsSchemaVersion {
		slog.Warn("settings document is newer than this build, merging known keys only",
			"version", version,
			"supported", domain.SettingsSchemaVersion,
		)
	}
	for v := version; v < domain.SettingsSchemaVersion; v++ {
		if up, ok := upgrades[v]; ok {
			up(doc)
		}
	}

	base, err := toMap(domain.DefaultSettings())
	if err != nil {
		return domain.Settings{}, err
	}
	for section, defaults := range base {
		defSection, ok := defaults.(map[string]any)
		if !ok {
			continue
		}
		stored, ok := doc[section].(map[string]any)
		if !ok {
			continue
		}
		mergeSection(defSection, stored)
	}
	base["version"] = domain.SettingsSchemaVersion
	if ts, ok := doc["updatedAt"].(string); ok {
		base["updatedAt"] = ts
	}

	var out domain.Settings
	if err := fromMap(base, &out); err != nil {
		return domain.Settings{}, err
	}
	return out, nil
}

// upgradeV1 renames the contact fields of the first schema.
func upgradeV1(doc map[string]any) {
	general, ok := doc["general"].(map[string]any)
	if !ok {
		return
	}
	rename := map[string]string{"email": "contactEmail", "phone": "contactPhone"}
	for from, to := range rename {
		v, ok := general[from]
		if !ok {
			continue
		}
		if _, exists := general[to]; !exists {
			general[to] = v
		}
		delete(general, from)
	}
}

func mergeSection(defaults, stored map[string]any) {
	for key, def := range defaults {
		v, ok := stored[key]
		if !ok || !sameKind(def, v) {
			continue
		}
		defaults[key] = v
	}
}

func sameKind(a, b any) bool {
	switch a.(type) {
	case string:
		_, ok := b.(string)
		return ok
	case float64:
		f, ok := b.(float64)
		// integer fields must stay integral
		return ok && f == float64(int64(f))
	case bool:
		_, ok := b.(bool)
		return ok
	}
	return false
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(m map[string]any, out any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
