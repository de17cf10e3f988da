package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultAssetExt is used when the asset URL carries no file extension.
const DefaultAssetExt = "png"

// Emoji is one custom emoji record as the admin API returns it.
// Records are immutable after fetch; the only permitted transformation
// is a stable sort by Created.
//
// Fields the API sends but this struct does not model end up in Extra
// and are merged back on serialization, so a record survives a
// save/reload round-trip without losing anything.
type Emoji struct {
	Name            string // unique within a workspace, used as filename stem
	IsAlias         int    // 0 or 1, as sent by the API
	AliasFor        string
	URL             string
	Created         int64 // unix seconds, sole sort key
	UserDisplayName string
	AvatarHash      string
	Extra           map[string]json.RawMessage
}

// emojiJSON mirrors the modeled wire fields.
type emojiJSON struct {
	Name            string `json:"name"`
	IsAlias         int    `json:"is_alias"`
	AliasFor        string `json:"alias_for"`
	URL             string `json:"url"`
	Created         int64  `json:"created"`
	UserDisplayName string `json:"user_display_name"`
	AvatarHash      string `json:"avatar_hash"`
}

var emojiKnownFields = []string{
	"name", "is_alias", "alias_for", "url", "created", "user_display_name", "avatar_hash",
}

func (e *Emoji) UnmarshalJSON(data []byte) error {
	var known emojiJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("parse emoji: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("parse emoji fields: %w", err)
	}
	for _, k := range emojiKnownFields {
		delete(fields, k)
	}
	if len(fields) == 0 {
		fields = nil
	}

	*e = Emoji{
		Name:            known.Name,
		IsAlias:         known.IsAlias,
		AliasFor:        known.AliasFor,
		URL:             known.URL,
		Created:         known.Created,
		UserDisplayName: known.UserDisplayName,
		AvatarHash:      known.AvatarHash,
		Extra:           fields,
	}
	return nil
}

func (e Emoji) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(emojiKnownFields)+len(e.Extra))
	for k, v := range e.Extra {
		fields[k] = v
	}

	known := map[string]any{
		"name":              e.Name,
		"is_alias":          e.IsAlias,
		"alias_for":         e.AliasFor,
		"url":               e.URL,
		"created":           e.Created,
		"user_display_name": e.UserDisplayName,
		"avatar_hash":       e.AvatarHash,
	}
	for k, v := range known {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal emoji field %q: %w", k, err)
		}
		fields[k] = b
	}

	return json.Marshal(fields)
}

// Alias reports whether this record points at another emoji instead of
// carrying an image of its own.
func (e Emoji) Alias() bool {
	return e.IsAlias != 0
}

// AssetPath is the local destination for the emoji image: the record
// name plus the extension of the URL's trailing path segment, inside
// baseDir. URLs without an extension default to png.
func (e Emoji) AssetPath(baseDir string) string {
	ext := strings.TrimPrefix(path.Ext(e.URL), ".")
	if ext == "" {
		ext = DefaultAssetExt
	}
	return filepath.Join(baseDir, e.Name+"."+ext)
}

// SortByCreated orders records by creation time ascending. The sort is
// stable, so records sharing a timestamp keep their API order.
func SortByCreated(list []Emoji) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Created < list[j].Created
	})
}

// Asset pairs a remote image URL with its local destination. Derived
// once per download run, never persisted.
type Asset struct {
	Name string
	URL  string
	Path string
}

// Exist reports whether the destination is already a regular file.
func (a Asset) Exist() (bool, error) {
	info, err := os.Stat(a.Path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Assets derives the download work list for a record set. Alias records
// reference another emoji's image and have no asset of their own, so
// they are left out.
func Assets(list []Emoji, baseDir string) []Asset {
	assets := make([]Asset, 0, len(list))
	for _, e := range list {
		if e.Alias() {
			continue
		}
		assets = append(assets, Asset{
			Name: e.Name,
			URL:  e.URL,
			Path: e.AssetPath(baseDir),
		})
	}
	return assets
}
