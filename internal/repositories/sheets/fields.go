package sheets

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/KirkDiggler/pf2e-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
)

const (
	fieldOwnerID   = "owner_id"
	fieldUpdatedAt = "updated_at"
	fieldRevision  = "revision"
)

// fields that identify a stored document and may not be rewritten
var immutableFields = map[string]bool{
	"id":         true,
	"owner_id":   true,
	"created_at": true,
	"updated_at": true,
	"revision":   true,
}

// ApplyFields writes each path into a stored sheet document and stamps
// updated_at and the next revision. A path must exist already, or name a new
// key of an existing object.
func ApplyFields(doc []byte, fields map[string]any, now time.Time) ([]byte, error) {
	if len(fields) == 0 {
		return nil, dnderr.InvalidArgument("at least one field is required")
	}
	if !gjson.ValidBytes(doc) {
		return nil, dnderr.Internal("stored sheet is not valid JSON")
	}

	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var err error
	for _, path := range paths {
		if err = validatePath(doc, path); err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, path, fields[path])
		if err != nil {
			return nil, dnderr.InvalidArgumentf("failed to set field %q: %v", path, err).
				WithMeta("field", path)
		}
	}

	doc, err = sjson.SetBytes(doc, fieldUpdatedAt, now)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to stamp sheet")
	}
	doc, err = sjson.SetBytes(doc, fieldRevision, storedRevision(doc)+1)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to stamp sheet revision")
	}

	return doc, nil
}

func storedRevision(doc []byte) int64 {
	return gjson.GetBytes(doc, fieldRevision).Int()
}

// checkRevision rejects a whole-sheet write built from a stale read
func checkRevision(doc []byte, id string, expected int64) error {
	if stored := storedRevision(doc); stored != expected {
		return dnderr.Conflictf("sheet %s changed since it was read", id).
			WithMeta("sheet_id", id).
			WithMeta("revision", stored)
	}
	return nil
}

func validatePath(doc []byte, path string) error {
	if path == "" || strings.ContainsAny(path, "*?#|@\\") || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return dnderr.InvalidArgumentf("invalid field path %q", path).WithMeta("field", path)
	}

	root, _, _ := strings.Cut(path, ".")
	if immutableFields[root] {
		return dnderr.InvalidArgumentf("field %q cannot be updated", path).WithMeta("field", path)
	}

	if gjson.GetBytes(doc, path).Exists() {
		return nil
	}

	parent := "@this"
	if i := strings.LastIndex(path, "."); i >= 0 {
		parent = path[:i]
	}
	if gjson.GetBytes(doc, parent).IsObject() {
		return nil
	}

	return dnderr.InvalidArgumentf("unknown field %q", path).WithMeta("field", path)
}

func encodeSheet(s *sheet.Sheet) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to marshal sheet")
	}
	return data, nil
}

func decodeSheet(data []byte) (*sheet.Sheet, error) {
	var s sheet.Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, dnderr.Wrap(err, "failed to unmarshal sheet")
	}
	return &s, nil
}
