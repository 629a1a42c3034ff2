package sheet

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Trait holds one trait category's values
type Trait struct {
	Value  TraitValue `json:"value"`
	Custom string     `json:"custom,omitempty"`
}

// TraitValue is either the canonical list of choice keys or a legacy scalar
// that has not been migrated yet.
type TraitValue struct {
	List   []string
	Legacy string
	IsList bool
}

// ListValue builds an already-migrated value
func ListValue(keys ...string) TraitValue {
	if keys == nil {
		keys = []string{}
	}
	return TraitValue{List: keys, IsList: true}
}

// LegacyValue builds an unmigrated scalar value
func LegacyValue(raw string) TraitValue {
	return TraitValue{Legacy: raw}
}

func (v TraitValue) MarshalJSON() ([]byte, error) {
	if v.IsList {
		list := v.List
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	}
	return json.Marshal(v.Legacy)
}

func (v *TraitValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*v = TraitValue{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = ListValue(list...)
		return nil
	case '"':
		return json.Unmarshal(data, &v.Legacy)
	}

	// numbers and booleans were written by very old sheets
	if f, err := strconv.ParseFloat(string(data), 64); err == nil {
		v.Legacy = strconv.FormatFloat(f, 'f', -1, 64)
		return nil
	}
	v.Legacy = string(data)
	return nil
}
