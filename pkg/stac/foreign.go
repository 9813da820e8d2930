package stac

import "encoding/json"

// foreignMembers decodes every top-level member of data not listed in known.
func foreignMembers(data []byte, known map[string]bool) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	extra := make(map[string]any)
	for key, val := range raw {
		if known[key] {
			continue
		}
		var decoded any
		if err := json.Unmarshal(val, &decoded); err != nil {
			continue
		}
		extra[key] = decoded
	}
	return extra, nil
}

// withMembers adds members to the JSON object in data. Modelled fields win
// over additional fields of the same name.
func withMembers(data []byte, extra map[string]any, override map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 && len(override) == 0 {
		return data, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for key, val := range extra {
		if _, ok := obj[key]; ok {
			continue
		}
		encoded, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		obj[key] = encoded
	}
	for key, val := range override {
		obj[key] = val
	}
	return json.Marshal(obj)
}
