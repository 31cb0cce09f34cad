package normalization

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Ref is an entity reference as it arrives from upstream payloads, where the
// same field may carry a bare integer ID, a numeric string, or an embedded
// object with an "id" field (plus optional "code"/"name"). Decoding never
// fails on an unresolvable shape; the reference simply resolves to nothing and
// the caller skips the record.
type Ref struct {
	id       int
	resolved bool

	// Carried along when the upstream shape was an embedded object. Used for
	// name-based dedupe and course-code lookups, never for identity on its own
	// when an ID is present.
	Code string
	Name string
}

// RefFromID builds a resolved reference from a canonical ID.
func RefFromID(id int) Ref {
	return Ref{id: id, resolved: true}
}

// ID returns the canonical integer ID and whether the reference resolved.
func (r Ref) ID() (int, bool) {
	return r.id, r.resolved
}

func (r Ref) IsZero() bool {
	return !r.resolved && r.Code == "" && r.Name == ""
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.resolved {
		return []byte("null"), nil
	}
	if r.Code == "" && r.Name == "" {
		return json.Marshal(r.id)
	}
	return json.Marshal(map[string]any{"id": r.id, "code": r.Code, "name": r.Name})
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var asInt int
	if err := json.Unmarshal(data, &asInt); err == nil {
		r.id = asInt
		r.resolved = true
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if n, convErr := strconv.Atoi(strings.TrimSpace(asString)); convErr == nil {
			r.id = n
			r.resolved = true
		}
		return nil
	}

	var asObject struct {
		ID   *json.Number `json:"id"`
		Code string       `json:"code"`
		Name string       `json:"name"`
	}
	if err := json.Unmarshal(data, &asObject); err == nil {
		r.Code = strings.TrimSpace(asObject.Code)
		r.Name = strings.TrimSpace(asObject.Name)
		if asObject.ID != nil {
			if n, convErr := strconv.Atoi(asObject.ID.String()); convErr == nil {
				r.id = n
				r.resolved = true
			}
		}
		return nil
	}

	// Arrays, booleans and other shapes resolve to nothing rather than
	// aborting the whole payload.
	return nil
}
