package form

import (
	"encoding/json"
	"fmt"
)

// Parse decodes a v3 form-definition document.
func Parse(raw []byte) (Definition, error) {
	if len(raw) == 0 {
		return Definition{}, fmt.Errorf("form: document is empty")
	}
	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return Definition{}, fmt.Errorf("form: decode definition: %w", err)
	}
	if def.ID == 0 {
		return Definition{}, fmt.Errorf("form: definition is missing an id")
	}
	return def, nil
}
