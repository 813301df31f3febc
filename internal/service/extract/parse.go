package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mostafamoumen/contactchat/internal/core"
)

// Extraction is the strict two-field contract expected from the model. A nil
// field means the model found nothing for it.
type Extraction struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
}

// Complete reports whether both fields were extracted. Partial contacts are
// never persisted.
func (e Extraction) Complete() bool {
	return e.Name != nil && *e.Name != "" && e.PhoneNumber != nil && *e.PhoneNumber != ""
}

// Render serializes the extraction back to the canonical JSON answer.
func (e Extraction) Render() string {
	data, err := json.Marshal(e)
	if err != nil {
		return `{"name": null, "phone_number": null}`
	}
	return string(data)
}

// parseExtraction parses the raw model completion against the contract.
// Models occasionally wrap JSON in markdown fences; those are tolerated.
func parseExtraction(raw string) (Extraction, error) {
	s := strings.TrimSpace(raw)
	s = stripFences(s)

	var ex Extraction
	if err := json.Unmarshal([]byte(s), &ex); err != nil {
		return Extraction{}, fmt.Errorf("%w: %v", core.ErrParse, err)
	}

	ex.Name = normalizeField(ex.Name)
	ex.PhoneNumber = normalizeField(ex.PhoneNumber)
	return ex, nil
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// normalizeField folds whitespace-only and literal "null" strings to nil.
func normalizeField(field *string) *string {
	if field == nil {
		return nil
	}
	v := strings.TrimSpace(*field)
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	return &v
}
