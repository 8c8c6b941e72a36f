package transform

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goliatone/go-canvas/pkg/form"
)

// ValueKind tags the variant a MappedValue holds.
type ValueKind int

const (
	// KindAbsent is the zero value: the answer carried nothing and the entry
	// is omitted from the output.
	KindAbsent ValueKind = iota
	// KindScalar is a single string value.
	KindScalar
	// KindList is an ordered list of strings (multi-select choice entries).
	KindList
	// KindRows is an ordered row-set for a repeating group.
	KindRows
)

// MappedRow holds one repeating-group occurrence, keyed by child entry id.
type MappedRow map[int64]MappedValue

// MappedValue is the v2 encoding of a single v3 answer, tagged by kind so the
// assembler can dispatch without re-inspecting raw JSON.
type MappedValue struct {
	Kind   ValueKind
	Scalar string
	List   []string
	Rows   []MappedRow
}

// Present reports whether the value carries anything to emit.
func (v MappedValue) Present() bool {
	return v.Kind != KindAbsent
}

// leaf returns the Response.Value encoding for scalar and list kinds.
func (v MappedValue) leaf() any {
	switch v.Kind {
	case KindScalar:
		return v.Scalar
	case KindList:
		return v.List
	default:
		return nil
	}
}

// mapper converts raw answer payloads into MappedValues. It owns the report
// for the duration of one transformation so nested row anomalies surface the
// same way top-level ones do.
type mapper struct {
	index  form.FieldIndex
	report *Report
}

// mapValue dispatches on the entry's declared type. A nil return error means
// the value was mapped (possibly to absent); a *UnmappableValueError means the
// caller should skip this answer.
func (m *mapper) mapValue(meta form.FieldMeta, raw json.RawMessage) (MappedValue, error) {
	if isAbsent(raw) {
		return MappedValue{}, nil
	}

	entry := meta.Entry
	switch entry.Type {
	case form.EntryTypeText, form.EntryTypeDate, form.EntryTypeTime:
		return m.mapString(entry, raw)
	case form.EntryTypeNumber:
		return m.mapNumber(entry, raw)
	case form.EntryTypeChoice:
		return m.mapChoice(entry, raw)
	case form.EntryTypeSignature, form.EntryTypeImage, form.EntryTypeAttachment:
		return m.mapMedia(entry, raw)
	case form.EntryTypeGroup:
		return m.mapGroup(meta, raw)
	default:
		return m.mapFallback(entry, raw), nil
	}
}

func (m *mapper) mapString(entry form.Entry, raw json.RawMessage) (MappedValue, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return MappedValue{}, &UnmappableValueError{EntryID: entry.ID, Type: entry.Type, Reason: "expected a string"}
	}
	if value == "" {
		return MappedValue{}, nil
	}
	return MappedValue{Kind: KindScalar, Scalar: value}, nil
}

func (m *mapper) mapNumber(entry form.Entry, raw json.RawMessage) (MappedValue, error) {
	// Numbers arrive either as JSON numbers or as pre-formatted strings; both
	// normalize to the string encoding v2 expects.
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return MappedValue{}, nil
		}
		return MappedValue{Kind: KindScalar, Scalar: asString}, nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		return MappedValue{}, &UnmappableValueError{EntryID: entry.ID, Type: entry.Type, Reason: "expected a number or numeric string"}
	}
	return MappedValue{Kind: KindScalar, Scalar: asNumber.String()}, nil
}

func (m *mapper) mapChoice(entry form.Entry, raw json.RawMessage) (MappedValue, error) {
	var selected []string
	if err := json.Unmarshal(raw, &selected); err != nil {
		return MappedValue{}, &UnmappableValueError{EntryID: entry.ID, Type: entry.Type, Reason: "expected an array of option ids"}
	}
	if len(selected) == 0 {
		return MappedValue{}, nil
	}

	labels := make([]string, len(selected))
	for i, id := range selected {
		labels[i] = optionLabel(entry, id)
	}

	if entry.Multi {
		return MappedValue{Kind: KindList, List: labels}, nil
	}
	return MappedValue{Kind: KindScalar, Scalar: strings.Join(labels, ", ")}, nil
}

// optionLabel resolves a selected option id to its declared label, passing the
// id through verbatim when the form declares no matching option.
func optionLabel(entry form.Entry, id string) string {
	for _, opt := range entry.Options {
		if opt.ID == id {
			return opt.Label
		}
	}
	return id
}

func (m *mapper) mapMedia(entry form.Entry, raw json.RawMessage) (MappedValue, error) {
	var ref struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(raw, &ref); err != nil {
		return MappedValue{}, &UnmappableValueError{EntryID: entry.ID, Type: entry.Type, Reason: "expected a reference object"}
	}
	// v2 has a single flat slot; remaining reference metadata is dropped.
	switch {
	case ref.Filename != "":
		return MappedValue{Kind: KindScalar, Scalar: ref.Filename}, nil
	case ref.URL != "":
		return MappedValue{Kind: KindScalar, Scalar: ref.URL}, nil
	default:
		return MappedValue{}, nil
	}
}

func (m *mapper) mapGroup(meta form.FieldMeta, raw json.RawMessage) (MappedValue, error) {
	entry := meta.Entry

	var rawRows []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rawRows); err != nil {
		return MappedValue{}, &UnmappableValueError{EntryID: entry.ID, Type: entry.Type, Reason: "expected an array of row objects"}
	}
	if len(rawRows) == 0 {
		return MappedValue{}, nil
	}

	rows := make([]MappedRow, 0, len(rawRows))
	for _, rawRow := range rawRows {
		row := make(MappedRow, len(rawRow))
		for key, cell := range rawRow {
			childID, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				m.report.add(Diagnostic{
					Kind:    DiagnosticUnknownField,
					EntryID: entry.ID,
					Err:     &UnknownFieldError{EntryID: entry.ID, Label: key},
				})
				continue
			}
			childMeta, ok := m.index.Lookup(childID)
			if !ok || childMeta.GroupID != entry.ID {
				m.report.add(Diagnostic{
					Kind:    DiagnosticUnknownField,
					EntryID: childID,
					Err:     &UnknownFieldError{EntryID: childID},
				})
				continue
			}
			value, err := m.mapValue(childMeta, cell)
			if err != nil {
				m.report.add(Diagnostic{
					Kind:    DiagnosticUnmappableValue,
					EntryID: childID,
					Label:   childMeta.Entry.Label,
					Err:     err,
				})
				continue
			}
			if value.Present() {
				row[childID] = value
			}
		}
		// Every submitted row survives, empty or not, so the assembled output
		// keeps exactly N rows in submission order.
		rows = append(rows, row)
	}

	return MappedValue{Kind: KindRows, Rows: rows}, nil
}

// mapFallback stringifies values for entry types without a canonical rule and
// records a warning-level diagnostic so the downgrade is never silent.
func (m *mapper) mapFallback(entry form.Entry, raw json.RawMessage) MappedValue {
	m.report.add(Diagnostic{
		Kind:    DiagnosticUnknownType,
		EntryID: entry.ID,
		Label:   entry.Label,
	})

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return MappedValue{Kind: KindScalar, Scalar: string(raw)}
	}
	rendered := stringify(value)
	if rendered == "" {
		return MappedValue{}
	}
	return MappedValue{Kind: KindScalar, Scalar: rendered}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}
