package form

// FieldMeta records where an entry sits in the form tree. GroupID is the id of
// the owning group entry, or zero for top-level entries.
type FieldMeta struct {
	Entry           Entry
	SectionName     string
	SectionPosition int
	SheetName       string
	SheetPosition   int
	GroupID         int64
}

// Group reports whether the entry belongs to a repeating group.
func (m FieldMeta) Group() bool {
	return m.GroupID != 0
}

// FieldIndex is the flattened lookup table derived from a Definition, keyed by
// entry id. It is built once per transformation and never modified afterward.
type FieldIndex struct {
	fields map[int64]FieldMeta
}

// Len returns the number of indexed entries.
func (ix FieldIndex) Len() int {
	return len(ix.fields)
}

// Lookup returns the metadata for an entry id.
func (ix FieldIndex) Lookup(id int64) (FieldMeta, bool) {
	meta, ok := ix.fields[id]
	return meta, ok
}

// Index flattens the Section→Sheet→Entry tree into a FieldIndex, preserving
// declaration order semantics through the recorded positions. Group entries
// are recursed into and their children tagged with the owning group id. The
// traversal is a pure function of the definition: it performs no I/O and does
// not mutate the input.
func Index(def Definition) (FieldIndex, error) {
	ix := FieldIndex{fields: make(map[int64]FieldMeta)}

	for _, section := range def.Sections {
		for _, sheet := range section.Sheets {
			for _, entry := range sheet.Entries {
				if err := ix.add(entry, section, sheet, 0); err != nil {
					return FieldIndex{}, err
				}
			}
		}
	}

	return ix, nil
}

func (ix FieldIndex) add(entry Entry, section Section, sheet Sheet, groupID int64) error {
	if _, exists := ix.fields[entry.ID]; exists {
		return &SchemaError{EntryID: entry.ID, Reason: "duplicate entry id"}
	}

	ix.fields[entry.ID] = FieldMeta{
		Entry:           entry,
		SectionName:     section.Description,
		SectionPosition: section.Position,
		SheetName:       sheet.Description,
		SheetPosition:   sheet.Position,
		GroupID:         groupID,
	}

	if entry.Type != EntryTypeGroup {
		return nil
	}
	if len(entry.Entries) == 0 {
		return &SchemaError{EntryID: entry.ID, Reason: "group entry has no child entries"}
	}
	for _, child := range entry.Entries {
		if err := ix.add(child, section, sheet, entry.ID); err != nil {
			return err
		}
	}
	return nil
}
