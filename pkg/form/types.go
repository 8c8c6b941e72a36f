package form

// EntryType is the declared field kind for a form entry. The v3 API reports
// types as lowercase strings; anything outside this set is handled by the
// transformer's string-representation fallback.
type EntryType string

const (
	EntryTypeText       EntryType = "text"
	EntryTypeNumber     EntryType = "number"
	EntryTypeDate       EntryType = "date"
	EntryTypeTime       EntryType = "time"
	EntryTypeChoice     EntryType = "choice"
	EntryTypeSignature  EntryType = "signature"
	EntryTypeImage      EntryType = "image"
	EntryTypeAttachment EntryType = "attachment"
	EntryTypeGroup      EntryType = "group"
)

// Known reports whether the type is one the value mapper has a canonical
// encoding rule for.
func (t EntryType) Known() bool {
	switch t {
	case EntryTypeText, EntryTypeNumber, EntryTypeDate, EntryTypeTime,
		EntryTypeChoice, EntryTypeSignature, EntryTypeImage,
		EntryTypeAttachment, EntryTypeGroup:
		return true
	}
	return false
}

// Option is a selectable choice on a choice entry.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Entry is a single field declaration inside a sheet. Entries of type group
// carry their child declarations in Entries; one submission may answer a group
// with any number of rows, each row answering the children.
type Entry struct {
	ID       int64     `json:"id"`
	GUID     string    `json:"guid,omitempty"`
	Label    string    `json:"label,omitempty"`
	Type     EntryType `json:"type"`
	Position int       `json:"position,omitempty"`
	Multi    bool      `json:"multi,omitempty"`
	Options  []Option  `json:"options,omitempty"`
	Entries  []Entry   `json:"entries,omitempty"`
}

// Sheet groups entries under a named screen within a section.
type Sheet struct {
	Description string  `json:"description,omitempty"`
	Position    int     `json:"position,omitempty"`
	Entries     []Entry `json:"entries,omitempty"`
}

// Section is the top-level grouping of a form definition.
type Section struct {
	Description string  `json:"description,omitempty"`
	Position    int     `json:"position,omitempty"`
	Sheets      []Sheet `json:"sheets,omitempty"`
}

// Definition is the full nested form document returned by GET /forms/{id}.
// It is read-only input for a transformation; nothing in this module mutates
// it after decoding.
type Definition struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name,omitempty"`
	Status   string    `json:"status,omitempty"`
	Version  int       `json:"version,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}
