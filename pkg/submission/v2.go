package submission

// The v2 document mirrors the legacy consumer's XML-derived JSON shape:
// singular wrapper objects (Sections.Section, Screens.Screen,
// Responses.Response) around ordered arrays. Field names and the "No." key
// are fixed by the downstream contract.

// FormRefV2 identifies the form a v2 submission was filled against.
type FormRefV2 struct {
	ID      string `json:"Id"`
	Name    string `json:"Name"`
	Status  string `json:"Status"`
	Version string `json:"Version"`
}

// ResponseV2 is a single answered leaf entry. Value is a string for scalar
// entries or a []string for multi-select choice entries; unanswered entries
// never appear, so Value is never null.
type ResponseV2 struct {
	GUID  string `json:"Guid"`
	Label string `json:"Label"`
	Type  string `json:"Type"`
	Value any    `json:"Value"`
}

// ResponseListV2 wraps the ordered response array.
type ResponseListV2 struct {
	Response []ResponseV2 `json:"Response"`
}

// RowV2 is one occurrence of a repeating group, mirroring the group's child
// entry structure.
type RowV2 struct {
	Responses ResponseListV2 `json:"Responses"`
}

// ResponseGroupV2 holds the ordered rows answered for one repeating group.
type ResponseGroupV2 struct {
	GUID  string `json:"Guid,omitempty"`
	Label string `json:"Label,omitempty"`
	Rows  struct {
		Row []RowV2 `json:"Row"`
	} `json:"Rows"`
}

// ScreenV2 carries the responses collected on one sheet.
type ScreenV2 struct {
	Name           string `json:"Name"`
	ResponseGroups struct {
		ResponseGroup []ResponseGroupV2 `json:"ResponseGroup,omitempty"`
	} `json:"ResponseGroups"`
	Responses ResponseListV2 `json:"Responses"`
}

// SectionV2 pairs a section name with a single screen, one element per
// (section, sheet) pair that collected any responses.
type SectionV2 struct {
	Name    string `json:"Name"`
	Screens struct {
		Screen ScreenV2 `json:"Screen"`
	} `json:"Screens"`
}

// DocumentV2 is the transformed output document. Optional metadata fields are
// omitted when unknown rather than emitted as null.
type DocumentV2 struct {
	Date             string    `json:"Date,omitempty"`
	DeviceDate       string    `json:"DeviceDate,omitempty"`
	FirstName        string    `json:"FirstName,omitempty"`
	Form             FormRefV2 `json:"Form"`
	ID               string    `json:"Id"`
	LastName         string    `json:"LastName,omitempty"`
	Number           string    `json:"No.,omitempty"`
	ResponseID       string    `json:"ResponseID,omitempty"`
	Sections         struct {
		Section []SectionV2 `json:"Section"`
	} `json:"Sections"`
	SubmissionNumber string `json:"SubmissionNumber,omitempty"`
	UserName         string `json:"UserName,omitempty"`
}
