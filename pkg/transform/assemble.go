package transform

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-canvas/pkg/form"
	"github.com/goliatone/go-canvas/pkg/submission"
)

// mappedAnswer pairs a mapped value with the v3 answer it came from so the
// assembler can prefer submission-time labels over form-time ones, the way the
// v2 consumer expects.
type mappedAnswer struct {
	answer submission.Answer
	value  MappedValue
}

// assemble re-nests mapped values into the v2 Section→Screen→Response shape by
// walking the form tree in the same order the indexer did. Entries without a
// mapped value are omitted; sections and sheets whose entries are all omitted
// produce no container at all.
func assemble(def form.Definition, mapped map[int64]mappedAnswer, doc submission.Document, dateLayout string) submission.DocumentV2 {
	out := submission.DocumentV2{
		Date:             formatDate(doc.CreatedAt, dateLayout),
		Form:             formRef(def),
		ID:               strconv.FormatInt(doc.ID, 10),
		Number:           doc.SubmissionNumber,
		ResponseID:       doc.ClientGUID,
		SubmissionNumber: doc.SubmissionNumber,
	}
	applyAnswerHeuristics(&out, doc)

	// The v2 consumer expects arrays, never null, so empty lists marshal as [].
	out.Sections.Section = []submission.SectionV2{}

	sections := append([]form.Section(nil), def.Sections...)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})

	for _, section := range sections {
		sheets := append([]form.Sheet(nil), section.Sheets...)
		sort.SliceStable(sheets, func(i, j int) bool {
			return sheets[i].Position < sheets[j].Position
		})

		for _, sheet := range sheets {
			screen := assembleScreen(sheet, mapped)
			if screen == nil {
				continue
			}
			sectionOut := submission.SectionV2{Name: section.Description}
			sectionOut.Screens.Screen = *screen
			out.Sections.Section = append(out.Sections.Section, sectionOut)
		}
	}

	return out
}

// assembleScreen emits one screen per sheet that collected at least one
// response or group row. A nil return means the whole sheet is omitted.
func assembleScreen(sheet form.Sheet, mapped map[int64]mappedAnswer) *submission.ScreenV2 {
	entries := append([]form.Entry(nil), sheet.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})

	screen := submission.ScreenV2{Name: sheet.Description}
	screen.Responses.Response = []submission.ResponseV2{}
	for _, entry := range entries {
		ma, ok := mapped[entry.ID]
		if !ok || !ma.value.Present() {
			continue
		}
		if entry.Type == form.EntryTypeGroup {
			if ma.value.Kind != KindRows {
				continue
			}
			group := assembleGroup(entry, ma.value.Rows)
			screen.ResponseGroups.ResponseGroup = append(screen.ResponseGroups.ResponseGroup, group)
			continue
		}
		screen.Responses.Response = append(screen.Responses.Response, leafResponse(entry, ma))
	}

	if len(screen.Responses.Response) == 0 && len(screen.ResponseGroups.ResponseGroup) == 0 {
		return nil
	}
	return &screen
}

func assembleGroup(entry form.Entry, rows []MappedRow) submission.ResponseGroupV2 {
	group := submission.ResponseGroupV2{
		GUID:  entry.GUID,
		Label: entry.Label,
	}
	group.Rows.Row = make([]submission.RowV2, 0, len(rows))

	for _, row := range rows {
		var rowOut submission.RowV2
		rowOut.Responses.Response = []submission.ResponseV2{}
		for _, child := range entry.Entries {
			value, ok := row[child.ID]
			if !ok || !value.Present() {
				continue
			}
			rowOut.Responses.Response = append(rowOut.Responses.Response, submission.ResponseV2{
				GUID:  child.GUID,
				Label: child.Label,
				Type:  string(child.Type),
				Value: value.leaf(),
			})
		}
		group.Rows.Row = append(group.Rows.Row, rowOut)
	}

	return group
}

func leafResponse(entry form.Entry, ma mappedAnswer) submission.ResponseV2 {
	label := ma.answer.Label
	if label == "" {
		label = entry.Label
	}
	typ := ma.answer.Type
	if typ == "" {
		typ = string(entry.Type)
	}
	return submission.ResponseV2{
		GUID:  entry.GUID,
		Label: label,
		Type:  typ,
		Value: ma.value.leaf(),
	}
}

func formRef(def form.Definition) submission.FormRefV2 {
	return submission.FormRefV2{
		ID:      strconv.FormatInt(def.ID, 10),
		Name:    def.Name,
		Status:  def.Status,
		Version: strconv.Itoa(def.Version),
	}
}

// formatDate converts the v3 ISO timestamp into the dotted layout v2 uses.
// Timestamps arrive with or without a zone offset; unparseable input passes
// through unchanged rather than losing the data.
func formatDate(value, layout string) string {
	if value == "" {
		return ""
	}
	for _, in := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(in, value); err == nil {
			return parsed.Format(layout)
		}
	}
	return value
}

// applyAnswerHeuristics backfills v2 root fields that v3 has no dedicated slot
// for by sniffing well-known labels and the first email-shaped value.
func applyAnswerHeuristics(out *submission.DocumentV2, doc submission.Document) {
	for _, answer := range doc.Responses {
		var value string
		if err := json.Unmarshal(answer.Value, &value); err != nil || value == "" {
			continue
		}

		label := strings.ToLower(answer.Label)
		switch {
		case strings.Contains(label, "firstname") || strings.Contains(label, "first name"):
			out.FirstName = value
		case strings.Contains(label, "lastname") || strings.Contains(label, "last name"):
			out.LastName = value
		case strings.Contains(label, "devicedate") || strings.Contains(label, "device date"):
			out.DeviceDate = value
		}

		if out.UserName == "" && strings.Contains(value, "@") && strings.Contains(value, ".") {
			out.UserName = value
		}
	}
}
