package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

func sampleMinutes() models.MeetingRecord {
	return models.MeetingRecord{
		Title:        "Weekly Sync",
		Date:         time.Date(2025, 9, 1, 15, 4, 0, 0, time.UTC),
		Participants: []string{"Alice", "Bob"},
		Agenda:       []string{"Roadmap", "Hiring"},
		Discussion:   "We walked through the roadmap and agreed on Q4 priorities.",
		Decisions:    []string{"Ship the API by October"},
		ActionItems: []models.ActionItem{
			{Description: "Draft the release notes", Assignee: "Alice", DueDate: "2025-09-10"},
			{Description: "Close the hiring ticket", Completed: true},
		},
	}
}

func TestMinutesRoundTrip(t *testing.T) {
	rec := sampleMinutes()

	text := MinutesToText(rec)
	got, err := MinutesFromText(text)
	if err != nil {
		t.Fatalf("MinutesFromText() error: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("round trip mismatch:\n got: %+v\nwant: %+v", got, rec)
	}
}

func TestMinutesRoundTripEmptyLists(t *testing.T) {
	rec := models.MeetingRecord{
		Title:      "Quick Standup",
		Date:       time.Date(2025, 9, 2, 9, 30, 0, 0, time.UTC),
		Discussion: "Nothing to report.",
	}

	text := MinutesToText(rec)
	if !strings.Contains(text, "## Participants\nunknown\n") {
		t.Errorf("empty participants must render the unknown marker:\n%s", text)
	}
	if !strings.Contains(text, "## Agenda\nnone\n") {
		t.Errorf("empty agenda must render the none marker:\n%s", text)
	}
	if !strings.Contains(text, "## Action Items\nnone\n") {
		t.Errorf("empty action items must render the none marker:\n%s", text)
	}

	got, err := MinutesFromText(text)
	if err != nil {
		t.Fatalf("MinutesFromText() error: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("round trip mismatch:\n got: %+v\nwant: %+v", got, rec)
	}
}

func TestMinutesRoundTripMultiParagraphDiscussion(t *testing.T) {
	rec := models.MeetingRecord{
		Title:      "Planning",
		Date:       time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC),
		Discussion: "First paragraph.\n\nSecond paragraph after a break.",
	}

	got, err := MinutesFromText(MinutesToText(rec))
	if err != nil {
		t.Fatalf("MinutesFromText() error: %v", err)
	}
	if got.Discussion != rec.Discussion {
		t.Errorf("discussion = %q, want %q", got.Discussion, rec.Discussion)
	}
}

func TestMinutesFromTextMissingSections(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantSection string
	}{
		{
			name:        "missing title",
			text:        "## Date\n2025-09-01 15:04\n\n## Discussion\nhello\n",
			wantSection: "",
		},
		{
			name:        "missing date",
			text:        "# T\n\n## Discussion\nhello\n",
			wantSection: "Date",
		},
		{
			name:        "missing discussion",
			text:        "# T\n\n## Date\n2025-09-01 15:04\n",
			wantSection: "Discussion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MinutesFromText(tt.text)
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("error = %v, want *FormatError", err)
			}
			if ferr.Section != tt.wantSection {
				t.Errorf("section = %q, want %q", ferr.Section, tt.wantSection)
			}
		})
	}
}

func TestMinutesFromTextBadDate(t *testing.T) {
	text := "# T\n\n## Date\nnext tuesday\n\n## Discussion\nhello\n"

	_, err := MinutesFromText(text)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("error = %v, want *FormatError", err)
	}
	if ferr.Value != "next tuesday" {
		t.Errorf("value = %q, want the offending token", ferr.Value)
	}
	if ferr.Line == 0 {
		t.Errorf("line = 0, want the offending position")
	}
}

func TestMinutesFromTextBadActionItemDueDate(t *testing.T) {
	text := "# T\n\n## Date\n2025-09-01 15:04\n\n## Discussion\nhello\n\n" +
		"## Action Items\n- [ ] Do it\n  - due: someday\n"

	_, err := MinutesFromText(text)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("error = %v, want *FormatError", err)
	}
	if ferr.Value != "someday" {
		t.Errorf("value = %q, want %q", ferr.Value, "someday")
	}
}

func TestMinutesFromTextRecognizesBothCheckboxes(t *testing.T) {
	text := "# T\n\n## Date\n2025-09-01 15:04\n\n## Discussion\nhello\n\n" +
		"## Action Items\n- [ ] Open one\n- [x] Done one\n"

	rec, err := MinutesFromText(text)
	if err != nil {
		t.Fatalf("MinutesFromText() error: %v", err)
	}
	if len(rec.ActionItems) != 2 {
		t.Fatalf("expected 2 action items, got %d", len(rec.ActionItems))
	}
	if rec.ActionItems[0].Completed {
		t.Errorf("first item should be open")
	}
	if !rec.ActionItems[1].Completed {
		t.Errorf("second item should be completed")
	}
}
