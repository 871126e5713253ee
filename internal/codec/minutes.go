package codec

import (
	"strings"
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

// Minutes section headings, in render order.
const (
	sectionDate         = "Date"
	sectionParticipants = "Participants"
	sectionAgenda       = "Agenda"
	sectionDiscussion   = "Discussion"
	sectionDecisions    = "Decisions"
	sectionActionItems  = "Action Items"
)

const (
	keyAssignee = "assignee"
	keyDue      = "due"
)

// MinutesToText renders a meeting record into the fixed Markdown layout.
func MinutesToText(rec models.MeetingRecord) string {
	var b strings.Builder

	b.WriteString(titlePrefix + rec.Title + "\n\n")

	b.WriteString(sectionPrefix + sectionDate + "\n")
	b.WriteString(rec.Date.Format(dateLayout) + "\n\n")

	b.WriteString(sectionPrefix + sectionParticipants + "\n")
	if len(rec.Participants) == 0 {
		b.WriteString(markerUnknown + "\n")
	} else {
		for _, p := range rec.Participants {
			b.WriteString(bulletPrefix + p + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(sectionPrefix + sectionAgenda + "\n")
	writeBulletsOrNone(&b, rec.Agenda)

	b.WriteString(sectionPrefix + sectionDiscussion + "\n")
	b.WriteString(rec.Discussion + "\n\n")

	b.WriteString(sectionPrefix + sectionDecisions + "\n")
	writeBulletsOrNone(&b, rec.Decisions)

	b.WriteString(sectionPrefix + sectionActionItems + "\n")
	if len(rec.ActionItems) == 0 {
		b.WriteString(markerNone + "\n")
	} else {
		for _, item := range rec.ActionItems {
			checkbox := checkboxOpen
			if item.Completed {
				checkbox = checkboxDone
			}
			b.WriteString(bulletPrefix + checkbox + item.Description + "\n")
			if item.Assignee != "" {
				b.WriteString(subBulletPrefix + keyAssignee + ": " + item.Assignee + "\n")
			}
			if item.DueDate != "" {
				b.WriteString(subBulletPrefix + keyDue + ": " + item.DueDate + "\n")
			}
		}
	}
	b.WriteString("\n")

	return b.String()
}

func writeBulletsOrNone(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString(markerNone + "\n")
	} else {
		for _, item := range items {
			b.WriteString(bulletPrefix + item + "\n")
		}
	}
	b.WriteString("\n")
}

// MinutesFromText parses a Markdown document back into a meeting record.
// Missing title, date or discussion sections and unparseable dates fail
// with a *FormatError.
func MinutesFromText(text string) (models.MeetingRecord, error) {
	var rec models.MeetingRecord

	doc := splitDocument(text)
	if doc.title == "" {
		return rec, &FormatError{Reason: "title heading is missing"}
	}
	rec.Title = doc.title

	dateSec, ok := doc.section(sectionDate)
	if !ok {
		return rec, missingSection(sectionDate)
	}
	dateLine, ok := dateSec.firstContentLine()
	if !ok {
		return rec, missingSection(sectionDate)
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(dateLine.text))
	if err != nil {
		return rec, &FormatError{
			Section: sectionDate,
			Value:   strings.TrimSpace(dateLine.text),
			Line:    dateLine.number,
			Reason:  "date must use the YYYY-MM-DD HH:MM layout",
		}
	}
	rec.Date = date

	if sec, ok := doc.section(sectionParticipants); ok {
		rec.Participants = sec.bullets(markerUnknown)
	}
	if sec, ok := doc.section(sectionAgenda); ok {
		rec.Agenda = sec.bullets(markerNone)
	}

	discussionSec, ok := doc.section(sectionDiscussion)
	if !ok {
		return rec, missingSection(sectionDiscussion)
	}
	rec.Discussion = discussionSec.body()
	if rec.Discussion == "" {
		return rec, &FormatError{Section: sectionDiscussion, Reason: "discussion is empty"}
	}

	if sec, ok := doc.section(sectionDecisions); ok {
		rec.Decisions = sec.bullets(markerNone)
	}

	itemsSec, ok := doc.section(sectionActionItems)
	if ok {
		items, err := parseActionItems(itemsSec)
		if err != nil {
			return rec, err
		}
		rec.ActionItems = items
	}

	return rec, nil
}

func parseActionItems(sec section) ([]models.ActionItem, error) {
	var items []models.ActionItem
	for _, line := range sec.lines {
		switch {
		case strings.HasPrefix(line.text, bulletPrefix):
			rest := strings.TrimPrefix(line.text, bulletPrefix)
			completed := false
			switch {
			case strings.HasPrefix(rest, checkboxOpen):
				rest = strings.TrimPrefix(rest, checkboxOpen)
			case strings.HasPrefix(rest, checkboxDone):
				rest = strings.TrimPrefix(rest, checkboxDone)
				completed = true
			default:
				return nil, &FormatError{
					Section: sectionActionItems,
					Value:   line.text,
					Line:    line.number,
					Reason:  "action item bullet must carry a [ ] or [x] checkbox",
				}
			}
			items = append(items, models.ActionItem{
				Description: strings.TrimSpace(rest),
				Completed:   completed,
			})

		case strings.HasPrefix(line.text, subBulletPrefix):
			if len(items) == 0 {
				return nil, &FormatError{
					Section: sectionActionItems,
					Value:   line.text,
					Line:    line.number,
					Reason:  "detail line appears before any action item",
				}
			}
			key, value, ok := splitDetail(line.text)
			if !ok {
				continue
			}
			item := &items[len(items)-1]
			switch key {
			case keyAssignee:
				item.Assignee = value
			case keyDue:
				if _, err := time.Parse(dueDateLayout, value); err != nil {
					return nil, &FormatError{
						Section: sectionActionItems,
						Value:   value,
						Line:    line.number,
						Reason:  "due date must use the YYYY-MM-DD layout",
					}
				}
				item.DueDate = value
			}
		}
	}
	return items, nil
}
