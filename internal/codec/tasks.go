package codec

import (
	"sort"
	"strings"
	"time"

	"github.com/adanyl0v/go-minutes/internal/models"
)

const (
	batchTitle = "Task List"

	metaSessionID      = "Session ID"
	metaSourceRecordID = "Source Record ID"
	metaStatus         = "Status"

	emptyBatchMarker = "No tasks found."

	keyDescription = "description"
	keyID          = "id"
	keyQuote       = "quote"
)

// BatchToText renders a task batch into the fixed Markdown layout. Tasks are
// grouped under HIGH/MEDIUM/LOW headings, keeping input order inside each
// group. An empty batch renders the explicit empty marker, never a bare
// document.
func BatchToText(batch models.TaskBatch) string {
	var b strings.Builder

	b.WriteString(titlePrefix + batchTitle + "\n\n")
	b.WriteString(bulletPrefix + "**" + metaSessionID + "**: " + batch.SessionID + "\n")
	b.WriteString(bulletPrefix + "**" + metaSourceRecordID + "**: " + batch.SourceRecordID + "\n")
	b.WriteString(bulletPrefix + "**" + metaStatus + "**: " + batch.Status + "\n\n")

	if len(batch.Tasks) == 0 {
		b.WriteString(emptyBatchMarker + "\n")
		return b.String()
	}

	sorted := make([]models.Task, len(batch.Tasks))
	copy(sorted, batch.Tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
	})

	var current models.Priority
	for _, task := range sorted {
		if task.Priority != current {
			current = task.Priority
			b.WriteString(sectionPrefix + strings.ToUpper(string(current)) + "\n\n")
		}

		b.WriteString(bulletPrefix + checkboxOpen + task.Title + "\n")
		if task.Assignee != "" {
			b.WriteString(subBulletPrefix + keyAssignee + ": " + task.Assignee + "\n")
		}
		if task.HasDueDate() {
			b.WriteString(subBulletPrefix + keyDue + ": " + task.DueDate.Format(dueDateLayout) + "\n")
		}
		b.WriteString(subBulletPrefix + keyDescription + ": " + task.Description + "\n")
		b.WriteString(subBulletPrefix + keyID + ": " + task.ID + "\n")
		b.WriteString(subBulletPrefix + keyQuote + ": " + task.SourceQuote + "\n\n")
	}

	return b.String()
}

// BatchFromText parses a Markdown document back into a task batch. Priority
// is recovered from the section heading each task sits under; the labeled
// sub-bullets recover the per-task fields.
func BatchFromText(text string) (models.TaskBatch, error) {
	var batch models.TaskBatch

	doc := splitDocument(text)
	if doc.title == "" {
		return batch, &FormatError{Reason: "title heading is missing"}
	}

	meta := parseMetadata(text)

	sessionID, ok := meta[metaSessionID]
	if !ok || sessionID == "" {
		return batch, missingSection(metaSessionID)
	}
	batch.SessionID = sessionID

	sourceID, ok := meta[metaSourceRecordID]
	if !ok || sourceID == "" {
		return batch, missingSection(metaSourceRecordID)
	}
	batch.SourceRecordID = sourceID

	status, ok := meta[metaStatus]
	if !ok {
		return batch, missingSection(metaStatus)
	}
	switch status {
	case models.StatusPending, models.StatusApproved,
		models.StatusRevisionRequested, models.StatusCancelled:
		batch.Status = status
	default:
		return batch, &FormatError{
			Section: metaStatus,
			Value:   status,
			Reason:  "unknown status token",
		}
	}

	for _, sec := range doc.sections {
		priority := models.Priority(strings.ToLower(sec.name))
		if !priority.Valid() {
			return batch, &FormatError{
				Section: sec.name,
				Value:   sec.name,
				Reason:  "unknown priority heading",
			}
		}
		tasks, err := parseTaskSection(sec, priority)
		if err != nil {
			return batch, err
		}
		batch.Tasks = append(batch.Tasks, tasks...)
	}

	for _, task := range batch.Tasks {
		if err := requireTaskFields(task); err != nil {
			return batch, err
		}
	}

	return batch, nil
}

// parseMetadata pulls the "- **Key**: value" bullets that precede the first
// priority section.
func parseMetadata(text string) map[string]string {
	meta := make(map[string]string)
	for _, raw := range strings.Split(text, "\n") {
		if strings.HasPrefix(raw, sectionPrefix) {
			break
		}
		rest, found := strings.CutPrefix(raw, bulletPrefix+"**")
		if !found {
			continue
		}
		key, value, found := strings.Cut(rest, "**:")
		if !found {
			continue
		}
		meta[key] = strings.TrimSpace(value)
	}
	return meta
}

func parseTaskSection(sec section, priority models.Priority) ([]models.Task, error) {
	var tasks []models.Task
	for _, l := range sec.lines {
		switch {
		case strings.HasPrefix(l.text, bulletPrefix+checkboxOpen),
			strings.HasPrefix(l.text, bulletPrefix+checkboxDone):
			title := strings.TrimPrefix(l.text, bulletPrefix+checkboxOpen)
			title = strings.TrimPrefix(title, bulletPrefix+checkboxDone)
			tasks = append(tasks, models.Task{
				Title:    strings.TrimSpace(title),
				Priority: priority,
			})

		case strings.HasPrefix(l.text, subBulletPrefix):
			if len(tasks) == 0 {
				return nil, &FormatError{
					Section: sec.name,
					Value:   l.text,
					Line:    l.number,
					Reason:  "detail line appears before any task",
				}
			}
			key, value, ok := splitDetail(l.text)
			if !ok {
				continue
			}
			task := &tasks[len(tasks)-1]
			switch key {
			case keyAssignee:
				task.Assignee = value
			case keyDue:
				due, err := time.Parse(dueDateLayout, value)
				if err != nil {
					return nil, &FormatError{
						Section: sec.name,
						Value:   value,
						Line:    l.number,
						Reason:  "due date must use the YYYY-MM-DD layout",
					}
				}
				task.DueDate = due
			case keyDescription:
				task.Description = value
			case keyID:
				task.ID = value
			case keyQuote:
				task.SourceQuote = value
			}
		}
	}
	return tasks, nil
}

func requireTaskFields(task models.Task) error {
	if task.Description == "" {
		return &FormatError{
			Section: strings.ToUpper(string(task.Priority)),
			Value:   task.Title,
			Reason:  "task is missing its description detail",
		}
	}
	if task.ID == "" {
		return &FormatError{
			Section: strings.ToUpper(string(task.Priority)),
			Value:   task.Title,
			Reason:  "task is missing its id detail",
		}
	}
	// The quote detail may be empty: extraction does not always surface a
	// supporting quote, and the line itself is always rendered.
	return nil
}
