package models

import "time"

// ActionItem is a lightweight task row inside meeting minutes.
type ActionItem struct {
	Description string
	Assignee    string
	DueDate     string
	Completed   bool
}

// MeetingRecord is the structured form of one meeting's minutes.
//
// Title and Discussion are required. Participants, Agenda, Decisions and
// ActionItems may be empty; the text codec renders explicit "none"/"unknown"
// markers for them so an empty list stays distinguishable from a parse error.
type MeetingRecord struct {
	Title        string
	Date         time.Time
	Participants []string
	Agenda       []string
	Discussion   string
	Decisions    []string
	ActionItems  []ActionItem
}
