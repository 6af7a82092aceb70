package models

import appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"

// ClassifyEntryKind derives the work kind of a row from which reference codes
// are populated. Rows created before the explicit entry_kind column existed
// carry no discriminant, so the legacy rule applies: a lone ticket_code means
// ticket work, a lone activity_code means activity work, anything else is
// epic/task work. A row referencing more than one kind is ambiguous and is
// rejected rather than guessed.
func ClassifyEntryKind(epicCode, taskCode, ticketCode, activityCode *string) (EntryKind, error) {
	hasProject := present(epicCode) || present(taskCode)
	hasTicket := present(ticketCode)
	hasActivity := present(activityCode)

	populated := 0
	if hasProject {
		populated++
	}
	if hasTicket {
		populated++
	}
	if hasActivity {
		populated++
	}
	if populated > 1 {
		return "", appErrors.ErrAmbiguousEntry
	}

	switch {
	case hasTicket:
		return EntryKindTicket, nil
	case hasActivity:
		return EntryKindActivity, nil
	default:
		return EntryKindEpicTask, nil
	}
}

// ResolveEntryKind returns the stored discriminant when present, falling back
// to classification for legacy rows. A stored kind that contradicts the
// populated codes is also treated as ambiguous.
func (e *TimesheetEntry) ResolveEntryKind() (EntryKind, error) {
	inferred, err := ClassifyEntryKind(e.EpicCode, e.TaskCode, e.TicketCode, e.ActivityCode)
	if err != nil {
		return "", err
	}
	if e.EntryKind == "" {
		return inferred, nil
	}
	if !e.EntryKind.Valid() || e.EntryKind != inferred {
		return "", appErrors.ErrAmbiguousEntry
	}
	return e.EntryKind, nil
}

func present(s *string) bool {
	return s != nil && *s != ""
}
