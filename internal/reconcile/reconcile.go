// Package reconcile collapses duplicate submission rows into the single
// authoritative row per (student, class, assignment title) key. The backend
// is expected to keep the key unique, but retries and double-clicks leave
// duplicates behind, and every screen that lists submissions needs the same
// cleanup.
package reconcile

import (
	"classroomclient/internal/domain"
)

// Submissions returns one row per distinct composite key, keeping the
// first-seen order of keys. Within a key the winner is chosen by:
//
//  1. a graded row with a score beats an ungraded one;
//  2. on a tie, the later of gradedAt/submittedAt wins (a row with any
//     timestamp beats a row with none);
//  3. on a full tie, the higher submission ID wins.
//
// The function is pure and idempotent: reconciling its own output returns
// the same rows.
func Submissions(records []domain.Submission) []domain.Submission {
	if len(records) == 0 {
		return nil
	}
	out := make([]domain.Submission, 0, len(records))
	index := make(map[domain.SubmissionKey]int, len(records))
	for _, rec := range records {
		key := rec.Key()
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, rec)
			continue
		}
		if outranks(rec, out[at]) {
			out[at] = rec
		}
	}
	return out
}

// outranks reports whether candidate should replace current for the same key.
func outranks(candidate, current domain.Submission) bool {
	cGraded, curGraded := candidate.IsGraded(), current.IsGraded()
	if cGraded != curGraded {
		return cGraded
	}

	cTime, cOK := candidate.EffectiveTime()
	curTime, curOK := current.EffectiveTime()
	switch {
	case cOK && !curOK:
		return true
	case !cOK && curOK:
		return false
	case cOK && curOK && !cTime.Equal(curTime):
		return cTime.After(curTime)
	}

	// Equally graded and equally recent: resolve by the backend-assigned
	// id so every caller picks the same winner.
	return candidate.ID > current.ID
}
