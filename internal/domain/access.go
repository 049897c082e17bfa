package domain

// Access policy and stewardship resolution. These are pure predicates over
// already-loaded entities; callers are responsible for existence checks.

// CanViewEvent reports whether the user may view the event: it is public or
// the user owns it.
func CanViewEvent(event *Event, userID string) bool {
	return event.IsPublic || event.OwnerID == userID
}

// CanEditEvent reports whether the user may modify the event. Owner only.
func CanEditEvent(event *Event, userID string) bool {
	return event.OwnerID == userID
}

// Steward returns the user ID considered responsible for a thread: the author
// of the discussion with the smallest ID. IDs are sequence-assigned, so this
// is the earliest post in real time regardless of valid dates. Returns
// ErrNoDiscussions for an empty list.
func Steward(discussions []*Discussion) (string, error) {
	if len(discussions) == 0 {
		return "", ErrNoDiscussions
	}
	min := discussions[0]
	for _, d := range discussions[1:] {
		if d.ID < min.ID {
			min = d
		}
	}
	return min.AuthorID, nil
}

// CanViewThread reports whether the user may view a thread, given its
// discussions and associated events. The user must be the steward, or the
// thread must belong to at least one public event. Note that ownership of a
// private event containing the thread does not grant access on the fallback
// path; only public status is consulted.
func CanViewThread(discussions []*Discussion, events []*Event, userID string) bool {
	if steward, err := Steward(discussions); err == nil && steward == userID {
		return true
	}
	for _, e := range events {
		if e.IsPublic {
			return true
		}
	}
	return false
}

// CanEditThread reports whether the user may change a thread's title or valid
// date: the thread must be extensible and the user must be its steward. A
// frozen thread rejects edits even from the steward.
func CanEditThread(thread *Thread, discussions []*Discussion, userID string) bool {
	if !thread.IsExtensible {
		return false
	}
	steward, err := Steward(discussions)
	if err != nil {
		return false
	}
	return steward == userID
}

// CanExtendThread reports whether the user may append a discussion: the
// thread must be extensible and visible to the user. Freezing blocks
// everyone, steward included.
func CanExtendThread(thread *Thread, discussions []*Discussion, events []*Event, userID string) bool {
	if !thread.IsExtensible {
		return false
	}
	return CanViewThread(discussions, events, userID)
}
