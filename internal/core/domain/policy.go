package domain

// Decision is the outcome of an ownership check.
type Decision uint8

const (
	Allow Decision = iota
	Forbidden
	NotFound
)

// PermitAggregateMutation decides whether the actor may mutate the
// aggregate itself (update profile fields, delete a post or profile):
// owner only. A missing aggregate short-circuits to NotFound before any
// ownership evaluation so the response never leaks existence.
func PermitAggregateMutation(actor Actor, ownerID string, found bool) Decision {
	if !found {
		return NotFound
	}
	if actor.SubjectID != ownerID {
		return Forbidden
	}
	return Allow
}

// PermitEntryMutation decides whether the actor may append or remove an
// experience or education entry: only the profile owner edits their own
// history.
func PermitEntryMutation(actor Actor, ownerID string, found bool) Decision {
	return PermitAggregateMutation(actor, ownerID, found)
}

// PermitCommentRemoval decides whether the actor may remove a comment:
// the post owner moderates any comment, the comment author retracts
// their own. A missing comment is NotFound regardless of who asks.
func PermitCommentRemoval(actor Actor, postOwnerID string, comment *Comment) Decision {
	if comment == nil {
		return NotFound
	}
	if actor.SubjectID == postOwnerID || actor.SubjectID == comment.AuthorID {
		return Allow
	}
	return Forbidden
}

// DecisionErr converts a Decision into the sentinel error for the
// aggregate kind being guarded, or nil for Allow.
func DecisionErr(d Decision, notFound error) error {
	switch d {
	case Forbidden:
		return ErrForbidden
	case NotFound:
		return notFound
	default:
		return nil
	}
}
