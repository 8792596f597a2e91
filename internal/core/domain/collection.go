package domain

import "time"

// Keyed is implemented by sub-items carrying a stable unique id.
type Keyed interface {
	Key() string
}

// Prepend returns a new slice with item at index 0 and the existing items
// after it. Newest-first ordering for experience and education is an
// insertion-time invariant, not a display-time sort.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// RemoveByID returns a new slice with the first item whose key matches id
// excised, preserving the relative order of the remainder. When no item
// matches, it returns ErrItemNotFound and the input is untouched.
func RemoveByID[T Keyed](items []T, id string) ([]T, error) {
	for i, it := range items {
		if it.Key() == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), nil
		}
	}
	return nil, ErrItemNotFound
}

// AppendLike adds a like for the actor. Each actor appears at most once;
// a duplicate fails with ErrAlreadyLiked and leaves the input untouched.
func AppendLike(likes []Like, actorID string, now time.Time) ([]Like, error) {
	for _, l := range likes {
		if l.ActorID == actorID {
			return nil, ErrAlreadyLiked
		}
	}
	out := make([]Like, 0, len(likes)+1)
	out = append(out, likes...)
	return append(out, Like{ActorID: actorID, LikedAt: now}), nil
}

// RemoveLike removes the actor's like. When the actor never liked the
// post, it fails with ErrNotLiked and the input is untouched.
func RemoveLike(likes []Like, actorID string) ([]Like, error) {
	for i, l := range likes {
		if l.ActorID == actorID {
			out := make([]Like, 0, len(likes)-1)
			out = append(out, likes[:i]...)
			return append(out, likes[i+1:]...), nil
		}
	}
	return nil, ErrNotLiked
}
