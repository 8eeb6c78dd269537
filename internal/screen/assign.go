package screen

import (
	"context"
	"errors"

	"github.com/pageza/vitality/web/internal/types"
)

// ErrUserNotListed is returned when the assigned user is not in the list
var ErrUserNotListed = errors.New("user not found in list")

// Tentative is a local change applied ahead of the backend's confirmation.
// Settle keeps it on success and restores the previous value on failure.
type Tentative[T any] struct {
	previous T
	apply    func(T)
}

// Begin applies next immediately and remembers current for rollback
func Begin[T any](current, next T, apply func(T)) *Tentative[T] {
	apply(next)
	return &Tentative[T]{previous: current, apply: apply}
}

// Settle rolls the change back when err is not nil, and returns err
func (t *Tentative[T]) Settle(err error) error {
	if err != nil {
		t.apply(t.previous)
	}
	return err
}

// AssignTrainer sets the trainer of userID in users, then commits it. A
// failed commit restores the previous trainer. A nil trainerID unassigns.
func AssignTrainer(
	ctx context.Context,
	users []types.User,
	userID string,
	trainerID *string,
	commit func(ctx context.Context, userID string, trainerID *string) error,
) error {
	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUserNotListed
	}

	user := &users[idx]
	if user.Profile == nil {
		user.Profile = &types.UserProfile{}
	}

	change := Begin(user.Profile.AssignedTrainerID, trainerID, func(v *string) {
		user.Profile.AssignedTrainerID = v
	})
	return change.Settle(commit(ctx, userID, trainerID))
}
