package domain

import (
	"fmt"
	"time"
)

// Forum state machine. All transitions require a CONFIRMED booking that has
// not started yet; they run inside the repository's per-booking mutation so
// the checks and the list updates form one atomic step.

func (b *Booking) canMutateForum(now time.Time) error {
	if b.Status != BookingStatusConfirmed {
		return fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}
	if !b.StartTime.After(now) {
		return fmt.Errorf("%w: booking already started", ErrInvalidStatus)
	}
	return nil
}

// Publish marks the booking as an open game looking for playersNeeded extra
// players. Republishing resets any previous joined/pending lists.
func (b *Booking) Publish(ownerID string, playersNeeded, skillLevel int, now time.Time) error {
	if b.UserID != ownerID {
		return ErrNotOwner
	}
	if err := b.canMutateForum(now); err != nil {
		return err
	}
	if playersNeeded < 1 {
		return fmt.Errorf("%w: players_needed must be at least 1", ErrValidation)
	}
	if skillLevel < 1 || skillLevel > 5 {
		return fmt.Errorf("%w: skill_level must be between 1 and 5", ErrValidation)
	}

	b.PlayersNeeded = playersNeeded
	b.SkillLevel = skillLevel
	b.JoinedPlayerIDs = nil
	b.PendingPlayerIDs = nil
	return nil
}

// RequestJoin appends userID to the pending list. The capacity check and the
// append are one step; a full game rejects the request.
func (b *Booking) RequestJoin(userID string, now time.Time) error {
	if err := b.canMutateForum(now); err != nil {
		return err
	}
	if !b.IsPublished() {
		return fmt.Errorf("%w: booking is not published", ErrInvalidStatus)
	}
	if userID == b.UserID {
		return fmt.Errorf("%w: owner cannot join own game", ErrValidation)
	}
	if b.HasJoined(userID) {
		return ErrAlreadyJoined
	}
	if b.HasRequested(userID) {
		return ErrAlreadyRequested
	}
	if b.IsFull() {
		return ErrGameFull
	}

	b.PendingPlayerIDs = append(b.PendingPlayerIDs, userID)
	return nil
}

// AcceptJoin moves userID from the pending to the joined list.
func (b *Booking) AcceptJoin(ownerID, userID string, now time.Time) error {
	if b.UserID != ownerID {
		return ErrNotOwner
	}
	if err := b.canMutateForum(now); err != nil {
		return err
	}
	if !b.HasRequested(userID) {
		return ErrNoJoinRequest
	}
	if b.IsFull() {
		return ErrGameFull
	}

	b.PendingPlayerIDs = remove(b.PendingPlayerIDs, userID)
	b.JoinedPlayerIDs = append(b.JoinedPlayerIDs, userID)
	return nil
}

// RejectJoin drops userID from the pending list.
func (b *Booking) RejectJoin(ownerID, userID string, now time.Time) error {
	if b.UserID != ownerID {
		return ErrNotOwner
	}
	if err := b.canMutateForum(now); err != nil {
		return err
	}
	if !b.HasRequested(userID) {
		return ErrNoJoinRequest
	}

	b.PendingPlayerIDs = remove(b.PendingPlayerIDs, userID)
	return nil
}
