// Package service sequences cross-store operations. The coordinator is
// the only place that touches more than one store in a single logical
// operation; the repositories underneath each talk to exactly one.
package service

import (
	"context"
	"fmt"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/model"
)

// The store surfaces the coordinator consumes. Declared here so tests
// can substitute fakes without a database.
type accountStore interface {
	MarkOnline(ctx context.Context, accountID uint32, ip string) error
}

type launcherStore interface {
	RecordLogin(ctx context.Context, accountID uint32, username string) error
	ProfileByAccount(ctx context.Context, accountID uint32) (model.LauncherProfile, error)
}

type characterStore interface {
	ListByAccount(ctx context.Context, accountID uint32) ([]model.CharacterSummary, error)
	Reposition(ctx context.Context, guid uint64, ownerID uint32, fallback model.Position) error
}

// Coordinator wires the auth, launcher and characters stores together
// for the operations that span them. UnstuckFallback is the
// deployment-configured safe location used when a character has no
// home-bind row.
type Coordinator struct {
	accounts        accountStore
	launcher        launcherStore
	characters      characterStore
	UnstuckFallback model.Position
}

func NewCoordinator(a accountStore, l launcherStore, c characterStore, fallback model.Position) *Coordinator {
	return &Coordinator{accounts: a, launcher: l, characters: c, UnstuckFallback: fallback}
}

// OnAuthenticated performs the post-login side effects, in order: mark
// the account online in the auth store, then upsert today's launcher
// metadata record. The upsert is idempotent per calendar day, so a
// second login on the same day is harmless. Verification itself
// happens before this call; the coordinator never sees a password.
func (s *Coordinator) OnAuthenticated(ctx context.Context, accountID uint32, username, ip string) error {
	if err := s.accounts.MarkOnline(ctx, accountID, ip); err != nil {
		return fmt.Errorf("mark online: %w", err)
	}
	if err := s.launcher.RecordLogin(ctx, accountID, username); err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	return nil
}

// ListCharacters returns the account's characters. A store failure
// surfaces as an error wrapping database.ErrStoreUnavailable; an
// account with no characters is an empty slice with a nil error.
func (s *Coordinator) ListCharacters(ctx context.Context, accountID uint32) ([]model.CharacterSummary, error) {
	return s.characters.ListByAccount(ctx, accountID)
}

// UnstuckCharacter moves the character to its home-bind location (or
// the configured fallback) provided it belongs to ownerID.
func (s *Coordinator) UnstuckCharacter(ctx context.Context, guid uint64, ownerID uint32) error {
	return s.characters.Reposition(ctx, guid, ownerID, s.UnstuckFallback)
}

// UnstuckAnyCharacter is the GM variant: no ownership check.
func (s *Coordinator) UnstuckAnyCharacter(ctx context.Context, guid uint64) error {
	return s.characters.Reposition(ctx, guid, 0, s.UnstuckFallback)
}

// Profile returns the account's launcher metadata record.
func (s *Coordinator) Profile(ctx context.Context, accountID uint32) (model.LauncherProfile, error) {
	return s.launcher.ProfileByAccount(ctx, accountID)
}
