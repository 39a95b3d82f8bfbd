package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/xiri/xiri-api/internal/domain"
)

// SessionUseCase owns the identity lifecycle: sign-in, per-request identity
// resolution, view-mode switching and sign-out. It is the only writer of
// session state; everything else reads identities it produced.
type SessionUseCase struct {
	users      UserRepository
	sessions   SessionStore
	cache      Cache
	outbox     OutboxRepository
	idGen      IDGenerator
	retrier    Retrier
	logger     zerolog.Logger
	profileTTL time.Duration
}

// NewSessionUseCase creates a new session use case.
func NewSessionUseCase(
	users UserRepository,
	sessions SessionStore,
	cache Cache,
	outbox OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
	profileTTL time.Duration,
) *SessionUseCase {
	return &SessionUseCase{
		users:      users,
		sessions:   sessions,
		cache:      cache,
		outbox:     outbox,
		idGen:      idGen,
		retrier:    retrier,
		logger:     logger,
		profileTTL: profileTTL,
	}
}

// Login verifies credentials, creates a session with the role's default view
// mode and returns the resulting identity.
func (uc *SessionUseCase) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	if err := verifyPassword(user.HashedPassword, password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	session := &domain.Session{
		ID:        uc.idGen.Generate(),
		UserID:    user.ID,
		ViewMode:  user.Role.DefaultViewMode(),
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	uc.cacheProfile(ctx, user)
	uc.recordEvent(ctx, session.ID, domain.AggregateTypeSession, domain.EventTypeSessionSignedIn, map[string]any{
		"user_id": user.ID,
		"role":    string(user.Role),
	})

	identity := domain.NewIdentity(user.ID, user.Email, domain.Profile{
		Role:        string(user.Role),
		TerritoryID: user.TerritoryID,
	})
	identity.SessionID = session.ID
	identity.ViewMode = session.ViewMode

	return identity, nil
}

// Resolve reconstructs the identity for a verified credential. The profile
// fetch is best-effort: any failure degrades to an empty profile, which
// normalizes to the auditor role, never to an error. A missing session means
// the credential was signed out and resolves to unauthenticated.
func (uc *SessionUseCase) Resolve(ctx context.Context, userID, email, sessionID string) (*domain.Identity, error) {
	user := uc.fetchProfile(ctx, userID)

	var identity *domain.Identity
	if user != nil {
		if !user.Active {
			return nil, domain.ErrUnauthorized
		}
		identity = domain.NewIdentity(userID, email, domain.Profile{
			Role:        string(user.Role),
			TerritoryID: user.TerritoryID,
		})
	} else {
		identity = domain.NewIdentity(userID, email, domain.Profile{})
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		// Signed out, expired, or the store is unreachable: all resolve to
		// "must authenticate", never to a surfaced error.
		return nil, domain.ErrSessionNotFound
	}

	identity.SessionID = sessionID
	if session.ViewMode.IsValid() {
		identity.ViewMode = session.ViewMode
	}

	return identity, nil
}

// SwitchView projects a privileged identity onto one of the operational
// views. The mode must be one of the three switchable views; anything else
// is rejected with the state unchanged. For identities that may not switch,
// the call is a silent no-op.
func (uc *SessionUseCase) SwitchView(ctx context.Context, identity *domain.Identity, mode domain.ViewMode) (*domain.Identity, error) {
	if !mode.IsValid() {
		return identity, domain.ErrInvalidViewMode
	}

	if identity == nil {
		return nil, nil
	}

	if !identity.CanSwitchView() {
		uc.logger.Debug().
			Str("user_id", identity.ID).
			Str("role", string(identity.Role)).
			Msg("view switch ignored for non-privileged role")
		return identity, nil
	}

	if err := uc.sessions.SetViewMode(ctx, identity.SessionID, mode); err != nil {
		return identity, err
	}

	switched := *identity
	switched.ViewMode = mode

	uc.recordEvent(ctx, identity.SessionID, domain.AggregateTypeSession, domain.EventTypeViewSwitched, map[string]any{
		"user_id":   identity.ID,
		"role":      string(identity.Role),
		"view_mode": string(mode),
	})

	return &switched, nil
}

// SignOut deletes the session. It is idempotent and optimistic: store errors
// are logged and swallowed, the caller's identity is cleared regardless.
func (uc *SessionUseCase) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		uc.logger.Warn().Err(err).Str("session_id", sessionID).Msg("session delete failed, clearing anyway")
		return nil
	}

	uc.recordEvent(ctx, sessionID, domain.AggregateTypeSession, domain.EventTypeSessionSignedOut, map[string]any{
		"session_id": sessionID,
	})

	return nil
}

// fetchProfile loads the user profile, cache first, then the repository with
// bounded retries. Returns nil on any failure; callers treat that as an
// empty profile.
func (uc *SessionUseCase) fetchProfile(ctx context.Context, userID string) *domain.User {
	if data, err := uc.cache.Get(ctx, profileCacheKeyPrefix+userID); err == nil {
		var cached domain.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached
		}
	}

	var user *domain.User
	err := uc.retrier.Retry(ctx, func() error {
		found, err := uc.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("profile fetch failed, defaulting to empty profile")
		return nil
	}

	uc.cacheProfile(ctx, user)
	return user
}

// cacheProfile writes the profile record to the cache, best effort.
func (uc *SessionUseCase) cacheProfile(ctx context.Context, user *domain.User) {
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, profileCacheKeyPrefix+user.ID, data, uc.profileTTL); err != nil {
		uc.logger.Debug().Err(err).Str("user_id", user.ID).Msg("profile cache write failed")
	}
}

// recordEvent appends an activity event to the outbox, best effort.
func (uc *SessionUseCase) recordEvent(ctx context.Context, aggregateID, aggregateType, eventType string, payload map[string]any) {
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}

	if err := uc.outbox.Create(ctx, event); err != nil {
		uc.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to record activity event")
	}
}
