package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/core/events"
	"github.com/railtrace/railway-assets/internal/identity"
	"github.com/railtrace/railway-assets/internal/profile"
	"github.com/railtrace/railway-assets/internal/rbac"
	"github.com/railtrace/railway-assets/internal/storage"
)

var errNoMatch = errors.New("no credential match")

// Resolver owns the question "who is the current user, and how was that
// established". It tries the remote identity provider first (unless local
// auth is pinned), falls back to the demo credential table, and persists the
// resolved identity for continuity across restarts.
//
// Remote failures never surface: they are logged and converted into the
// local fallback. Only an invalid-credentials outcome from the final
// fallback reaches callers.
type Resolver struct {
	useLocalAuth bool
	provider     IdentityProvider
	profiles     ProfileStore
	local        LocalStore
	directory    Directory
	state        *State
	bus          *events.EventBus
	logger       *slog.Logger
}

func NewResolver(
	useLocalAuth bool,
	provider IdentityProvider,
	profiles ProfileStore,
	local LocalStore,
	directory Directory,
	state *State,
	bus *events.EventBus,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		useLocalAuth: useLocalAuth,
		provider:     provider,
		profiles:     profiles,
		local:        local,
		directory:    directory,
		state:        state,
		bus:          bus,
		logger:       logger,
	}
}

// Start performs the initial session resolution. In local mode it restores
// the persisted record and never touches the network. In remote mode it
// subscribes to the provider's identity-change stream; if the subscription
// itself fails the resolver degrades to the local path for this resolution
// and logs the fallback.
func (r *Resolver) Start(ctx context.Context) {
	if r.useLocalAuth || r.provider == nil {
		r.restoreLocal(ctx, r.state.Begin())
		return
	}

	err := r.provider.Subscribe(ctx, func(ident *identity.Identity) {
		token := r.state.Begin()

		if r.bus != nil {
			if ident == nil {
				r.bus.Publish(ctx, events.NewIdentityChanged("", ""))
			} else {
				r.bus.Publish(ctx, events.NewIdentityChanged(ident.ID, ident.Email))
			}
		}

		if ident == nil {
			// Signed out remotely (or never signed in): the persisted
			// local record is the only possible session source.
			r.restoreLocal(ctx, token)
			return
		}

		doc, err := r.profiles.GetDocument(ctx, ident.ID)
		switch {
		case errors.Is(err, profile.ErrNotFound):
			r.restoreLocal(ctx, token)
		case err != nil:
			// Session stays unchanged on a fetch error.
			r.logger.Warn("profile fetch failed, session unchanged",
				"identity_id", ident.ID, "error", err)
		default:
			user := userFromProfile(ident, doc, time.Now())
			r.persist(user)
			r.state.Set(ctx, token, user, "remote")
		}
	})
	if err != nil {
		r.logger.Warn("identity subscription failed, falling back to local session",
			"error", err)
		r.restoreLocal(ctx, r.state.Begin())
	}
}

// Current returns the active session, or nil when unresolved.
func (r *Resolver) Current() *User {
	return r.state.Current()
}

// Login authenticates the email/password pair. The remote attempt and the
// local attempt are composed sequentially as explicit (user, error)
// outcomes; any remote failure silently moves to the local table. A miss on
// the final path is the only surfaced failure, always as
// internal.ErrInvalidCredentials.
func (r *Resolver) Login(ctx context.Context, email, password string) (*User, error) {
	token := r.state.Begin()

	var (
		user   *User
		origin string
		err    error
	)

	if r.useLocalAuth {
		user, err = r.tryLocal(email, password)
		origin = "local"
	} else {
		user, err = r.tryRemote(ctx, email, password)
		origin = "remote"
		if err != nil {
			r.logger.Warn("remote login failed, falling back to local credential table",
				"email", email, "error", err)
			user, err = r.tryLocal(email, password)
			origin = "local"
		}
	}

	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	r.persist(user)
	if !r.state.Set(ctx, token, user, origin) {
		r.logger.Info("login completed after logout, session not installed", "email", email)
	}

	// Best effort: demo sessions have no directory row and are skipped
	// inside TouchLastLogin.
	if r.directory != nil {
		r.directory.TouchLastLogin(email)
	}

	return user, nil
}

// Logout signs out remotely on a best-effort basis and then unconditionally
// clears the current session and the persisted record. It never fails and is
// safe to call repeatedly.
func (r *Resolver) Logout(ctx context.Context) {
	if !r.useLocalAuth && r.provider != nil {
		if err := r.provider.SignOut(ctx); err != nil {
			r.logger.Warn("remote sign-out failed, clearing local session anyway", "error", err)
		}
	}

	r.state.Clear(ctx)

	if err := r.local.Remove(StorageKey); err != nil {
		r.logger.Warn("failed to remove persisted session record", "error", err)
	}
}

// SignUp creates an account. The remote path (account plus profile document)
// is attempted first; on any failure the account degrades to a local-only
// user. From the caller's perspective sign-up always succeeds.
func (r *Resolver) SignUp(ctx context.Context, dto SignUpDTO) *User {
	token := r.state.Begin()

	user, err := r.signUpRemote(ctx, dto)
	localOnly := false
	origin := "remote"
	if err != nil {
		r.logger.Warn("remote sign-up failed, creating local-only account",
			"email", dto.Email, "error", err)
		user = localOnlyUser(dto, time.Now())
		localOnly = true
		origin = "local"
	}

	r.persist(user)
	r.state.Set(ctx, token, user, origin)

	if r.bus != nil {
		r.bus.Publish(ctx, events.NewUserSignedUp(user.ID, user.Email, user.Role.String(), localOnly))
	}

	return user
}

// tryLocal checks the demo credential table with exact, case-sensitive
// matching on both fields.
// tryLocal checks the demo credential table and then, when a directory is
// wired, the seeded user directory.
func (r *Resolver) tryLocal(email, password string) (*User, error) {
	now := time.Now()

	if cred, ok := lookupCredential(email, password); ok {
		return &User{
			ID:        "demo_" + cred.Role.String(),
			Email:     cred.Email,
			Name:      cred.Name,
			Role:      cred.Role,
			Division:  cred.Division,
			Section:   cred.Section,
			CreatedAt: now,
			LastLogin: now,
		}, nil
	}

	if r.directory == nil {
		return nil, errNoMatch
	}

	entry, err := r.directory.VerifyPassword(email, password)
	if err != nil {
		return nil, errNoMatch
	}

	// VerifyPassword only returns entries with a valid role.
	role, _ := rbac.ParseRole(entry.Role)
	return &User{
		ID:        entry.ID,
		Email:     entry.Email,
		Name:      entry.Name,
		Role:      role,
		Division:  entry.Division,
		Section:   entry.Section,
		CreatedAt: entry.CreatedAt,
		LastLogin: now,
	}, nil
}

// tryRemote signs in against the identity provider and resolves the profile
// document, seeding a new document from the credential table when none
// exists yet.
func (r *Resolver) tryRemote(ctx context.Context, email, password string) (*User, error) {
	ident, err := r.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	doc, err := r.profiles.GetDocument(ctx, ident.ID)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		doc = seedProfile(email, now)
		if err := r.profiles.SetDocument(ctx, ident.ID, doc); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		doc.LastLogin = &now
		if err := r.profiles.SetDocument(ctx, ident.ID, doc); err != nil {
			r.logger.Warn("failed to update lastLogin on profile", "identity_id", ident.ID, "error", err)
		}
	}

	return userFromProfile(ident, doc, now), nil
}

func (r *Resolver) signUpRemote(ctx context.Context, dto SignUpDTO) (*User, error) {
	if r.useLocalAuth || r.provider == nil {
		return nil, fmt.Errorf("remote sign-up disabled")
	}

	ident, err := r.provider.SignUp(ctx, dto.Email, dto.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &profile.Document{
		Email:     dto.Email,
		Name:      dto.Name,
		Role:      dto.Role,
		Division:  dto.Division,
		Section:   dto.Section,
		CreatedAt: &now,
		LastLogin: &now,
	}
	if err := r.profiles.SetDocument(ctx, ident.ID, doc); err != nil {
		return nil, err
	}

	return userFromProfile(ident, doc, now), nil
}

// restoreLocal loads the persisted session record if one exists, discarding
// a corrupt record silently.
func (r *Resolver) restoreLocal(ctx context.Context, token uint64) {
	raw, err := r.local.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("failed to read persisted session record", "error", err)
		}
		return
	}

	user, err := decodeUser(raw)
	if err != nil {
		r.logger.Warn("persisted session record is corrupt, discarding")
		if remErr := r.local.Remove(StorageKey); remErr != nil {
			r.logger.Warn("failed to remove corrupt session record", "error", remErr)
		}
		return
	}

	r.state.Set(ctx, token, user, "restored")
}

func (r *Resolver) persist(user *User) {
	raw, err := encodeUser(user)
	if err != nil {
		r.logger.Error("failed to encode session record", "error", err)
		return
	}
	if err := r.local.Set(StorageKey, raw); err != nil {
		r.logger.Warn("failed to persist session record", "error", err)
	}
}

// userFromProfile builds a User from an identity plus its profile document,
// applying the documented defaults for absent fields.
func userFromProfile(ident *identity.Identity, doc *profile.Document, now time.Time) *User {
	name := doc.Name
	if name == "" {
		name = "User"
	}

	role, ok := rbac.ParseRole(doc.Role)
	if !ok {
		role = rbac.RoleInspector
	}

	email := doc.Email
	if email == "" {
		email = ident.Email
	}

	createdAt := now
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}

	return &User{
		ID:        ident.ID,
		Email:     email,
		Name:      name,
		Role:      role,
		Division:  doc.Division,
		Section:   doc.Section,
		CreatedAt: createdAt,
		LastLogin: now,
	}
}

// seedProfile builds a first profile document for an identity that has none,
// using the credential table as the seed when the email matches.
func seedProfile(email string, now time.Time) *profile.Document {
	doc := &profile.Document{
		Email:     email,
		Name:      "User",
		Role:      rbac.RoleInspector.String(),
		CreatedAt: &now,
		LastLogin: &now,
	}
	if cred, ok := credentialByEmail(email); ok {
		doc.Name = cred.Name
		doc.Role = cred.Role.String()
		doc.Division = cred.Division
		doc.Section = cred.Section
	}
	return doc
}

func localOnlyUser(dto SignUpDTO, now time.Time) *User {
	role, ok := rbac.ParseRole(dto.Role)
	if !ok {
		role = rbac.RoleInspector
	}

	return &User{
		ID:        fmt.Sprintf("demo_%d", now.UnixMilli()),
		Email:     dto.Email,
		Name:      dto.Name,
		Role:      role,
		Division:  dto.Division,
		Section:   dto.Section,
		CreatedAt: now,
		LastLogin: now,
	}
}
