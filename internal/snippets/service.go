// Package snippets implements the snippet domain operations on top of the
// API client: session lifecycle, create/get/update/delete, paginated
// listing and search ordering.
package snippets

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/snipstash/snipstash/internal/api"
	"github.com/snipstash/snipstash/internal/apperrors"
	"github.com/snipstash/snipstash/internal/config"
	"github.com/snipstash/snipstash/internal/vault"
)

// API is the subset of the HTTP client the service needs.
type API interface {
	CreateSnippet(ctx context.Context, in api.SnippetInput) (*api.Snippet, error)
	GetSnippet(ctx context.Context, id string) (*api.Snippet, error)
	UpdateSnippet(ctx context.Context, id string, in api.SnippetInput) (*api.Snippet, error)
	DeleteSnippet(ctx context.Context, id string) error
	ListPage(ctx context.Context, page, pageSize int) (*api.Page, error)
	Search(ctx context.Context, q api.SearchQuery) ([]api.Snippet, error)
}

// APIFactory builds an API client for a server and token. Injected so
// tests can substitute fakes.
type APIFactory func(serverURL, token string) API

// Service owns the session state machine and the snippet operations.
// It is either Unauthenticated or Authenticated; every domain operation
// requires the latter and fails with KindAuthRequired otherwise, without
// touching the network.
type Service struct {
	store  *config.Store
	vault  vault.Vault
	newAPI APIFactory
	log    *zap.Logger

	cfg    *config.Config
	client API
	authed bool
}

// NewService restores a session from the config file and the vault. A
// missing config or vault entry leaves the service Unauthenticated; any
// other credential or config failure is returned.
func NewService(store *config.Store, v vault.Vault, newAPI APIFactory, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{store: store, vault: v, newAPI: newAPI, log: log}

	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}
	s.cfg = cfg

	if cfg.ServerURL == "" {
		return s, nil
	}
	token, err := v.Retrieve(cfg.ServerURL)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindCredentialNotFound) {
			return s, nil
		}
		return nil, err
	}
	s.client = newAPI(cfg.ServerURL, token)
	s.authed = true
	return s, nil
}

// Authenticated reports whether a session is active.
func (s *Service) Authenticated() bool {
	return s.authed
}

// ServerURL returns the configured server, empty when none is set.
func (s *Service) ServerURL() string {
	return s.cfg.ServerURL
}

// DefaultPageSize returns the configured listing page size.
func (s *Service) DefaultPageSize() int {
	return s.cfg.DefaultPageSize
}

// Login validates the secret with a single lightweight probe against the
// server and, only on success, persists the config and the vault entry
// and transitions to Authenticated. Nothing is persisted when the probe
// fails.
func (s *Service) Login(ctx context.Context, serverURL, secret string) error {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	u, err := url.Parse(serverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.New(apperrors.KindValidation, "server URL must start with http:// or https://")
	}
	if strings.TrimSpace(secret) == "" {
		return apperrors.New(apperrors.KindValidation, "token must not be empty")
	}

	candidate := s.newAPI(serverURL, secret)
	if _, err := candidate.ListPage(ctx, 1, 1); err != nil {
		return fmt.Errorf("could not validate credentials against %s: %w", serverURL, err)
	}

	cfg := &config.Config{ServerURL: serverURL, DefaultPageSize: s.cfg.DefaultPageSize}
	if err := s.store.Save(cfg); err != nil {
		return err
	}
	if err := s.vault.Store(serverURL, secret); err != nil {
		return err
	}

	s.cfg = cfg
	s.client = candidate
	s.authed = true
	s.log.Info("logged in", zap.String("server", serverURL))
	return nil
}

// Logout deletes the stored credential and transitions to
// Unauthenticated. The transition happens even when the vault delete
// fails, so a broken keyring cannot pin a stale session.
func (s *Service) Logout() error {
	s.authed = false
	s.client = nil
	if s.cfg.ServerURL == "" {
		return apperrors.New(apperrors.KindCredentialNotFound, "no server configured")
	}
	return s.vault.Delete(s.cfg.ServerURL)
}

// requireAuth guards every domain operation.
func (s *Service) requireAuth() error {
	if !s.authed {
		return apperrors.New(apperrors.KindAuthRequired, "not logged in; run `snipstash login <server-url>`")
	}
	return nil
}

// Create uploads a new snippet and returns it with the server-assigned id.
func (s *Service) Create(ctx context.Context, in api.SnippetInput) (*api.Snippet, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	normalizeInput(&in)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.client.CreateSnippet(ctx, in)
}

// Get fetches one snippet including file contents.
func (s *Service) Get(ctx context.Context, id string) (*api.Snippet, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.client.GetSnippet(ctx, id)
}

// Update replaces a snippet. The supplied files replace the stored file
// set in full; files absent from in.Files are removed server-side.
// Partial or incremental update is not supported.
func (s *Service) Update(ctx context.Context, id string, in api.SnippetInput) (*api.Snippet, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	normalizeInput(&in)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.client.UpdateSnippet(ctx, id, in)
}

// Delete removes a snippet. Confirmation is the caller's concern; the
// service never prompts.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return s.client.DeleteSnippet(ctx, id)
}

// List fetches a single page. page defaults to 1, pageSize to the
// configured default.
func (s *Service) List(ctx context.Context, page, pageSize int) (*api.Page, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	return s.client.ListPage(ctx, page, pageSize)
}

// Search fetches the snippets matching q and applies the deterministic
// ordering guarantees described on SortOrder. The server owns the match
// scope (q.SearchCode extends it to file contents).
func (s *Service) Search(ctx context.Context, q api.SearchQuery) ([]api.Snippet, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return nil, apperrors.New(apperrors.KindValidation, "search query must not be empty")
	}
	if q.Sort == "" {
		q.Sort = api.SortNewest
	}
	if !q.Sort.Valid() {
		return nil, apperrors.New(apperrors.KindValidation,
			"sort must be one of newest, oldest, alpha-asc, alpha-desc")
	}
	matches, err := s.client.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	sortMatches(matches, q.Sort)
	return matches, nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.New(apperrors.KindValidation, "snippet id is required")
	}
	return nil
}

// normalizeInput trims the metadata fields and applies defaults so the
// wire never carries accidental whitespace or a nil category set.
func normalizeInput(in *api.SnippetInput) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Visibility == "" {
		in.Visibility = api.VisibilityPrivate
	}
	if in.Categories == nil {
		in.Categories = []string{}
	}
	for i, c := range in.Categories {
		in.Categories[i] = strings.TrimSpace(c)
	}
}
