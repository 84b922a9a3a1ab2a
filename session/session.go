// Package session provides the high-level Core Service gateway: one
// session per sequence of operations, opened against a configured endpoint
// and released unconditionally when done.
//
// Each command operation acquires a session, performs its one or two
// remote calls, and closes the session on every exit path. Sessions hold
// no local state beyond the connection pool; operations are independent.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smnsjas/go-coreservice/coreservice"
	"github.com/smnsjas/go-coreservice/coreservice/auth"
	"github.com/smnsjas/go-coreservice/coreservice/transport"
	"github.com/smnsjas/go-coreservice/publication"
	"github.com/smnsjas/go-coreservice/tcm"
)

// AuthType specifies the authentication mechanism.
type AuthType int

const (
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic AuthType = iota
	// AuthNTLM uses NTLM authentication.
	AuthNTLM
	// AuthNegotiate uses SPNEGO/Kerberos authentication.
	AuthNegotiate
)

// ConfirmFunc decides whether a state-changing call may proceed. It
// receives a short description of the pending action. A nil ConfirmFunc
// allows everything.
type ConfirmFunc func(action string) bool

// Config holds configuration for a Core Service session.
type Config struct {
	// Endpoint is the full Core Service endpoint URL, e.g.
	// "https://cms.example.com/webservices/CoreService2013.svc/wsHttp".
	Endpoint string

	// Username for authentication.
	Username string

	// Password for authentication.
	Password string

	// Domain for NTLM authentication.
	Domain string

	// AuthType specifies the authentication type.
	AuthType AuthType

	// SPN is the service principal name for Negotiate authentication.
	// Derived from the endpoint host when empty.
	SPN string

	// Realm is the Kerberos realm for Negotiate authentication.
	Realm string

	// Version is the Core Service API version of the server.
	Version Version

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// InsecureSkipVerify skips TLS certificate verification.
	// Only use against test instances.
	InsecureSkipVerify bool

	// Confirm gates create and update calls. Nil allows everything.
	Confirm ConfirmFunc

	// Logger receives structured logs. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AuthType: AuthBasic,
		Version:  VersionWeb85,
		Timeout:  60 * time.Second,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	if c.Version == 0 {
		return errors.New("api version is required")
	}
	creds := auth.Credentials{Username: c.Username, Password: c.Password, Domain: c.Domain}
	if c.AuthType == AuthNegotiate {
		return creds.ValidateForKerberos()
	}
	return creds.Validate()
}

// Session is an exclusive connection handle to the Core Service. It is not
// shared between operations; acquire one, use it, close it.
type Session struct {
	mu sync.Mutex

	cfg       Config
	svc       *coreservice.Client
	transport *transport.HTTPTransport
	log       *slog.Logger
	closed    bool
}

// Open establishes a session against the configured endpoint. The
// endpoint is probed once so that authentication and transport failures
// surface here, as a *ConnectionError, rather than mid-operation.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	tr := transport.NewHTTPTransport(
		transport.WithTimeout(cfg.Timeout),
		transport.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
	)

	creds := auth.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
		Domain:   cfg.Domain,
	}

	var authenticator auth.Authenticator
	switch cfg.AuthType {
	case AuthNTLM:
		authenticator = auth.NewNTLMAuth(creds)
	case AuthNegotiate:
		provider, err := auth.NewKerberosProvider(auth.KerberosConfig{
			TargetSPN:   cfg.SPN,
			Realm:       cfg.Realm,
			Credentials: &creds,
		})
		if err != nil {
			return nil, fmt.Errorf("kerberos provider: %w", err)
		}
		authenticator = auth.NewNegotiateAuth(provider)
	default:
		authenticator = auth.NewBasicAuth(creds)
	}
	tr.Client().Transport = authenticator.Transport(tr.Client().Transport)

	s := &Session{
		cfg:       cfg,
		svc:       coreservice.NewClient(cfg.Endpoint, tr),
		transport: tr,
		log:       log,
	}

	// Cheap existence probe; the null URI is valid on every server.
	if _, err := s.svc.IsExistingObject(ctx, tcm.NullURI); err != nil {
		return nil, &ConnectionError{Endpoint: cfg.Endpoint, Err: err}
	}

	log.Info("session opened",
		"endpoint", cfg.Endpoint,
		"auth", authenticator.Name(),
		"version", cfg.Version.String())
	return s, nil
}

// Close releases the session. It is idempotent and must run on every exit
// path; callers defer it immediately after Open.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.transport.CloseIdleConnections()
	s.log.Info("session closed", "endpoint", s.cfg.Endpoint)
	return nil
}

// Version returns the configured server API version.
func (s *Session) Version() Version {
	return s.cfg.Version
}

// checkOpen fails fast on a closed session.
func (s *Session) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// confirm runs the configured confirmation gate for a state-changing call.
func (s *Session) confirm(action string) error {
	if s.cfg.Confirm != nil && !s.cfg.Confirm(action) {
		s.log.Info("operation declined", "action", action)
		return ErrDeclined
	}
	return nil
}

// BusinessProcessType is one business process type defined on the server.
type BusinessProcessType struct {
	ID    string
	Title string
}

// GetPublications lists publications, optionally filtered by
// publication-type name. An empty filter returns all.
func (s *Session) GetPublications(ctx context.Context, typeFilter string) ([]publication.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	items, err := s.svc.GetPublications(ctx, typeFilter)
	if err != nil {
		return nil, err
	}

	records := make([]publication.Record, 0, len(items))
	for i := range items {
		records = append(records, *recordFromItem(&items[i]))
	}
	s.log.Debug("listed publications", "count", len(records), "filter", typeFilter)
	return records, nil
}

// GetItem reads a single item by TCM URI. It fails with a *NotFoundError,
// without issuing the read, when the existence check reports absent.
func (s *Session) GetItem(ctx context.Context, id string) (*publication.Record, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if _, err := tcm.Parse(id); err != nil {
		return nil, err
	}

	exists, err := s.svc.IsExistingObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{ID: id}
	}

	item, err := s.svc.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordFromItem(item), nil
}

// CreatePublication builds a new publication from the default template,
// applies the supplied fields, and submits the create under the
// confirmation gate. Unresolved parent or business-process-type references
// are returned as non-fatal lookup errors alongside the created record.
func (s *Session) CreatePublication(ctx context.Context, f publication.Fields) (*publication.Record, []publication.LookupError, error) {
	if err := s.checkOpen(); err != nil {
		return nil, nil, err
	}
	if err := s.checkBusinessProcessTypeAllowed(f); err != nil {
		return nil, nil, err
	}

	rec := publication.NewRecord()
	lookups, err := s.merger().Apply(ctx, rec, f)
	if err != nil {
		return nil, lookups, err
	}

	if err := s.confirm(fmt.Sprintf("create publication %q", rec.Title)); err != nil {
		return nil, lookups, err
	}

	item, err := s.svc.Create(ctx, inputFromRecord(rec))
	if err != nil {
		return nil, lookups, err
	}
	s.log.Info("publication created", "id", item.ID, "title", item.Title)
	return recordFromItem(item), lookups, nil
}

// UpdatePublication reads the existing publication, applies the supplied
// fields (a supplied parent list replaces the existing links wholesale),
// and submits the update under the confirmation gate.
func (s *Session) UpdatePublication(ctx context.Context, id string, f publication.Fields) (*publication.Record, []publication.LookupError, error) {
	if err := s.checkOpen(); err != nil {
		return nil, nil, err
	}
	if err := s.checkBusinessProcessTypeAllowed(f); err != nil {
		return nil, nil, err
	}

	rec, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	lookups, err := s.merger().Apply(ctx, rec, f)
	if err != nil {
		return nil, lookups, err
	}

	if err := s.confirm(fmt.Sprintf("update publication %s (%q)", rec.ID, rec.Title)); err != nil {
		return nil, lookups, err
	}

	item, err := s.svc.Update(ctx, inputFromRecord(rec))
	if err != nil {
		return nil, lookups, err
	}
	s.log.Info("publication updated", "id", item.ID, "title", item.Title)
	return recordFromItem(item), lookups, nil
}

// GetBusinessProcessTypes lists the business process types for a topology
// type. Fails with an *UnsupportedOperationError when the configured
// server version predates SDL Web 8.1.
func (s *Session) GetBusinessProcessTypes(ctx context.Context, topologyTypeID string) ([]BusinessProcessType, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if !s.cfg.Version.SupportsBusinessProcessTypes() {
		return nil, &UnsupportedOperationError{Operation: "business process types", Version: s.cfg.Version}
	}

	items, err := s.svc.GetBusinessProcessTypes(ctx, topologyTypeID)
	if err != nil {
		return nil, err
	}
	out := make([]BusinessProcessType, 0, len(items))
	for _, it := range items {
		out = append(out, BusinessProcessType{ID: it.ID, Title: it.Title})
	}
	return out, nil
}

// TranslateURI translates id into the namespace of the target publication
// (a publication TCM URI or a bare integer id). The server performs the
// authoritative translation; the inputs are validated and normalized
// locally first so malformed identifiers fail without a remote call.
func (s *Session) TranslateURI(ctx context.Context, id, target string, version int) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	if _, err := tcm.Parse(id); err != nil {
		return "", err
	}
	pub, err := tcm.PublicationTarget(target)
	if err != nil {
		return "", err
	}

	return s.svc.GetTcmURI(ctx, id, fmt.Sprintf("tcm:0-%d-1", pub), version)
}

// checkBusinessProcessTypeAllowed gates the business-process-type field on
// server version support before any remote call is issued.
func (s *Session) checkBusinessProcessTypeAllowed(f publication.Fields) error {
	if f.BusinessProcessType != "" && !s.cfg.Version.SupportsBusinessProcessTypes() {
		return &UnsupportedOperationError{Operation: "business process types", Version: s.cfg.Version}
	}
	return nil
}

// merger returns a field merger wired to this session's gateway calls.
func (s *Session) merger() *publication.Merger {
	return &publication.Merger{
		Publications: listerAdapter{s},
		Items:        itemAdapter{s},
	}
}

// listerAdapter exposes the publication list to the merger.
type listerAdapter struct{ s *Session }

func (a listerAdapter) ListPublications(ctx context.Context) ([]publication.ListEntry, error) {
	items, err := a.s.svc.GetPublications(ctx, "")
	if err != nil {
		return nil, err
	}
	entries := make([]publication.ListEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, publication.ListEntry{ID: it.ID, Title: it.Title})
	}
	return entries, nil
}

// itemAdapter exposes the generic item read to the merger. A not-found
// fault is reported as a lookup miss, not an error.
type itemAdapter struct{ s *Session }

func (a itemAdapter) ReadItem(ctx context.Context, id string) (bool, error) {
	_, err := a.s.svc.Read(ctx, id)
	if err != nil {
		var fault *coreservice.Fault
		if errors.As(err, &fault) && fault.IsNotFound() {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// recordFromItem converts a wire item into a staging record.
func recordFromItem(d *coreservice.ItemData) *publication.Record {
	rec := &publication.Record{
		ID:              d.ID,
		Title:           d.Title,
		Key:             d.Key,
		PublicationPath: d.PublicationPath,
		PublicationURL:  d.PublicationURL,
		MultimediaPath:  d.MultimediaPath,
		MultimediaURL:   d.MultimediaURL,
	}
	for _, p := range d.Parents {
		rec.Parents = append(rec.Parents, p.IDRef)
	}
	if d.BusinessProcessType != nil {
		rec.BusinessProcessType = d.BusinessProcessType.IDRef
	}
	return rec
}

// inputFromRecord converts a staging record into the wire input form.
func inputFromRecord(r *publication.Record) coreservice.PublicationInput {
	return coreservice.PublicationInput{
		ID:                  r.ID,
		Title:               r.Title,
		Key:                 r.Key,
		PublicationPath:     r.PublicationPath,
		PublicationURL:      r.PublicationURL,
		MultimediaPath:      r.MultimediaPath,
		MultimediaURL:       r.MultimediaURL,
		Parents:             r.Parents,
		BusinessProcessType: r.BusinessProcessType,
	}
}
