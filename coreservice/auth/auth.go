package auth

import (
	"context"
	"errors"
	"net/http"
)

// Authenticator defines the interface for authentication handlers.
type Authenticator interface {
	// Transport wraps an http.RoundTripper with authentication.
	Transport(base http.RoundTripper) http.RoundTripper

	// Name returns the authentication scheme name.
	Name() string
}

// Credentials holds authentication credentials.
type Credentials struct {
	// Username is the user name for authentication.
	Username string

	// Password is the password for authentication.
	Password string

	// Domain is the optional domain for NTLM authentication.
	Domain string
}

// Validate checks that required credential fields are populated.
// For Kerberos with ccache/keytab, password may be empty - use
// ValidateForKerberos instead.
func (c *Credentials) Validate() error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// ValidateForKerberos checks credentials for Kerberos auth where password
// is optional.
func (c *Credentials) ValidateForKerberos() error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

// SecurityProvider handles the low-level authentication token exchange for
// Negotiate authentication. It abstracts the SPNEGO mechanism (Kerberos
// here; the interface leaves room for others).
//
// Implementations are NOT safe for concurrent use; each handshake needs
// its own provider instance.
type SecurityProvider interface {
	// Step processes an input token (challenge) and produces an output
	// token (response). On the first call, inputToken should be nil.
	Step(ctx context.Context, inputToken []byte) (outputToken []byte, continueNeeded bool, err error)

	// Complete returns true if the security context has been established.
	Complete() bool

	// Close releases any resources associated with the context.
	Close() error
}
