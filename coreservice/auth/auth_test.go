package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestCredentials_Validate verifies credential validation.
func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"complete", Credentials{Username: "admin", Password: "secret"}, false},
		{"with domain", Credentials{Username: "admin", Password: "secret", Domain: "CORP"}, false},
		{"missing username", Credentials{Password: "secret"}, true},
		{"missing password", Credentials{Username: "admin"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestCredentials_ValidateForKerberos verifies password is optional.
func TestCredentials_ValidateForKerberos(t *testing.T) {
	creds := Credentials{Username: "admin"}
	if err := creds.ValidateForKerberos(); err != nil {
		t.Errorf("ValidateForKerberos() error = %v, want nil", err)
	}

	creds = Credentials{}
	if err := creds.ValidateForKerberos(); err == nil {
		t.Error("ValidateForKerberos() should require a username")
	}
}

// TestBasicAuth_Name verifies the auth scheme name.
func TestBasicAuth_Name(t *testing.T) {
	auth := NewBasicAuth(Credentials{})
	if auth.Name() != "Basic" {
		t.Errorf("Name() = %q, want %q", auth.Name(), "Basic")
	}
}

// TestBasicAuth_Transport verifies the transport wrapper.
func TestBasicAuth_Transport(t *testing.T) {
	creds := Credentials{
		Username: "testuser",
		Password: "testpass",
	}
	auth := NewBasicAuth(creds)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			t.Error("missing Authorization header")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if !strings.HasPrefix(authHeader, "Basic ") {
			t.Errorf("expected Basic auth, got: %s", authHeader)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		encoded := strings.TrimPrefix(authHeader, "Basic ")
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			t.Errorf("failed to decode auth header: %v", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		expected := "testuser:testpass"
		if string(decoded) != expected {
			t.Errorf("decoded credentials = %q, want %q", string(decoded), expected)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{
		Transport: auth.Transport(http.DefaultTransport),
	}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

// TestBasicAuth_DomainQualifiedUser verifies DOMAIN\user formatting.
func TestBasicAuth_DomainQualifiedUser(t *testing.T) {
	auth := NewBasicAuth(Credentials{
		Username: "testuser",
		Password: "testpass",
		Domain:   "CORP",
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoded := strings.TrimPrefix(r.Header.Get("Authorization"), "Basic ")
		decoded, _ := base64.StdEncoding.DecodeString(encoded)
		if string(decoded) != `CORP\testuser:testpass` {
			t.Errorf("decoded credentials = %q, want %q", string(decoded), `CORP\testuser:testpass`)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Transport: auth.Transport(http.DefaultTransport)}
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
}

// TestNTLMAuth_Name verifies the auth scheme name.
func TestNTLMAuth_Name(t *testing.T) {
	auth := NewNTLMAuth(Credentials{})
	if auth.Name() != "NTLM" {
		t.Errorf("Name() = %q, want %q", auth.Name(), "NTLM")
	}
}

// TestNTLMAuth_Transport verifies NTLM transport is created.
func TestNTLMAuth_Transport(t *testing.T) {
	creds := Credentials{
		Username: "testuser",
		Password: "testpass",
		Domain:   "TESTDOMAIN",
	}
	auth := NewNTLMAuth(creds)

	transport := auth.Transport(http.DefaultTransport)
	if transport == nil {
		t.Error("Transport returned nil")
	}

	if transport == http.DefaultTransport {
		t.Error("Transport should wrap the base transport")
	}
}

// TestAuthenticator_Interface verifies the auth types implement Authenticator.
func TestAuthenticator_Interface(_ *testing.T) {
	var _ Authenticator = NewBasicAuth(Credentials{})
	var _ Authenticator = NewNTLMAuth(Credentials{})
	var _ Authenticator = NewNegotiateAuth(nil)
}
