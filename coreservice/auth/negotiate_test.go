package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// mockSecurityProvider scripts the token exchange for Negotiate tests.
type mockSecurityProvider struct {
	StepFunc func(ctx context.Context, serverToken []byte) (clientToken []byte, continueNeeded bool, err error)
	complete bool
}

func (m *mockSecurityProvider) Step(ctx context.Context, serverToken []byte) ([]byte, bool, error) {
	if m.StepFunc != nil {
		return m.StepFunc(ctx, serverToken)
	}
	return nil, false, nil
}

func (m *mockSecurityProvider) Complete() bool { return m.complete }

func (m *mockSecurityProvider) Close() error { return nil }

// mockRoundTripper captures requests and returns canned responses.
type mockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if m.RoundTripFunc != nil {
		return m.RoundTripFunc(req)
	}
	return &http.Response{StatusCode: 200}, nil
}

func TestNegotiateAuth_Name(t *testing.T) {
	auth := NewNegotiateAuth(&mockSecurityProvider{})
	if auth.Name() != "Negotiate" {
		t.Errorf("Name() = %s; want Negotiate", auth.Name())
	}
}

func TestNegotiateRoundTrip_Success_NoChallenge(t *testing.T) {
	// Server accepts the request immediately
	transport := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader("success")),
			}, nil
		},
	}

	auth := NewNegotiateAuth(&mockSecurityProvider{})
	rt := auth.Transport(transport)

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d; want 200", resp.StatusCode)
	}
}

func TestNegotiateRoundTrip_ChallengeResponse(t *testing.T) {
	// 1. Client sends request without auth
	// 2. Server answers 401 + WWW-Authenticate: Negotiate
	// 3. Provider produces a token, client resends with Authorization header
	// 4. Server answers 200

	stepCalled := 0
	provider := &mockSecurityProvider{
		StepFunc: func(ctx context.Context, serverToken []byte) ([]byte, bool, error) {
			stepCalled++
			return []byte("client-token-1"), false, nil
		},
	}

	requestCount := 0
	transport := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			requestCount++
			if requestCount == 1 {
				if req.Header.Get("Authorization") != "" {
					t.Error("first request should carry no Authorization header")
				}
				return &http.Response{
					StatusCode: 401,
					Header:     http.Header{"Www-Authenticate": []string{"Negotiate"}},
					Body:       io.NopCloser(strings.NewReader("")),
				}, nil
			}

			authHeader := req.Header.Get("Authorization")
			wantToken := base64.StdEncoding.EncodeToString([]byte("client-token-1"))
			if authHeader != "Negotiate "+wantToken {
				t.Errorf("Authorization = %q, want Negotiate %s", authHeader, wantToken)
			}
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader("success")),
			}, nil
		},
	}

	auth := NewNegotiateAuth(provider)
	rt := auth.Transport(transport)

	req, _ := http.NewRequest("POST", "http://example.com", strings.NewReader("<request/>"))
	req.ContentLength = int64(len("<request/>"))

	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d; want 200", resp.StatusCode)
	}
	if stepCalled != 1 {
		t.Errorf("Step called %d times; want 1", stepCalled)
	}
	if requestCount != 2 {
		t.Errorf("server saw %d requests; want 2", requestCount)
	}
}

func TestNegotiateRoundTrip_BodyResentOnEachLeg(t *testing.T) {
	provider := &mockSecurityProvider{
		StepFunc: func(ctx context.Context, serverToken []byte) ([]byte, bool, error) {
			return []byte("tok"), false, nil
		},
	}

	body := "<Envelope>payload</Envelope>"
	requestCount := 0
	transport := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			requestCount++
			got, _ := io.ReadAll(req.Body)
			if string(got) != body {
				t.Errorf("leg %d body = %q, want %q", requestCount, got, body)
			}
			if requestCount == 1 {
				return &http.Response{
					StatusCode: 401,
					Header:     http.Header{"Www-Authenticate": []string{"Negotiate"}},
					Body:       io.NopCloser(strings.NewReader("")),
				}, nil
			}
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader("ok")),
			}, nil
		},
	}

	rt := NewNegotiateAuth(provider).Transport(transport)

	req, _ := http.NewRequest("POST", "http://example.com", strings.NewReader(body))
	req.ContentLength = int64(len(body))

	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d; want 200", resp.StatusCode)
	}
}

func TestNegotiateRoundTrip_NonNegotiateChallenge(t *testing.T) {
	// A Basic challenge is not ours to answer; the 401 passes through.
	transport := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 401,
				Header:     http.Header{"Www-Authenticate": []string{`Basic realm="cms"`}},
				Body:       io.NopCloser(strings.NewReader("")),
			}, nil
		},
	}

	rt := NewNegotiateAuth(&mockSecurityProvider{}).Transport(transport)

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("StatusCode = %d; want 401", resp.StatusCode)
	}
}

func TestNegotiateRoundTrip_StepError(t *testing.T) {
	stepErr := errors.New("no ticket")
	provider := &mockSecurityProvider{
		StepFunc: func(ctx context.Context, serverToken []byte) ([]byte, bool, error) {
			return nil, false, stepErr
		},
	}

	transport := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 401,
				Header:     http.Header{"Www-Authenticate": []string{"Negotiate"}},
				Body:       io.NopCloser(strings.NewReader("")),
			}, nil
		},
	}

	rt := NewNegotiateAuth(provider).Transport(transport)

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	_, err := rt.RoundTrip(req)
	if err == nil {
		t.Fatal("expected an error when the provider step fails")
	}
	if !errors.Is(err, stepErr) {
		t.Errorf("error chain should contain the step error, got %v", err)
	}
}

func TestNegotiateRoundTrip_BoundedAttempts(t *testing.T) {
	// A server that keeps answering 401 cannot loop us forever.
	provider := &mockSecurityProvider{
		StepFunc: func(ctx context.Context, serverToken []byte) ([]byte, bool, error) {
			return []byte("tok"), true, nil
		},
	}

	requestCount := 0
	transport := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			requestCount++
			return &http.Response{
				StatusCode: 401,
				Header:     http.Header{"Www-Authenticate": []string{"Negotiate"}},
				Body:       io.NopCloser(strings.NewReader("")),
			}, nil
		},
	}

	rt := NewNegotiateAuth(provider).Transport(transport)

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	_, err := rt.RoundTrip(req)
	if err == nil {
		t.Fatal("expected an error after exhausting handshake attempts")
	}
	if requestCount > maxNegotiateLegs {
		t.Errorf("server saw %d requests; want at most %d", requestCount, maxNegotiateLegs)
	}
}
