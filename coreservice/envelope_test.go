package coreservice

import (
	"strings"
	"testing"
)

// TestEnvelopeBuilder_BasicStructure verifies the envelope produces valid SOAP XML.
func TestEnvelopeBuilder_BasicStructure(t *testing.T) {
	env := NewEnvelope()

	xmlBytes, err := env.MarshalIndent("", "  ")
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}

	xmlStr := string(xmlBytes)

	if !strings.Contains(xmlStr, "Envelope") {
		t.Error("missing Envelope element")
	}
	if !strings.Contains(xmlStr, "Header") {
		t.Error("missing Header element")
	}
	if !strings.Contains(xmlStr, "Body") {
		t.Error("missing Body element")
	}
}

// TestEnvelopeBuilder_Namespaces verifies required namespaces are declared.
func TestEnvelopeBuilder_Namespaces(t *testing.T) {
	env := NewEnvelope()

	xmlBytes, err := env.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}

	xmlStr := string(xmlBytes)

	requiredNamespaces := []struct {
		prefix string
		uri    string
	}{
		{"xmlns:s", NsSoap},
		{"xmlns:a", NsAddressing},
	}

	for _, ns := range requiredNamespaces {
		if !strings.Contains(xmlStr, ns.uri) {
			t.Errorf("missing namespace %s=%q", ns.prefix, ns.uri)
		}
	}
}

// TestEnvelopeBuilder_WithAction verifies setting the Action header.
func TestEnvelopeBuilder_WithAction(t *testing.T) {
	env := NewEnvelope().WithAction(ActionRead)

	xmlBytes, err := env.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}

	if !strings.Contains(string(xmlBytes), ActionRead) {
		t.Errorf("missing Action header value %q", ActionRead)
	}
}

// TestEnvelopeBuilder_WithTo verifies setting the To header.
func TestEnvelopeBuilder_WithTo(t *testing.T) {
	endpoint := "https://cms.example.com/webservices/CoreService2013.svc/basicHttp"
	env := NewEnvelope().WithTo(endpoint)

	xmlBytes, err := env.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}

	if !strings.Contains(string(xmlBytes), endpoint) {
		t.Errorf("missing To header value %q", endpoint)
	}
}

// TestEnvelopeBuilder_WithMessageID verifies setting the MessageID header.
func TestEnvelopeBuilder_WithMessageID(t *testing.T) {
	messageID := "uuid:TEST-MESSAGE-ID-12345"
	env := NewEnvelope().WithMessageID(messageID)

	xmlBytes, err := env.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}

	if !strings.Contains(string(xmlBytes), messageID) {
		t.Errorf("missing MessageID value %q", messageID)
	}
}

// TestEnvelopeBuilder_WithReplyTo verifies setting the ReplyTo header.
func TestEnvelopeBuilder_WithReplyTo(t *testing.T) {
	env := NewEnvelope().WithReplyTo(AddressAnonymous)

	xmlBytes, err := env.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}

	if !strings.Contains(string(xmlBytes), AddressAnonymous) {
		t.Errorf("missing ReplyTo Address value %q", AddressAnonymous)
	}
}

// TestEnvelopeBuilder_WithBody verifies body content passes through unescaped.
func TestEnvelopeBuilder_WithBody(t *testing.T) {
	body := `<Read xmlns="` + NsCoreService + `"><id>tcm:0-5-1</id></Read>`
	env := NewEnvelope().WithBody([]byte(body))

	xmlBytes, err := env.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}

	if !strings.Contains(string(xmlBytes), body) {
		t.Errorf("body content not embedded verbatim:\n%s", xmlBytes)
	}
}

// TestEnvelopeBuilder_Chaining verifies method chaining works correctly.
func TestEnvelopeBuilder_Chaining(t *testing.T) {
	endpoint := "https://cms.example.com/webservices/CoreService2013.svc/basicHttp"
	messageID := "uuid:CHAINED-TEST-ID"

	env := NewEnvelope().
		WithAction(ActionCreate).
		WithTo(endpoint).
		WithMessageID(messageID).
		WithReplyTo(AddressAnonymous).
		WithBody([]byte("<Create/>"))

	xmlBytes, err := env.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}

	xmlStr := string(xmlBytes)

	checks := []string{
		ActionCreate,
		endpoint,
		messageID,
		AddressAnonymous,
		"<Create/>",
	}

	for _, check := range checks {
		if !strings.Contains(xmlStr, check) {
			t.Errorf("missing value after chaining: %q", check)
		}
	}
}
