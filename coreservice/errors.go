package coreservice

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// Fault represents a Core Service SOAP fault.
type Fault struct {
	// Code is the SOAP fault code (e.g., "s:Sender", "s:Receiver").
	Code string

	// Subcode is the service-specific subcode, when present.
	Subcode string

	// Reason is the human-readable fault reason.
	Reason string

	// ErrorCode is the Content Manager error code from the fault detail.
	ErrorCode int

	// Message is the CoreServiceFault message from the fault detail.
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	var parts []string
	if f.Code != "" {
		parts = append(parts, f.Code)
	}
	if f.Subcode != "" {
		parts = append(parts, f.Subcode)
	}
	if f.Reason != "" {
		parts = append(parts, f.Reason)
	}
	if f.ErrorCode != 0 {
		parts = append(parts, fmt.Sprintf("code=%d", f.ErrorCode))
	}
	return "coreservice fault: " + strings.Join(parts, ": ")
}

// IsNotFound returns true if the fault indicates the item does not exist.
func (f *Fault) IsNotFound() bool {
	if strings.Contains(f.Reason, "does not exist") ||
		strings.Contains(f.Message, "does not exist") {
		return true
	}
	// Content Manager ItemDoesNotExist error code
	return f.ErrorCode == 15
}

// IsAccessDenied returns true if the fault indicates access was denied.
func (f *Fault) IsAccessDenied() bool {
	return strings.Contains(f.Subcode, "AccessDenied") ||
		strings.Contains(f.Reason, "Access is denied") ||
		strings.Contains(f.Message, "Access is denied")
}

// IsFault returns true if the error is a Core Service Fault.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}

// ParseFault parses a SOAP response and returns a Fault if present.
// Returns nil if the response does not contain a fault.
func ParseFault(data []byte) (*Fault, error) {
	// Quick check if this might be a fault
	if !strings.Contains(string(data), ":Fault") {
		return nil, nil
	}

	var env faultEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse fault: %w", err)
	}

	// Check if fault is present
	if env.Body.Fault.Code.Value == "" {
		return nil, nil
	}

	return &Fault{
		Code:      env.Body.Fault.Code.Value,
		Subcode:   env.Body.Fault.Code.Subcode.Value,
		Reason:    env.Body.Fault.Reason.Text,
		ErrorCode: env.Body.Fault.Detail.CoreServiceFault.ErrorCode,
		Message:   env.Body.Fault.Detail.CoreServiceFault.Message,
	}, nil
}

// CheckFault parses a response and returns an error if it contains a fault.
func CheckFault(data []byte) error {
	fault, err := ParseFault(data)
	if err != nil {
		return err
	}
	if fault != nil {
		return fault
	}
	return nil
}

// faultEnvelope is the XML structure for parsing SOAP faults.
type faultEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault struct {
			Code struct {
				Value   string `xml:"Value"`
				Subcode struct {
					Value string `xml:"Value"`
				} `xml:"Subcode"`
			} `xml:"Code"`
			Reason struct {
				Text string `xml:"Text"`
			} `xml:"Reason"`
			Detail struct {
				CoreServiceFault struct {
					ErrorCode int    `xml:"ErrorCode"`
					Message   string `xml:"Message"`
				} `xml:"CoreServiceFault"`
			} `xml:"Detail"`
		} `xml:"Fault"`
	} `xml:"Body"`
}
