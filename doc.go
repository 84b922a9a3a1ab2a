// Package tridion provides a Go client for the SDL Tridion Content
// Manager Core Service, with a SOAP/WS-Addressing transport layer and a
// small CLI for day-to-day publication management.
//
// The library adds on top of the raw web service contract:
//   - SOAP transport layer (HTTP/HTTPS with WS-Addressing envelopes)
//   - Basic, NTLM and Kerberos/Negotiate authentication
//   - TCM URI parsing and publication-namespace rewriting
//   - High-level session API for publication create/update workflows
//
// # Architecture
//
// The library is organized into layers:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  session/      High-level gateway (lifecycle, gating)   │
//	├─────────────────────────────────────────────────────────┤
//	│  publication/  Staging records + field merge logic      │
//	├─────────────────────────────────────────────────────────┤
//	│  coreservice/  SOAP envelope + Core Service operations  │
//	├─────────────────────────────────────────────────────────┤
//	│  tcm/          Item identifier (TCM URI) model          │
//	└─────────────────────────────────────────────────────────┘
//
// # Quick Start
//
//	cfg := session.DefaultConfig()
//	cfg.Endpoint = "https://cms.example.com/webservices/CoreService2013.svc/wsHttp"
//	cfg.Username = "administrator"
//	cfg.Password = "password"
//	s, err := session.Open(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	pubs, err := s.GetPublications(ctx, "")
package tridion
