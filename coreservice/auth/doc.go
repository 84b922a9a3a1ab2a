// Package auth provides authentication handlers for Core Service
// connections.
//
// # Supported Authentication Methods
//
//   - Basic: HTTP Basic authentication (use only over TLS)
//   - NTLM: NT LAN Manager authentication (via github.com/Azure/go-ntlmssp)
//   - Negotiate: SPNEGO with a Kerberos provider (via github.com/go-krb5/krb5)
//
// Content Manager instances inside a Windows domain typically expose the
// Core Service behind IIS with Windows authentication; NTLM or Negotiate
// is required there. Standalone installations accept Basic credentials.
//
// # Usage
//
// NTLM authentication:
//
//	a := auth.NewNTLMAuth(auth.Credentials{
//	    Username: "administrator",
//	    Password: "password",
//	    Domain:   "DOMAIN",
//	})
//
// Kerberos authentication (after kinit, or with a password):
//
//	provider, _ := auth.NewKerberosProvider(auth.KerberosConfig{
//	    TargetSPN:   "HTTP/cms.domain.com",
//	    Realm:       "DOMAIN.COM",
//	    Credentials: &auth.Credentials{Username: "user", Password: "pass"},
//	})
//	a := auth.NewNegotiateAuth(provider)
package auth
