// Package transport provides HTTP/TLS transport for Core Service SOAP
// communication.
//
// The transport layer handles:
//   - HTTP/HTTPS connections
//   - TLS configuration
//   - Request/response handling, including fault bodies behind HTTP 500
package transport
