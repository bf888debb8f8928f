// Package security provides TLS configuration for cdnkit transports.
//
// The scriptenv HTTP environment uses it to reach private CDN mirrors that
// sit behind an internal CA or require client certificates.
//
// # TLS Configuration
//
//	cfg := security.TLSConfig{
//	    CAFile:     "/path/to/ca.pem",
//	    CertFile:   "/path/to/cert.pem",
//	    KeyFile:    "/path/to/key.pem",
//	    MinVersion: "1.3",
//	}
//
//	tlsConfig, err := cfg.Build()
//
// Build returns nil when no setting is configured, so a zero TLSConfig
// leaves the transport defaults untouched.
package security
