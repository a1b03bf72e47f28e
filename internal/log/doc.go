// Package log builds the slog loggers used by nanumcorp.
//
// Loggers returned by NewLogger wrap their handler in a RedactHandler, so
// request headers copied from a configuration file (cookies, authorization
// headers, API keys) never reach the terminal in clear text. The portal
// itself needs no credentials, but users may add headers for proxies or
// gateways in front of it.
//
//	logger := log.NewLogger(os.Stderr, log.WithVerbose(true))
//	logger.Debug("request", "url", u, "cookie", c) // cookie=***REDACTED***
package log
