package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// MaskValue replaces redacted values.
const MaskValue = "***REDACTED***"

// defaultRedactKeys are attribute keys whose values are always masked.
// Keys are compared case-insensitively.
var defaultRedactKeys = []string{
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
	"x-auth-token",
	"api_key",
	"apikey",
	"password",
	"token",
	"session",
	"sid",
}

// redactKeywords mask any key containing one of them.
var redactKeywords = []string{"password", "secret", "token", "auth", "credential", "cookie"}

// redactPatterns mask string values regardless of their key.
var redactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
}

// RedactHandler is an slog.Handler that masks sensitive attributes before
// passing records to the wrapped handler.
//
// An attribute is masked when its key is one of the redacted keys, contains
// a redact keyword, or its string value looks like a bearer/basic credential
// or a JWT. URL values keep their shape but have sensitive query parameters
// masked.
type RedactHandler struct {
	handler slog.Handler
	keys    map[string]struct{}
}

// RedactOption configures a RedactHandler.
type RedactOption func(*RedactHandler)

// WithRedactKeys adds keys to mask, typically the names of extra request
// headers from the configuration file.
func WithRedactKeys(keys ...string) RedactOption {
	return func(h *RedactHandler) {
		for _, k := range keys {
			h.keys[strings.ToLower(k)] = struct{}{}
		}
	}
}

// NewRedactHandler wraps handler. A nil handler wraps slog.Default().Handler().
func NewRedactHandler(handler slog.Handler, opts ...RedactOption) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &RedactHandler{
		handler: handler,
		keys:    make(map[string]struct{}, len(defaultRedactKeys)),
	}
	for _, k := range defaultRedactKeys {
		h.keys[k] = struct{}{}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled delegates to the wrapped handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.redact(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs masks attrs and returns a handler carrying them.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.redact(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(masked), keys: h.keys}
}

// WithGroup returns a handler that nests attributes under name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name), keys: h.keys}
}

func (h *RedactHandler) redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, ga := range group {
			masked[i] = h.redact(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if h.isRedactedKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	v := a.Value.String()
	if isSensitiveValue(v) {
		return slog.String(a.Key, MaskValue)
	}
	if masked, ok := h.redactURL(v); ok {
		return slog.String(a.Key, masked)
	}
	return a
}

func (h *RedactHandler) isRedactedKey(key string) bool {
	key = strings.ToLower(key)
	if _, ok := h.keys[key]; ok {
		return true
	}
	for _, kw := range redactKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// redactURL masks sensitive query parameters of an absolute URL. It
// reports false when v is not such a URL or nothing was masked.
func (h *RedactHandler) redactURL(v string) (string, bool) {
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		return "", false
	}
	u, err := url.Parse(v)
	if err != nil || u.RawQuery == "" {
		return "", false
	}

	query := u.Query()
	changed := false
	for name := range query {
		if h.isRedactedKey(name) {
			query.Set(name, MaskValue)
			changed = true
		}
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), MaskValue)
			changed = true
		}
	}
	if !changed {
		return "", false
	}
	u.RawQuery = query.Encode()
	return u.String(), true
}

func isSensitiveValue(v string) bool {
	for _, p := range redactPatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

// Format selects the log output encoding.
type Format string

const (
	// FormatText writes logfmt-style lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

type loggerOptions struct {
	verbose    bool
	format     Format
	redactKeys []string
}

// LoggerOption configures NewLogger.
type LoggerOption func(*loggerOptions)

// WithVerbose lowers the level from Warn to Debug.
func WithVerbose(verbose bool) LoggerOption {
	return func(o *loggerOptions) { o.verbose = verbose }
}

// WithFormat selects text or JSON output.
func WithFormat(f Format) LoggerOption {
	return func(o *loggerOptions) { o.format = f }
}

// WithRedactedHeaders masks the values logged under the given header names.
func WithRedactedHeaders(headers map[string]string) LoggerOption {
	return func(o *loggerOptions) {
		for name := range headers {
			o.redactKeys = append(o.redactKeys, name)
		}
	}
}

// NewLogger returns a redacting logger writing to w.
func NewLogger(w io.Writer, opts ...LoggerOption) *slog.Logger {
	o := loggerOptions{format: FormatText}
	for _, opt := range opts {
		opt(&o)
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if o.format == FormatJSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(NewRedactHandler(handler, WithRedactKeys(o.redactKeys...)))
}
