package core

import (
	"context"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenStore is the client-side credential storage collaborator. Get returns
// an empty string, not an error, when no credential is stored or the stored
// one has expired.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, raw string, expiresAt time.Time) error
	Delete(ctx context.Context) error
}

// CredentialSource exposes the current credential to components that attach
// it to requests or gate operations on it. ok is false for absent, expired,
// or malformed credentials alike.
type CredentialSource interface {
	Credential(ctx context.Context) (Credential, bool)
}

// Notifier receives the user-facing outcome of store mutations. The embedding
// UI renders these; the stores guarantee every failed mutation produces
// exactly one Error call after state has been rolled back.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

type NopNotifier struct{}

func (NopNotifier) Success(context.Context, string) {}

func (NopNotifier) Error(context.Context, string) {}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

var (
	_ Notifier        = (*NopNotifier)(nil)
	_ MetricsRecorder = (*NopMetricsRecorder)(nil)
)
