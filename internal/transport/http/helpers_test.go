package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adrecon/internal/dataprocessing"
	"adrecon/internal/services"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// uploadFile is one file part of a multipart request
type uploadFile struct {
	field, name string
	data        []byte
}

// newUploadRequest builds a multipart POST to target
func newUploadRequest(t *testing.T, target string, files []uploadFile, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// MockReconciler is a testify mock of Reconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, req services.ReconcileRequest) (*dataprocessing.Result, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*dataprocessing.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReconciler) Report(ctx context.Context, req services.ReconcileRequest, w io.Writer) (*dataprocessing.Result, error) {
	args := m.Called(ctx, req, w)
	if res := args.Get(0); res != nil {
		if payload := args.String(2); payload != "" {
			_, _ = io.WriteString(w, payload)
		}
		return res.(*dataprocessing.Result), args.Error(1)
	}
	return nil, args.Error(1)
}
