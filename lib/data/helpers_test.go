package data

import (
	"context"
	"minecomply/lib/api"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

type MockTokenProvider struct {
	Token string
	Err   error
	Calls int
}

func (m *MockTokenProvider) AccessToken(ctx context.Context) (string, error) {
	m.Calls++
	return m.Token, m.Err
}

func newTestAPI(t *testing.T, router http.Handler, tokens api.TokenProvider) (*api.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, server.Client(), tokens, logrus.New()), server
}
