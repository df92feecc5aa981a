package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func staticToken(token string) TokenProvider {
	return TokenProviderFunc(func(ctx context.Context) (string, error) {
		return token, nil
	})
}

func newTestClient(t *testing.T, router http.Handler, tokens TokenProvider) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return NewClient(server.URL, server.Client(), tokens, logrus.New()), server
}

func Test_Get_SendsBearerAndDecodes(t *testing.T) {
	//Arrange
	var gotAuth, gotContentType string
	router := chi.NewRouter()
	router.Get("/api/compliance/projects", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"name":"Tailings Dam"}`))
	})
	client, _ := newTestClient(t, router, staticToken("abc123"))

	//Act
	var out payload
	err := client.Get(context.Background(), "/compliance/projects", &out)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "Tailings Dam", out.Name)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func Test_Post_EncodesBody(t *testing.T) {
	//Arrange
	var received payload
	router := chi.NewRouter()
	router.Post("/api/things", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"name":"created"}`))
	})
	client, _ := newTestClient(t, router, staticToken("t"))

	//Act
	var out payload
	err := client.Post(context.Background(), "/things", payload{Name: "pit"}, &out)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "pit", received.Name)
	assert.Equal(t, "created", out.Name)
}

func Test_Post_NilBodySendsNothing(t *testing.T) {
	//Arrange
	var length int64 = -2
	router := chi.NewRouter()
	router.Post("/api/empty", func(w http.ResponseWriter, r *http.Request) {
		length = r.ContentLength
		w.Write([]byte(`{}`))
	})
	client, _ := newTestClient(t, router, staticToken("t"))

	//Act
	err := client.Post(context.Background(), "/empty", nil, nil)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, int64(0), length)
}

func Test_Get_ServerMessage(t *testing.T) {
	//Arrange
	router := chi.NewRouter()
	router.Get("/api/compliance/projects/p1/conditions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":true,"message":"Project not found","status":404}`))
	})
	client, _ := newTestClient(t, router, staticToken("t"))

	//Act
	err := client.Get(context.Background(), "/compliance/projects/p1/conditions", nil)

	//Assert
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Project not found", err.Error())
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func Test_Get_FallbackMessage(t *testing.T) {
	//Arrange
	router := chi.NewRouter()
	router.Get("/api/compliance/projects", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})
	client, _ := newTestClient(t, router, staticToken("t"))

	//Act
	err := client.Get(context.Background(), "/compliance/projects", nil)

	//Assert
	require.Error(t, err)
	assert.Equal(t, "GET /compliance/projects failed (502)", err.Error())
}

func Test_Post_FallbackWhenMessageMissing(t *testing.T) {
	//Arrange
	router := chi.NewRouter()
	router.Post("/api/storage/upload-url", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":true}`))
	})
	client, _ := newTestClient(t, router, staticToken("t"))

	//Act
	err := client.Post(context.Background(), "/storage/upload-url", payload{Name: "x"}, nil)

	//Assert
	assert.EqualError(t, err, "POST /storage/upload-url failed (500)")
}

func Test_MissingToken_FailsBeforeRequest(t *testing.T) {
	//Arrange
	hits := 0
	router := chi.NewRouter()
	router.Get("/api/compliance/me", func(w http.ResponseWriter, r *http.Request) {
		hits++
	})
	client, _ := newTestClient(t, router, staticToken(""))

	//Act
	err := client.Get(context.Background(), "/compliance/me", nil)

	//Assert
	assert.True(t, IsAuthentication(err))
	assert.Equal(t, 0, hits)
}

func Test_TokenProviderError_IsAuthentication(t *testing.T) {
	//Arrange
	failing := TokenProviderFunc(func(ctx context.Context) (string, error) {
		return "", errors.New("refresh token expired")
	})
	client := NewClient("http://127.0.0.1:1", nil, failing, nil)

	//Act
	err := client.Get(context.Background(), "/compliance/me", nil)

	//Assert
	var authErr *AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Contains(t, err.Error(), "refresh token expired")
}

func Test_TransportFailure_IsNetworkError(t *testing.T) {
	//Arrange
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()
	client := NewClient(baseURL, nil, staticToken("t"), nil)

	//Act
	err := client.Get(context.Background(), "/compliance/me", nil)

	//Assert
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.NotNil(t, errors.Unwrap(err))
}

func Test_ParseErrorEnvelope(t *testing.T) {
	assert.Equal(t, "", ParseErrorEnvelope(nil))
	assert.Equal(t, "", ParseErrorEnvelope([]byte("not json")))
	assert.Equal(t, "", ParseErrorEnvelope([]byte(`{"status":400}`)))
	assert.Equal(t, "Invalid title", ParseErrorEnvelope([]byte(`{"message":" Invalid title "}`)))
}

func Test_UploadError_Message(t *testing.T) {
	assert.Equal(t, "bucket not found", (&UploadError{StatusCode: 404, Body: "bucket not found"}).Error())
	assert.Equal(t, "upload failed (413)", (&UploadError{StatusCode: 413}).Error())
	assert.Equal(t, "  \n", (&UploadError{StatusCode: 500, Body: "  \n"}).Error())
	assert.Equal(t, 413, StatusCode(&UploadError{StatusCode: 413}))
}
