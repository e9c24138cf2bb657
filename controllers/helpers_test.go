package controllers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/config"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/controllers"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/routes"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/services"
	"github.com/naveengowda11/SkillForge-AdaptiveLearningPlatform/utils"
	"github.com/stretchr/testify/require"
)

// stubMailer records the last message instead of talking to an SMTP relay.
type stubMailer struct {
	err         error
	to, subject string
	body        string
}

func (m *stubMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.subject, m.body = to, subject, body
	return nil
}

// lastOTP pulls the code out of the last delivered mail body.
func (m *stubMailer) lastOTP(t *testing.T) string {
	t.Helper()
	fields := strings.Fields(m.body)
	require.NotEmpty(t, fields, "no OTP mail delivered")
	return fields[len(fields)-1]
}

type stubGoogle struct {
	user *services.GoogleUser
	err  error
}

func (g *stubGoogle) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (g *stubGoogle) FetchUser(ctx context.Context, code string) (*services.GoogleUser, error) {
	return g.user, g.err
}

type testEnv struct {
	app       *fiber.App
	db        *sql.DB
	mailer    *stubMailer
	tokens    *utils.TokenService
	uploadDir string
}

func newTestEnv(t *testing.T, google controllers.GoogleAuthenticator) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := config.ConnectDB(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens := utils.NewTokenService("test-secret", time.Hour)
	mailer := &stubMailer{}

	auth := controllers.NewAuthController(db, tokens, mailer,
		services.NewOTPStore(), services.NewOTPStore(), google, "http://localhost:3000")
	profile := controllers.NewProfileController(db, dir)

	return &testEnv{
		app:       routes.SetupRouter(auth, profile, tokens, dir),
		db:        db,
		mailer:    mailer,
		tokens:    tokens,
		uploadDir: dir,
	}
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.postRaw(t, path, body)
}

func (e *testEnv) postRaw(t *testing.T, path string, body []byte) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// postProfile submits the profile form as multipart, with an optional photo.
func (e *testEnv) postProfile(t *testing.T, token string, fields map[string]string, photo []byte, photoName string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photo != nil {
		fw, err := w.CreateFormFile("photo", photoName)
		require.NoError(t, err)
		_, err = fw.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profile", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

// register creates a user and returns a login token for it.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()

	resp := e.postJSON(t, "/api/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = e.postJSON(t, "/api/login", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody(t, resp)["token"].(string)
}
