package controllers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"interviewprep/config"
	"interviewprep/mailer"
	"interviewprep/models"
	"interviewprep/routes"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	cfg     mailer.EmailConfig
	to      string
	subject string
	body    string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(cfg mailer.EmailConfig, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{cfg: cfg, to: to, subject: subject, body: body})
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeSender) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Interview{},
		&models.InterviewSkill{},
	))

	cfg := &config.Config{JWTSecret: "testsecret"}
	sender := &fakeSender{}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg, mailer.NewConfigStore(), sender)

	return app, db, sender
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func registerAndLogin(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func addInterview(t *testing.T, app *fiber.App, token string, fields map[string]interface{}) int {
	t.Helper()

	body := map[string]interface{}{
		"company_name":      "Acme",
		"role":              "SWE",
		"interview_date":    "2025-01-10",
		"status":            models.StatusApplied,
		"preparation_level": 3,
	}
	for k, v := range fields {
		body[k] = v
	}

	resp := doRequest(t, app, "POST", "/api/interviews", token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decodeData(t, resp)
	id, ok := data["id"].(float64)
	require.True(t, ok)
	return int(id)
}

func TestRegisterValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"username": "alice"}},
		{"short password", map[string]string{"username": "alice", "email": "a@x.com", "password": "abc"}},
		{"short username", map[string]string{"username": "al", "email": "a@x.com", "password": "secret1"}},
		{"email without at sign", map[string]string{"username": "alice", "email": "ax.com", "password": "secret1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, "POST", "/api/auth/register", "", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, db, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": "someoneelse", "email": "a@x.com", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLogin(t *testing.T) {
	app, db, _ := newTestApp(t)
	registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	resp := doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrongpass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)
	assert.NotNil(t, user.LastLogin)
}

func TestAuthRequired(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, path := range []string{"/api/interviews", "/api/dashboard", "/api/insights", "/api/reminders"} {
		resp := doRequest(t, app, "GET", path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestInterviewCRUD(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	id := addInterview(t, app, token, nil)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/interviews/%d", id), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/interviews/%d", id), token, map[string]interface{}{
		"company_name":      "Acme",
		"role":              "Senior SWE",
		"interview_date":    "2025-01-10",
		"status":            models.StatusInterviewed,
		"preparation_level": 4,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/interviews", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, float64(1), data["total"])

	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/interviews/%d", id), token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/interviews/%d", id), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/interviews", token, nil)
	data = decodeData(t, resp)
	assert.Equal(t, float64(0), data["total"])
}

func TestUpdateNonexistentInterview(t *testing.T) {
	app, db, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	addInterview(t, app, token, nil)

	resp := doRequest(t, app, "PUT", "/api/interviews/9999", token, map[string]interface{}{
		"company_name":      "Ghost",
		"role":              "SWE",
		"interview_date":    "2025-01-10",
		"status":            models.StatusSelected,
		"preparation_level": 5,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, "DELETE", "/api/interviews/9999", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Store unchanged
	var count int64
	db.Model(&models.Interview{}).Count(&count)
	assert.Equal(t, int64(1), count)
	var iv models.Interview
	require.NoError(t, db.First(&iv).Error)
	assert.Equal(t, "Acme", iv.CompanyName)
	assert.Equal(t, models.StatusApplied, iv.Status)
}

func TestInterviewOwnership(t *testing.T) {
	app, _, _ := newTestApp(t)
	aliceToken := registerAndLogin(t, app, "alice", "a@x.com", "secret1")
	bobToken := registerAndLogin(t, app, "bobby", "b@x.com", "secret2")

	id := addInterview(t, app, aliceToken, nil)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/interviews/%d", id), bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/interviews/%d", id), bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Still visible to the owner
	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/interviews/%d", id), aliceToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateInterviewValidation(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	cases := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"missing company", map[string]interface{}{"company_name": ""}},
		{"bad status", map[string]interface{}{"status": "Ghosted"}},
		{"prep too high", map[string]interface{}{"preparation_level": 6}},
		{"prep too low", map[string]interface{}{"preparation_level": 0}},
		{"bad date", map[string]interface{}{"interview_date": "10/01/2025"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := map[string]interface{}{
				"company_name":      "Acme",
				"role":              "SWE",
				"interview_date":    "2025-01-10",
				"status":            models.StatusApplied,
				"preparation_level": 3,
			}
			for k, v := range tc.fields {
				body[k] = v
			}
			resp := doRequest(t, app, "POST", "/api/interviews", token, body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestDashboardStatusCounts(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	statuses := []string{
		models.StatusApplied, models.StatusApplied,
		models.StatusInterviewed, models.StatusSelected,
	}
	for i, s := range statuses {
		addInterview(t, app, token, map[string]interface{}{
			"company_name": fmt.Sprintf("Company%d", i),
			"status":       s,
		})
	}

	resp := doRequest(t, app, "GET", "/api/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)

	counts, ok := data["status_counts"].(map[string]interface{})
	require.True(t, ok)

	// All four enum keys present, even at zero, and counts sum to total.
	sum := 0.0
	for _, s := range models.Statuses {
		v, present := counts[s]
		require.True(t, present, s)
		sum += v.(float64)
	}
	assert.Equal(t, data["total_interviews"], sum)
	assert.Equal(t, float64(0), counts[models.StatusRejected])

	// No zero-total rows in the preparation table.
	rows, ok := data["success_by_preparation"].([]interface{})
	require.True(t, ok)
	for _, r := range rows {
		row := r.(map[string]interface{})
		assert.Greater(t, row["total"].(float64), float64(0))
	}
}

func TestAliceEndToEnd(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	id := addInterview(t, app, token, nil) // Acme / SWE / 2025-01-10 / Applied / prep 3

	resp := doRequest(t, app, "GET", "/api/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)

	counts := data["status_counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts[models.StatusApplied])
	assert.Equal(t, float64(0), counts[models.StatusInterviewed])
	assert.Equal(t, float64(0), counts[models.StatusSelected])
	assert.Equal(t, float64(0), counts[models.StatusRejected])

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/interviews/%d", id), token, map[string]interface{}{
		"company_name":      "Acme",
		"role":              "SWE",
		"interview_date":    "2025-01-10",
		"status":            models.StatusSelected,
		"preparation_level": 3,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/dashboard", token, nil)
	data = decodeData(t, resp)

	rows := data["success_by_preparation"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, float64(3), row["preparation_level"])
	assert.Equal(t, float64(1), row["total"])
	assert.Equal(t, float64(100), row["success_rate"])
}

func TestSkillAnalysis(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	id := addInterview(t, app, token, nil)
	for _, skill := range []map[string]interface{}{
		{"skill_name": "DSA", "skill_score": 8},
		{"skill_name": "System Design", "skill_score": 4},
	} {
		resp := doRequest(t, app, "POST", fmt.Sprintf("/api/interviews/%d/skills", id), token, skill)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, app, "GET", "/api/dashboard/skills", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)

	skills := data["skills"].([]interface{})
	require.Len(t, skills, 2)

	// Weakest skill first
	first := skills[0].(map[string]interface{})
	assert.Equal(t, "System Design", first["skill_name"])
	assert.Equal(t, float64(4), first["avg_score"])
}

func TestInsightsEmpty(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	resp := doRequest(t, app, "GET", "/api/insights", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Contains(t, data["message"], "No data available")
}

func TestInsightsWithData(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	addInterview(t, app, token, map[string]interface{}{
		"status":           models.StatusSelected,
		"technical_topics": "DSA, SQL",
	})
	addInterview(t, app, token, map[string]interface{}{
		"company_name":     "Globex",
		"status":           models.StatusRejected,
		"technical_topics": "System Design",
	})

	resp := doRequest(t, app, "GET", "/api/insights", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)

	perf := data["performance"].(map[string]interface{})
	assert.Equal(t, float64(2), perf["total"])
	assert.Equal(t, float64(50), perf["success_rate"])
	assert.Contains(t, perf["analysis"], "industry average")

	// Below five interviews there is no trend yet.
	trend := data["trend"].(map[string]interface{})
	assert.Equal(t, "insufficient_data", trend["direction"])

	weak := data["weak_areas"].(map[string]interface{})
	topics := weak["topics"].([]interface{})
	require.Len(t, topics, 3)
	worst := topics[0].(map[string]interface{})
	assert.Equal(t, "System Design", worst["topic"])
	assert.Equal(t, float64(0), worst["success_rate"])
}

func TestReminderFlow(t *testing.T) {
	app, db, sender := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	future := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	id := addInterview(t, app, token, map[string]interface{}{"interview_date": future})
	addInterview(t, app, token, map[string]interface{}{
		"company_name":   "PastCorp",
		"interview_date": "2020-01-01",
	})

	// Only the future interview is upcoming.
	resp := doRequest(t, app, "GET", "/api/reminders", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, float64(1), data["total"])

	// Sending without a config is rejected.
	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/reminders/%d/send", id), token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "PUT", "/api/reminders/config", token, map[string]interface{}{
		"email":     "a@x.com",
		"password":  "app-password",
		"smtp_host": "smtp.example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/reminders/test", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@x.com", sender.sent[0].to)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/reminders/%d/send", id), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[1].subject, "Acme")
	assert.Contains(t, sender.sent[1].body, "SWE")

	// The sent flag is persisted.
	var iv models.Interview
	require.NoError(t, db.First(&iv, id).Error)
	assert.True(t, iv.ReminderSent)
}

func TestReminderSendFailure(t *testing.T) {
	app, db, sender := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	future := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	id := addInterview(t, app, token, map[string]interface{}{"interview_date": future})

	resp := doRequest(t, app, "PUT", "/api/reminders/config", token, map[string]interface{}{
		"email":     "a@x.com",
		"password":  "app-password",
		"smtp_host": "smtp.example.com",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	sender.err = errors.New("connection refused")
	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/reminders/%d/send", id), token, nil)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// Flag untouched on failure.
	var iv models.Interview
	require.NoError(t, db.First(&iv, id).Error)
	assert.False(t, iv.ReminderSent)
}

func TestUpcomingWindowIgnoresServerZone(t *testing.T) {
	// On a server west of UTC, local midnight lands after UTC midnight;
	// an interview dated today must still count as upcoming.
	oldLocal := time.Local
	time.Local = time.FixedZone("UTC-5", -5*60*60)
	defer func() { time.Local = oldLocal }()

	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	today := time.Now().UTC().Format("2006-01-02")
	soon := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	addInterview(t, app, token, map[string]interface{}{"interview_date": today})
	addInterview(t, app, token, map[string]interface{}{
		"company_name":   "Globex",
		"interview_date": soon,
	})

	resp := doRequest(t, app, "GET", "/api/reminders", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	require.Equal(t, float64(2), data["total"])

	upcoming := data["upcoming"].([]interface{})
	first := upcoming[0].(map[string]interface{})
	second := upcoming[1].(map[string]interface{})
	assert.Equal(t, float64(0), first["days_until"])
	assert.Equal(t, float64(3), second["days_until"])
}

func TestBearerPrefixedToken(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	resp := doRequest(t, app, "GET", "/api/user/profile", "Bearer "+token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/user/profile", "Bearer not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestReminderConfigValidation(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")

	cases := []map[string]interface{}{
		{"email": "not-an-email", "smtp_host": "smtp.example.com"},
		{"email": "a@x.com", "smtp_host": ""},
		{"email": "a@x.com", "smtp_host": "smtp.example.com", "smtp_port": 70000},
		{"email": "a@x.com", "smtp_host": "smtp.example.com", "reminder_days": 30},
	}
	for _, body := range cases {
		resp := doRequest(t, app, "PUT", "/api/reminders/config", token, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestProfile(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerAndLogin(t, app, "alice", "a@x.com", "secret1")
	addInterview(t, app, token, map[string]interface{}{"status": models.StatusSelected})

	resp := doRequest(t, app, "GET", "/api/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "a@x.com", data["email"])
	assert.Equal(t, float64(1), data["total_interviews"])
	assert.Equal(t, float64(1), data["selected"])
}
