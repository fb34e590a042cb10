// internal/web/handler_test.go
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ownthedoge/dogeday/internal/mail"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

var testRouting = mail.Routing{
	To:    "events@ownthedoge.example",
	Cc:    "sponsors@ownthedoge.example",
	VIPTo: "vip@ownthedoge.example",
}

func newTestRouter(d *mail.Dispatcher) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/signup", NewSignupHandler(d, zap.NewNop()).ServeHTTP)
	return r
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v (%s)", err, rec.Body.String())
	}
	return resp.Error
}

const validAttendeeJSON = `{
	"formType": "attendee",
	"name": "Kabosu",
	"social": "@kabosumama",
	"profiles": ["Dog Owner/Pet Lover"],
	"heard": "x"
}`

func TestSignup_AttendeeHappyPath(t *testing.T) {
	fake := &fakeSender{}
	h := newTestRouter(mail.NewDispatcherWithSender(fake, testRouting, nil))

	rec := postJSON(t, h, validAttendeeJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"ok":true}` {
		t.Errorf("body = %s, want {\"ok\":true}", got)
	}
	if len(fake.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(fake.sent))
	}
	if got := fake.sent[0].Subject; got != "Doge Day 2025 Signup" {
		t.Errorf("subject = %q", got)
	}
}

func TestSignup_VIPHappyPathRoutesToVIPAddress(t *testing.T) {
	fake := &fakeSender{}
	h := newTestRouter(mail.NewDispatcherWithSender(fake, testRouting, nil))

	rec := postJSON(t, h, `{"formType":"vip","name":"Moon Dog","quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	msg := fake.sent[0]
	if msg.Subject != "Doge Day 2025 VIP Request" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if len(msg.To) != 1 || msg.To[0] != "vip@ownthedoge.example" {
		t.Errorf("To = %v, want vip address", msg.To)
	}
}

func TestSignup_SponsorBodyAndCc(t *testing.T) {
	fake := &fakeSender{}
	h := newTestRouter(mail.NewDispatcherWithSender(fake, testRouting, nil))

	rec := postJSON(t, h, `{
		"formType": "sponsor",
		"brand": "Acme Treats",
		"package": "gold",
		"contactName": "Jane Shiba",
		"email": "jane@acmetreats.example"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	msg := fake.sent[0]
	if msg.Subject != "Doge Day 2025 Sponsor Interest" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if len(msg.Cc) != 1 || msg.Cc[0] != "sponsors@ownthedoge.example" {
		t.Errorf("Cc = %v, want sponsor cc list", msg.Cc)
	}
	for _, line := range []string{"Sponsor Brand: Acme Treats", "Sponsor Package: gold"} {
		if !strings.Contains(msg.TextBody, line+"\n") {
			t.Errorf("body missing %q:\n%s", line, msg.TextBody)
		}
	}
}

func TestSignup_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantErr    string
	}{
		{
			"unknown formType",
			`{"formType":"exhibitor"}`,
			http.StatusBadRequest,
			`formType must be one of "attendee", "vip", "sponsor"`,
		},
		{
			"malformed JSON",
			`{"formType":`,
			http.StatusBadRequest,
			"request body must be a JSON object",
		},
		{
			"attendee missing fields",
			`{"formType":"attendee"}`,
			http.StatusBadRequest,
			"attendee submission missing or invalid required fields: name, social, profiles, heard",
		},
		{
			"other profile without elaboration",
			`{"formType":"attendee","name":"Kabosu","social":"@k","profiles":["Other"],"heard":"x"}`,
			http.StatusBadRequest,
			"attendee submission missing or invalid required fields: profileOther",
		},
		{
			"vip quantity out of range",
			`{"formType":"vip","name":"Moon Dog","quantity":25}`,
			http.StatusBadRequest,
			"vip submission missing or invalid required fields: quantity",
		},
		{
			"sponsor bad package and email",
			`{"formType":"sponsor","brand":"Acme Treats","package":"diamond","contactName":"Jane","email":"nope"}`,
			http.StatusBadRequest,
			"sponsor submission missing or invalid required fields: package, email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSender{}
			h := newTestRouter(mail.NewDispatcherWithSender(fake, testRouting, nil))

			rec := postJSON(t, h, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeError(t, rec); got != tt.wantErr {
				t.Errorf("error = %q, want %q", got, tt.wantErr)
			}
			if len(fake.sent) != 0 {
				t.Errorf("rejected submission dispatched %d messages", len(fake.sent))
			}
		})
	}
}

func TestSignup_UnsupportedMediaType(t *testing.T) {
	h := newTestRouter(mail.NewDispatcherWithSender(&fakeSender{}, testRouting, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader("name=Kabosu"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestSignup_MultipartAttendeeWithScreenshot(t *testing.T) {
	fake := &fakeSender{}
	h := newTestRouter(mail.NewDispatcherWithSender(fake, testRouting, nil))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("formType", "attendee")
	w.WriteField("payload", `{"name":"Kabosu","social":"@kabosumama","profiles":["Dog Owner/Pet Lover"],"heard":"friend"}`)
	fw, _ := w.CreateFormFile("screenshot", "proof.png")
	fw.Write([]byte{0x89, 'P', 'N', 'G'})
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/signup", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if len(fake.sent) != 1 || len(fake.sent[0].Attachments) != 1 {
		t.Fatalf("sent = %+v, want one message with one attachment", fake.sent)
	}
	if got := fake.sent[0].Attachments[0].Filename; got != "proof.png" {
		t.Errorf("attachment filename = %q", got)
	}
}

func TestSignup_MultipartVIPRejected(t *testing.T) {
	h := newTestRouter(mail.NewDispatcherWithSender(&fakeSender{}, testRouting, nil))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("formType", "vip")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/signup", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got != "multipart submissions are accepted for the attendee form only" {
		t.Errorf("error = %q", got)
	}
}

func TestSignup_TransportFailureStillAccepted(t *testing.T) {
	fake := &fakeSender{err: errors.New("smtp: connection refused")}
	h := newTestRouter(mail.NewDispatcherWithSender(fake, testRouting, nil))

	rec := postJSON(t, h, validAttendeeJSON)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 despite transport failure", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"ok":true}` {
		t.Errorf("body = %s, want {\"ok\":true}", got)
	}
}

func TestSignup_UnconfiguredTransportStillAccepted(t *testing.T) {
	// Blank SMTP config: dispatch is skipped, submission still succeeds.
	h := newTestRouter(mail.NewDispatcher(mail.Config{}, testRouting, nil))

	rec := postJSON(t, h, validAttendeeJSON)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with unconfigured transport", rec.Code)
	}
}

func TestSignup_RepeatSubmissionsEachDispatched(t *testing.T) {
	fake := &fakeSender{}
	h := newTestRouter(mail.NewDispatcherWithSender(fake, testRouting, nil))

	for i := 0; i < 2; i++ {
		if rec := postJSON(t, h, validAttendeeJSON); rec.Code != http.StatusOK {
			t.Fatalf("submission %d: status = %d", i, rec.Code)
		}
	}
	if len(fake.sent) != 2 {
		t.Errorf("sent %d messages, want 2 (no dedupe)", len(fake.sent))
	}
}
