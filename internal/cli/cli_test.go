package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"planner-cli/internal/model"
	"planner-cli/internal/session"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func signedInDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store := session.Store{Dir: dir}
	err := store.Save(context.Background(), model.Session{
		AccessToken: "tok", UserID: "u-1", Email: "me@example.com",
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return dir
}

func TestFoldersListPrintsRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/folder/teamspace/ws-1/folders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("missing bearer token, got %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"folder_id": "f-1", "folder_name": "Inbox"},
			{"folder_id": "f-2", "folder_name": "Archive"},
		})
	}))
	defer srv.Close()

	out, err := runCmd(t, "--base-url", srv.URL, "--config-dir", signedInDir(t),
		"--workspace", "ws-1", "folders", "list")
	if err != nil {
		t.Fatalf("folders list: %v", err)
	}
	if !strings.Contains(out, "f-1\tInbox") || !strings.Contains(out, "f-2\tArchive") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFoldersListEmptyWorkspaceIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out, err := runCmd(t, "--base-url", srv.URL, "--config-dir", signedInDir(t),
		"--workspace", "ws-1", "folders", "list")
	if err != nil {
		t.Fatalf("expected success on empty workspace, got %v", err)
	}
	if !strings.Contains(out, "No folders found") {
		t.Fatalf("expected empty-state hint, got %q", out)
	}
}

func TestFoldersListRequiresWorkspace(t *testing.T) {
	_, err := runCmd(t, "--config-dir", signedInDir(t), "folders", "list")
	if err == nil || !strings.Contains(err.Error(), "no workspace selected") {
		t.Fatalf("expected workspace error, got %v", err)
	}
}

func TestFoldersRenameReportsServerName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/folder/f-1/edit-folder" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		// Server normalizes the submitted name.
		json.NewEncoder(w).Encode(map[string]any{"folder_id": "f-1", "folder_name": "Q3 Launch"})
	}))
	defer srv.Close()

	out, err := runCmd(t, "--base-url", srv.URL, "--config-dir", signedInDir(t),
		"folders", "rename", "f-1", "q3 launch")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if !strings.Contains(out, `"Q3 Launch"`) {
		t.Fatalf("expected the server's version of the name, got %q", out)
	}
}

func TestFoldersDeleteNeedsConfirmation(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetArgs([]string{"--base-url", srv.URL, "--config-dir", signedInDir(t), "folders", "delete", "f-1"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if calls != 0 {
		t.Fatalf("declined delete must not hit the server")
	}
	if !strings.Contains(out.String(), "Cancelled") {
		t.Fatalf("expected cancellation notice, got %q", out.String())
	}
}

func TestFoldersDeleteYesSkipsPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/folder/f-1/delete-folder" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	out, err := runCmd(t, "--base-url", srv.URL, "--config-dir", signedInDir(t),
		"folders", "delete", "f-1", "--yes")
	if err != nil {
		t.Fatalf("delete --yes: %v", err)
	}
	if !strings.Contains(out, "Folder deleted") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSubtaskStatusRejectsUnknownValue(t *testing.T) {
	_, err := runCmd(t, "--config-dir", signedInDir(t), "subtask", "status", "st-1", "done")
	if err == nil || !strings.Contains(err.Error(), "invalid status") {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestSubtaskStatusSendsQueryAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/subtask/update-subtask-status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("sub_task_id"); got != "st-1" {
			t.Errorf("sub_task_id = %q", got)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "completed" {
			t.Errorf("status = %q", body["status"])
		}
	}))
	defer srv.Close()

	out, err := runCmd(t, "--base-url", srv.URL, "--config-dir", signedInDir(t),
		"subtask", "status", "st-1", "completed")
	if err != nil {
		t.Fatalf("subtask status: %v", err)
	}
	if !strings.Contains(out, "Completed") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestEventRemindSendsAccumulatedTimesAtomically(t *testing.T) {
	calls := 0
	var got model.EventReminder
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/event/ev-1/create-event-reminder" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	_, err := runCmd(t, "--base-url", srv.URL, "--config-dir", signedInDir(t),
		"event", "remind", "ev-1",
		"--message", "Standup", "--medium", "email",
		"--at", "2026-09-01T09:00", "--at", "2026-09-01T08:45")
	if err != nil {
		t.Fatalf("event remind: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one request for the whole set, got %d", calls)
	}
	if got.Message != "Standup" || got.Medium != model.MediumEmail {
		t.Fatalf("unexpected payload: %#v", got)
	}
	if len(got.ReminderTimes) != 2 || !got.ReminderTimes[0].Triggered {
		t.Fatalf("unexpected reminder times: %#v", got.ReminderTimes)
	}
}

func TestEventRemindRejectsUnknownMedium(t *testing.T) {
	_, err := runCmd(t, "--config-dir", signedInDir(t),
		"event", "remind", "ev-1", "--message", "x", "--medium", "pigeon", "--at", "t1")
	if err == nil || !strings.Contains(err.Error(), "invalid medium") {
		t.Fatalf("expected invalid medium error, got %v", err)
	}
}

func TestCommandsRequireSession(t *testing.T) {
	_, err := runCmd(t, "--config-dir", t.TempDir(), "--workspace", "ws-1", "folders", "list")
	if err == nil || !strings.Contains(err.Error(), "not signed in") {
		t.Fatalf("expected sign-in hint, got %v", err)
	}
}

func TestAuthVerifyStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/email":
			json.NewEncoder(w).Encode(map[string]any{"user_id": "u-9"})
		case "/user/resend-otp":
			w.WriteHeader(http.StatusOK)
		case "/user/verify-otp":
			json.NewEncoder(w).Encode(map[string]any{"access_token": "fresh-token"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	if _, err := runCmd(t, "--base-url", srv.URL, "--config-dir", dir,
		"auth", "login", "--email", "me@example.com"); err != nil {
		t.Fatalf("login: %v", err)
	}
	out, err := runCmd(t, "--base-url", srv.URL, "--config-dir", dir,
		"auth", "verify", "--code", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "Signed in as me@example.com") {
		t.Fatalf("unexpected output: %q", out)
	}

	sess, err := session.Store{Dir: dir}.Load(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.AccessToken != "fresh-token" || sess.UserID != "u-9" {
		t.Fatalf("session not stored: %#v", sess)
	}
}

func TestAuthLogoutClearsSession(t *testing.T) {
	dir := signedInDir(t)
	if _, err := runCmd(t, "--config-dir", dir, "auth", "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	sess, err := session.Store{Dir: dir}.Load(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("expected session cleared, got %#v", sess)
	}
}

func TestConfigSetRoundTrips(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCmd(t, "--config-dir", dir, "config", "set", "default_workspace", "ws-7"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := runCmd(t, "--config-dir", dir, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `default_workspace = "ws-7"`) {
		t.Fatalf("unexpected config: %q", out)
	}
}

func TestDocsListsTopics(t *testing.T) {
	out, err := runCmd(t, "--config-dir", t.TempDir(), "docs")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	for _, topic := range []string{"getting-started", "folders", "reminders"} {
		if !strings.Contains(out, topic) {
			t.Fatalf("missing topic %s in %q", topic, out)
		}
	}
}
