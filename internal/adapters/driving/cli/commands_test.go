package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft"
	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook/outlooktest"
	"github.com/custodia-labs/outlook-services/internal/core/domain"
)

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestWhoami(t *testing.T) {
	env := setupTestServices(t)

	out, _, err := runCommand(t, "whoami")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID\tNAME\tALIAS", lines[0])
	assert.Contains(t, lines[1], "\tTest User\ttest")
	assert.Equal(t, 1, env.connects)
	assert.Equal(t, 1, env.closed)

	call, ok := env.bridge.LastCall()
	require.True(t, ok)
	assert.Equal(t, "/Me", call.Path)
	assert.Equal(t, "test-token", call.Token)
}

func TestWhoami_OtherMailbox(t *testing.T) {
	env := setupTestServices(t)
	env.config.settings.UserID = "ada@example.com"
	env.bridge.Put("/Users/ada@example.com", map[string]any{"Id": "ada", "DisplayName": "Ada"})

	out, _, err := runCommand(t, "whoami", "--jsonpath", "$.DisplayName")

	require.NoError(t, err)
	assert.Equal(t, "Ada\n", out)
}

func TestOutputFormats(t *testing.T) {
	setupTestServices(t)

	t.Run("json", func(t *testing.T) {
		out, _, err := runCommand(t, "whoami", "-o", "json")
		require.NoError(t, err)
		user := decodeJSON[map[string]any](t, out)
		assert.Equal(t, "Test User", user["DisplayName"])
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := runCommand(t, "whoami", "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "DisplayName: Test User")
		assert.Contains(t, out, "Alias: test")
	})

	t.Run("jsonpath over a list", func(t *testing.T) {
		out, _, err := runCommand(t, "folders", "list", "--jsonpath", "$[*].Id")
		require.NoError(t, err)
		assert.Equal(t, "Inbox\nDrafts\nSentItems\nDeletedItems\n", out)
	})

	t.Run("invalid jsonpath", func(t *testing.T) {
		_, _, err := runCommand(t, "whoami", "--jsonpath", "$[")
		assert.Error(t, err)
	})
}

func TestSession_NotConfigured(t *testing.T) {
	env := setupTestServices(t)
	env.config.settings.AccessToken = ""
	env.config.settings.ClientID = ""

	_, _, err := runCommand(t, "whoami")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.Contains(t, err.Error(), "outlook config set")
	assert.Zero(t, env.connects)
}

func TestFoldersList(t *testing.T) {
	setupTestServices(t)

	out, _, err := runCommand(t, "folders", "list")

	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"ID\tNAME\tPARENT\tCHILDREN",
		"Inbox\tInbox\tRootFolder\t0",
		"Drafts\tDrafts\tRootFolder\t0",
		"SentItems\tSent Items\tRootFolder\t0",
		"DeletedItems\tDeleted Items\tRootFolder\t0",
	}, "\n")+"\n", out)
}

func TestFoldersAddAndNest(t *testing.T) {
	env := setupTestServices(t)

	out, _, err := runCommand(t, "folders", "add", "--name", "Receipts", "-o", "json")
	require.NoError(t, err)
	parent := decodeJSON[outlook.FolderProperties](t, out)
	require.NotEmpty(t, parent.ID)
	assert.Equal(t, "Receipts", parent.DisplayName)

	out, _, err = runCommand(t, "folders", "add", "--name", "2024", "--parent", parent.ID, "-o", "json")
	require.NoError(t, err)
	child := decodeJSON[outlook.FolderProperties](t, out)

	doc, ok := env.bridge.Get("/Me/Folders/" + parent.ID + "/ChildFolders/" + child.ID)
	require.True(t, ok)
	assert.Equal(t, "2024", doc["DisplayName"])

	out, _, err = runCommand(t, "folders", "list", "--parent", parent.ID, "--jsonpath", "$[*].DisplayName")
	require.NoError(t, err)
	assert.Equal(t, "2024\n", out)
}

func TestFoldersAdd_FromFile(t *testing.T) {
	env := setupTestServices(t)
	file := filepath.Join(t.TempDir(), "folder.yaml")
	require.NoError(t, os.WriteFile(file, []byte("DisplayName: Projects\n"), 0o600))

	out, _, err := runCommand(t, "folders", "add", "-f", file, "-o", "json")

	require.NoError(t, err)
	folder := decodeJSON[outlook.FolderProperties](t, out)
	doc, ok := env.bridge.Get("/Me/Folders/" + folder.ID)
	require.True(t, ok)
	assert.Equal(t, "Projects", doc["DisplayName"])
}

func TestFoldersAdd_RequiresName(t *testing.T) {
	env := setupTestServices(t)

	_, _, err := runCommand(t, "folders", "add")

	require.Error(t, err)
	assert.Zero(t, env.connects)
}

func TestFoldersRenameMoveDelete(t *testing.T) {
	env := setupTestServices(t)
	env.bridge.Put("/Me/Folders/f1", map[string]any{"Id": "f1", "DisplayName": "Old", "ParentFolderId": "Inbox"})

	_, _, err := runCommand(t, "folders", "rename", "f1", "New")
	require.NoError(t, err)
	doc, _ := env.bridge.Get("/Me/Folders/f1")
	assert.Equal(t, "New", doc["DisplayName"])

	out, _, err := runCommand(t, "folders", "move", "f1", "Drafts", "-o", "json")
	require.NoError(t, err)
	moved := decodeJSON[outlook.FolderProperties](t, out)
	assert.Equal(t, "Drafts", moved.ParentFolderID)
	_, ok := env.bridge.Get("/Me/Folders/f1")
	assert.False(t, ok)
	_, ok = env.bridge.Get("/Me/Folders/Drafts/ChildFolders/" + moved.ID)
	require.True(t, ok)

	out, _, err = runCommand(t, "folders", "delete", moved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deleted folder "+moved.ID+"\n", out)
	_, ok = env.bridge.Get("/Me/Folders/Drafts/ChildFolders/" + moved.ID)
	assert.False(t, ok)
}

func TestMessagesList_Paging(t *testing.T) {
	env := setupTestServices(t)
	for _, id := range []string{"m1", "m2", "m3"} {
		env.bridge.Put("/Me/Folders/Inbox/Messages/"+id, map[string]any{"Id": id, "Subject": "subject " + id})
	}

	out, stderr, err := runCommand(t, "messages", "list", "--folder", "Inbox", "--top", "2", "--jsonpath", "$[*].Id")
	require.NoError(t, err)
	assert.Equal(t, "m1\nm2\n", out)

	m := regexp.MustCompile(`--cursor (\S+)`).FindStringSubmatch(stderr)
	require.Len(t, m, 2, stderr)

	out, stderr, err = runCommand(t, "messages", "list", "--folder", "Inbox", "--cursor", m[1], "--jsonpath", "$[*].Id")
	require.NoError(t, err)
	assert.Equal(t, "m3\n", out)
	assert.Empty(t, stderr)

	call, _ := env.bridge.LastCall()
	assert.Equal(t, "/Me/Folders/Inbox/Messages", call.Path)
	assert.Equal(t, "getMessages", call.Operation)
}

func TestMessagesList_All(t *testing.T) {
	env := setupTestServices(t)
	for _, id := range []string{"m1", "m2", "m3"} {
		env.bridge.Put("/Me/Messages/"+id, map[string]any{"Id": id})
	}

	out, stderr, err := runCommand(t, "messages", "list", "--all", "--top", "2", "-o", "json")

	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Len(t, decodeJSON[[]map[string]any](t, out), 3)
}

func TestMessagesList_Filter(t *testing.T) {
	env := setupTestServices(t)
	env.bridge.Put("/Me/Messages/m1", map[string]any{"Id": "m1", "IsRead": true})
	env.bridge.Put("/Me/Messages/m2", map[string]any{"Id": "m2", "IsRead": false})

	out, _, err := runCommand(t, "messages", "list", "--filter", "IsRead eq false", "--jsonpath", "$[*].Id")

	require.NoError(t, err)
	assert.Equal(t, "m2\n", out)
}

func TestMessagesAdd_FromYAML(t *testing.T) {
	env := setupTestServices(t)
	file := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
Subject: Quarterly numbers
Body:
  ContentType: Text
  Content: See attached.
ToRecipients:
  - EmailAddress:
      Address: finance@example.com
`), 0o600))

	out, _, err := runCommand(t, "messages", "add", "-f", file, "--folder", "Drafts", "-o", "json")

	require.NoError(t, err)
	msg := decodeJSON[map[string]any](t, out)
	doc, ok := env.bridge.Get("/Me/Folders/Drafts/Messages/" + msg["Id"].(string))
	require.True(t, ok)
	assert.Equal(t, "Quarterly numbers", doc["Subject"])
}

func TestMessagesAdd_InvalidRecipient(t *testing.T) {
	env := setupTestServices(t)
	file := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(file, []byte("ToRecipients:\n  - EmailAddress:\n      Address: not-an-address\n"), 0o600))
	before := env.bridge.CallCount()

	_, _, err := runCommand(t, "messages", "add", "-f", file)

	var local *outlook.LocalValidationError
	require.ErrorAs(t, err, &local)
	assert.Equal(t, before, env.bridge.CallCount())
}

func TestMessagesActions(t *testing.T) {
	env := setupTestServices(t)
	env.bridge.Put("/Me/Messages/m1", map[string]any{
		"Id":      "m1",
		"Subject": "Lunch",
		"IsDraft": true,
		"From":    map[string]any{"EmailAddress": map[string]any{"Address": "bob@example.com"}},
	})

	t.Run("forward", func(t *testing.T) {
		out, _, err := runCommand(t, "messages", "forward", "m1", "--comment", "FYI", "--to", "Ada <ada@example.com>, cy@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Forwarded message m1\n", out)

		call, _ := env.bridge.LastCall()
		assert.Equal(t, "forward", call.Operation)
		require.Len(t, call.Payload, 2)
		assert.Equal(t, "FYI", call.Payload[0])
		assert.JSONEq(t, `[
			{"EmailAddress":{"Name":"Ada","Address":"ada@example.com"}},
			{"EmailAddress":{"Address":"cy@example.com"}}
		]`, call.Payload[1])
	})

	t.Run("reply all", func(t *testing.T) {
		_, _, err := runCommand(t, "messages", "reply", "m1", "--all", "--comment", "Yes")
		require.NoError(t, err)
		call, _ := env.bridge.LastCall()
		assert.Equal(t, "replyAll", call.Operation)
		assert.Equal(t, []string{"Yes"}, call.Payload)
	})

	t.Run("forward draft", func(t *testing.T) {
		out, _, err := runCommand(t, "messages", "draft", "m1", "--as", "forward", "--jsonpath", "$.Subject")
		require.NoError(t, err)
		assert.Equal(t, "FW: Lunch\n", out)
	})

	t.Run("unknown draft kind", func(t *testing.T) {
		_, _, err := runCommand(t, "messages", "draft", "m1", "--as", "bounce")
		assert.Error(t, err)
	})

	t.Run("send", func(t *testing.T) {
		_, _, err := runCommand(t, "messages", "send", "m1")
		require.NoError(t, err)
		doc, _ := env.bridge.Get("/Me/Messages/m1")
		assert.Equal(t, false, doc["IsDraft"])
	})

	t.Run("copy", func(t *testing.T) {
		out, _, err := runCommand(t, "messages", "copy", "m1", "Inbox", "-o", "json")
		require.NoError(t, err)
		msg := decodeJSON[map[string]any](t, out)
		assert.Equal(t, "Inbox", msg["ParentFolderId"])
		assert.NotEqual(t, "m1", msg["Id"])
	})
}

func TestMessagesForward_RequiresRecipient(t *testing.T) {
	setupTestServices(t)

	_, _, err := runCommand(t, "messages", "forward", "m1", "--to", " , ")

	assert.Error(t, err)
}

func TestMessagesGet_NotFound(t *testing.T) {
	setupTestServices(t)

	_, _, err := runCommand(t, "messages", "get", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, microsoft.ErrNotFound)
	assert.Equal(t, "ErrorItemNotFound", outlook.RemoteErrorCode(err))
}

func TestEvents(t *testing.T) {
	env := setupTestServices(t)
	file := filepath.Join(t.TempDir(), "event.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
Subject: Planning
Start: 2024-05-01T09:00:00Z
End: 2024-05-01T10:00:00Z
Location:
  DisplayName: Room 4
`), 0o600))

	out, _, err := runCommand(t, "events", "add", "-f", file, "-o", "json")
	require.NoError(t, err)
	id := decodeJSON[map[string]any](t, out)["Id"].(string)

	out, _, err = runCommand(t, "events", "accept", id, "--comment", "See you")
	require.NoError(t, err)
	assert.Equal(t, "Responded accept to event "+id+"\n", out)
	call, _ := env.bridge.LastCall()
	assert.Equal(t, "accept", call.Operation)
	assert.Equal(t, []string{"See you"}, call.Payload)

	out, _, err = runCommand(t, "events", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "\tPlanning\tRoom 4\tAccepted")
}

func TestEvents_InCalendar(t *testing.T) {
	env := setupTestServices(t)
	env.bridge.Put("/Me/Calendars/c1", map[string]any{"Id": "c1", "Name": "Work"})
	env.bridge.Put("/Me/Calendars/c1/Events/e1", map[string]any{"Id": "e1", "Subject": "Standup"})

	out, _, err := runCommand(t, "events", "list", "--calendar", "c1", "--jsonpath", "$[*].Subject")

	require.NoError(t, err)
	assert.Equal(t, "Standup\n", out)
}

func TestContacts(t *testing.T) {
	env := setupTestServices(t)

	out, _, err := runCommand(t, "contacts", "add", "--name", "Ada Lovelace", "--email", "ada@example.com", "-o", "json")
	require.NoError(t, err)
	id := decodeJSON[map[string]any](t, out)["Id"].(string)

	doc, ok := env.bridge.Get("/Me/Contacts/" + id)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", doc["DisplayName"])

	out, _, err = runCommand(t, "contacts", "list", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "DisplayName: Ada Lovelace")
	assert.Contains(t, out, "Address: ada@example.com")

	_, _, err = runCommand(t, "contacts", "delete", id)
	require.NoError(t, err)
	_, ok = env.bridge.Get("/Me/Contacts/" + id)
	assert.False(t, ok)
}

func TestContactFolders(t *testing.T) {
	env := setupTestServices(t)
	env.bridge.Put("/Me/ContactFolders/cf1", map[string]any{"Id": "cf1", "DisplayName": "Family"})
	env.bridge.Put("/Me/ContactFolders/cf1/ChildFolders/cf2", map[string]any{"Id": "cf2", "DisplayName": "Cousins", "ParentFolderId": "cf1"})
	env.bridge.Put("/Me/ContactFolders/cf1/Contacts/p1", map[string]any{"Id": "p1", "DisplayName": "Grace"})

	out, _, err := runCommand(t, "contact-folders", "--parent", "cf1")
	require.NoError(t, err)
	assert.Equal(t, "ID\tNAME\tPARENT\ncf2\tCousins\tcf1\n", out)

	out, _, err = runCommand(t, "contacts", "list", "--folder", "cf1", "--jsonpath", "$[*].DisplayName")
	require.NoError(t, err)
	assert.Equal(t, "Grace\n", out)
}

func TestCalendars(t *testing.T) {
	env := setupTestServices(t)
	env.bridge.Put("/Me/CalendarGroups/g1", map[string]any{"Id": "g1", "Name": "Other", "ClassId": "class"})
	env.bridge.Put("/Me/CalendarGroups/g1/Calendars/c1", map[string]any{"Id": "c1", "Name": "Holidays", "Color": "LightBlue"})

	out, _, err := runCommand(t, "calendar-groups")
	require.NoError(t, err)
	assert.Equal(t, "ID\tNAME\tCLASS\ng1\tOther\tclass\n", out)

	_, _, err = runCommand(t, "calendar-groups", "list")
	require.Error(t, err)

	out, _, err = runCommand(t, "calendars", "list", "--group", "g1")
	require.NoError(t, err)
	assert.Equal(t, "ID\tNAME\tCOLOR\nc1\tHolidays\tLightBlue\n", out)

	out, _, err = runCommand(t, "calendars", "add", "Travel", "--jsonpath", "$.Name")
	require.NoError(t, err)
	assert.Equal(t, "Travel\n", out)
	call, _ := env.bridge.LastCall()
	assert.Equal(t, "/Me/Calendars", call.Path)
}

func TestAttachments(t *testing.T) {
	env := setupTestServices(t)
	env.bridge.Put("/Me/Messages/m1", map[string]any{"Id": "m1", "HasAttachments": true})
	env.bridge.Put("/Me/Messages/m1/Attachments/a1", map[string]any{
		"@odata.type":  outlook.ODataFileAttachment,
		"Id":           "a1",
		"Name":         "hello.txt",
		"ContentType":  "text/plain",
		"Size":         5,
		"ContentBytes": "aGVsbG8=",
	})
	env.bridge.Put("/Me/Messages/m1/Attachments/a2", map[string]any{
		"@odata.type": outlook.ODataItemAttachment,
		"Id":          "a2",
		"Name":        "Fwd",
		"Item":        map[string]any{"Id": "i1", "Subject": "Original", "ClassName": "IPM.Note"},
	})

	t.Run("list", func(t *testing.T) {
		out, _, err := runCommand(t, "attachments", "list", "m1")
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"ID\tKIND\tNAME\tTYPE\tSIZE",
			"a1\tfile\thello.txt\ttext/plain\t5",
			"a2\titem\tFwd\t\t0",
		}, "\n")+"\n", out)
	})

	t.Run("save file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.txt")
		out, _, err := runCommand(t, "attachments", "save", "m1", "a1", "--out", target)
		require.NoError(t, err)
		assert.Contains(t, out, "(5 bytes)")
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("save item", func(t *testing.T) {
		out, _, err := runCommand(t, "attachments", "save", "m1", "a2")
		require.NoError(t, err)
		assert.Equal(t, "ID\tCLASS\tSUBJECT\ni1\tIPM.Note\tOriginal\n", out)
	})

	t.Run("add", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(src, []byte("notes"), 0o600))

		out, _, err := runCommand(t, "attachments", "add", "m1", src, "-o", "json")
		require.NoError(t, err)
		added := decodeJSON[map[string]any](t, out)
		assert.Equal(t, "notes.txt", added["Name"])
		assert.Equal(t, outlook.ODataFileAttachment, added["@odata.type"])
	})

	t.Run("delete", func(t *testing.T) {
		_, _, err := runCommand(t, "attachments", "delete", "m1", "a1")
		require.NoError(t, err)
		_, ok := env.bridge.Get("/Me/Messages/m1/Attachments/a1")
		assert.False(t, ok)
	})
}

func TestSummary(t *testing.T) {
	env := setupTestServices(t)
	oldNow := now
	now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	defer func() { now = oldNow }()

	env.bridge.Put("/Me/Folders/Inbox/Messages/m1", map[string]any{"Id": "m1", "Subject": "Unread", "IsRead": false})
	env.bridge.Put("/Me/Folders/Inbox/Messages/m2", map[string]any{"Id": "m2", "Subject": "Read", "IsRead": true})
	env.bridge.Put("/Me/Events/e0", map[string]any{"Id": "e0", "Subject": "Retro", "Start": "2026-10-18T09:00:00Z"})
	env.bridge.Put("/Me/Events/e1", map[string]any{"Id": "e1", "Subject": "Review", "Start": "2026-10-20T09:00:00Z"})
	env.bridge.Put("/Me/Contacts/p1", map[string]any{"Id": "p1", "DisplayName": "Ada"})
	env.bridge.Put("/Me/Contacts/p2", map[string]any{"Id": "p2", "DisplayName": "Grace"})

	out, _, err := runCommand(t, "summary", "-o", "json")

	require.NoError(t, err)
	var sum struct {
		User     map[string]any   `json:"User"`
		Unread   []map[string]any `json:"Unread"`
		Events   []map[string]any `json:"Events"`
		Contacts int              `json:"Contacts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "Test User", sum.User["DisplayName"])
	require.Len(t, sum.Unread, 1)
	assert.Equal(t, "Unread", sum.Unread[0]["Subject"])
	require.Len(t, sum.Events, 1)
	assert.Equal(t, "Review", sum.Events[0]["Subject"])
	assert.Equal(t, 2, sum.Contacts)
}

func TestSummary_CountsEveryContact(t *testing.T) {
	env := setupTestServices(t)
	total := outlook.MaxPageSize + 1
	for i := range total {
		id := fmt.Sprintf("p%04d", i)
		env.bridge.Put("/Me/Contacts/"+id, map[string]any{"Id": id, "DisplayName": id})
	}

	out, _, err := runCommand(t, "summary", "--jsonpath", "$.Contacts")

	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(total)+"\n", out)
}

func TestSummary_FailurePropagates(t *testing.T) {
	env := setupTestServices(t)
	env.bridge.FailNext(errors.New("connection reset"))

	_, _, err := runCommand(t, "summary")

	var transport *outlook.TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestAccount(t *testing.T) {
	env := setupTestServices(t)
	tokens := &mockInvalidatingTokens{Tokens: outlooktest.NewTokens("test-token")}
	env.tokens = tokens

	out, _, err := runCommand(t, "login")
	require.NoError(t, err)
	assert.Equal(t, "Signed in as Test User (test)\n", out)

	out, _, err = runCommand(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Signed out.\n", out)
	assert.True(t, tokens.invalidated)
}

func TestLogout_StaticToken(t *testing.T) {
	setupTestServices(t)

	out, _, err := runCommand(t, "logout")

	require.NoError(t, err)
	assert.Equal(t, "No cached token to forget.\n", out)
}

func TestConfig(t *testing.T) {
	env := setupTestServices(t)

	out, _, err := runCommand(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "path\t/home/test/.outlook/config.toml")
	assert.Contains(t, out, "service_root\t"+domain.DefaultServiceRoot)
	assert.Contains(t, out, "access_token\t(from environment)")
	assert.NotContains(t, out, "test-token")

	out, _, err = runCommand(t, "config", "set", "--client-id", "abc", "--scopes", "offline_access, Mail.Read")
	require.NoError(t, err)
	assert.Equal(t, "Saved /home/test/.outlook/config.toml\n", out)
	require.NotNil(t, env.config.saved)
	assert.Equal(t, "abc", env.config.saved.ClientID)
	assert.Equal(t, []string{"offline_access", "Mail.Read"}, env.config.saved.Scopes)

	_, _, err = runCommand(t, "config", "set")
	assert.Error(t, err)
}
