package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDiscussions_PostThenPoll(t *testing.T) {
	env := setupTestEnv(t)

	host := env.signupAndLogin(t, "host@example.com", "Harriet", "Host")
	guest := env.signupAndLogin(t, "guest@example.com", "Gary", "Guest")
	event := env.createEvent(t, host.user.ID)
	require.NoError(t, env.db.Create(&models.EventAttendee{EventID: event.ID, UserID: guest.user.ID}).Error)

	// The host seeds the thread so the guest has a cursor to poll from.
	w := host.do(http.MethodPost, fmt.Sprintf("/api/events/%d/discussions/messages", event.ID), map[string]any{
		"content": "Welcome everyone!",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	seed := decodeJSON(t, w)
	require.Equal(t, true, seed["success"])
	cursor := seed["message_id"].(float64)

	w = guest.do(http.MethodPost, fmt.Sprintf("/api/events/%d/discussions/messages", event.ID), map[string]any{
		"content": "Thanks for the invite",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Polling after the seed returns only the guest's message, marked is_own.
	w = guest.do(http.MethodGet,
		fmt.Sprintf("/api/events/%d/discussions/feed?after_message_id=%d", event.ID, int(cursor)), nil)
	require.Equal(t, http.StatusOK, w.Code)

	feed := decodeJSON(t, w)
	messages := feed["messages"].([]any)
	require.Len(t, messages, 1)

	msg := messages[0].(map[string]any)
	require.Equal(t, "Thanks for the invite", msg["content"])
	require.Equal(t, "Gary Guest", msg["user_name"])
	require.Equal(t, true, msg["is_own"])

	// The same poll from the host flips the flag.
	w = host.do(http.MethodGet,
		fmt.Sprintf("/api/events/%d/discussions/feed?after_message_id=%d", event.ID, int(cursor)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	feed = decodeJSON(t, w)
	msg = feed["messages"].([]any)[0].(map[string]any)
	require.Equal(t, false, msg["is_own"])
}

func TestDiscussions_FeedWithoutCursorIsEmpty(t *testing.T) {
	env := setupTestEnv(t)

	host := env.signupAndLogin(t, "host@example.com", "Harriet", "Host")
	event := env.createEvent(t, host.user.ID)

	w := host.do(http.MethodPost, fmt.Sprintf("/api/events/%d/discussions/messages", event.ID), map[string]any{
		"content": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = host.do(http.MethodGet, fmt.Sprintf("/api/events/%d/discussions/feed", event.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	feed := decodeJSON(t, w)
	require.Empty(t, feed["messages"])
}

func TestDiscussions_ShowReturnsRecentMessages(t *testing.T) {
	env := setupTestEnv(t)

	host := env.signupAndLogin(t, "host@example.com", "Harriet", "Host")
	event := env.createEvent(t, host.user.ID)

	for i := 0; i < 3; i++ {
		w := host.do(http.MethodPost, fmt.Sprintf("/api/events/%d/discussions/messages", event.ID), map[string]any{
			"content": fmt.Sprintf("message %d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := host.do(http.MethodGet, fmt.Sprintf("/api/events/%d/discussions", event.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	messages := body["messages"].([]any)
	require.Len(t, messages, 3)
	require.Equal(t, "message 0", messages[0].(map[string]any)["content"])
	require.Equal(t, "message 2", messages[2].(map[string]any)["content"])
}

func TestDiscussions_InvalidThreadType(t *testing.T) {
	env := setupTestEnv(t)

	host := env.signupAndLogin(t, "host@example.com", "Harriet", "Host")
	event := env.createEvent(t, host.user.ID)

	w := host.do(http.MethodGet, fmt.Sprintf("/api/events/%d/discussions?thread_type=secret", event.ID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscussions_OutsiderUnauthorized(t *testing.T) {
	env := setupTestEnv(t)

	host := env.signupAndLogin(t, "host@example.com", "Harriet", "Host")
	outsider := env.signupAndLogin(t, "other@example.com", "Olive", "Outsider")
	event := env.createEvent(t, host.user.ID)

	w := outsider.do(http.MethodGet, fmt.Sprintf("/api/events/%d/discussions", event.ID), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// A user who matches a recipient by name may read the public channel but not
// the contributors channel.
func TestDiscussions_RecipientNameMatchAccess(t *testing.T) {
	env := setupTestEnv(t)

	host := env.signupAndLogin(t, "host@example.com", "Harriet", "Host")
	jane := env.signupAndLogin(t, "jane@example.com", "Jane", "Doe")
	event := env.createEvent(t, host.user.ID)

	require.NoError(t, env.db.Create(&models.Recipient{
		EventID: event.ID, FirstName: "Jane", LastName: "Doe",
	}).Error)

	w := jane.do(http.MethodGet, fmt.Sprintf("/api/events/%d/discussions?thread_type=public", event.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = jane.do(http.MethodGet, fmt.Sprintf("/api/events/%d/discussions?thread_type=contributors_only", event.ID), nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDiscussions_MessageValidation(t *testing.T) {
	env := setupTestEnv(t)

	host := env.signupAndLogin(t, "host@example.com", "Harriet", "Host")
	event := env.createEvent(t, host.user.ID)
	path := fmt.Sprintf("/api/events/%d/discussions/messages", event.ID)

	w := host.do(http.MethodPost, path, map[string]any{"content": ""})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = host.do(http.MethodPost, path, map[string]any{"content": strings.Repeat("a", 5001)})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = host.do(http.MethodPost, path, map[string]any{"content": strings.Repeat("a", 5000)})
	require.Equal(t, http.StatusCreated, w.Code)
}

// The two channels of one event keep separate message logs.
func TestDiscussions_ChannelsAreIndependent(t *testing.T) {
	env := setupTestEnv(t)

	host := env.signupAndLogin(t, "host@example.com", "Harriet", "Host")
	event := env.createEvent(t, host.user.ID)

	w := host.do(http.MethodPost,
		fmt.Sprintf("/api/events/%d/discussions/messages?thread_type=contributors_only", event.ID),
		map[string]any{"content": "gift plans here"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = host.do(http.MethodGet, fmt.Sprintf("/api/events/%d/discussions?thread_type=public", event.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeJSON(t, w)["messages"])

	w = host.do(http.MethodGet, fmt.Sprintf("/api/events/%d/discussions?thread_type=contributors_only", event.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeJSON(t, w)["messages"].([]any), 1)
}
