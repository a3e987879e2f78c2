package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContacts_CreateByEmail(t *testing.T) {
	env := setupTestEnv(t)

	user := env.signupAndLogin(t, "me@example.com", "Mia", "Me")
	env.signupAndLogin(t, "friend@example.com", "Fred", "Friend")

	w := user.do(http.MethodPost, "/api/contacts", map[string]any{
		"email": "friend@example.com",
		"note":  "college roommate",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	contact := decodeJSON(t, w)
	linked := contact["contact_user"].(map[string]any)
	require.Equal(t, "Fred", linked["first_name"])

	w = user.do(http.MethodGet, "/api/contacts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeJSON(t, w)["contacts"].([]any), 1)
}

func TestContacts_Validation(t *testing.T) {
	env := setupTestEnv(t)

	user := env.signupAndLogin(t, "me@example.com", "Mia", "Me")
	env.signupAndLogin(t, "friend@example.com", "Fred", "Friend")

	// Unknown email.
	w := user.do(http.MethodPost, "/api/contacts", map[string]any{"email": "ghost@example.com"})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Self-reference.
	w = user.do(http.MethodPost, "/api/contacts", map[string]any{"email": "me@example.com"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Duplicate link.
	w = user.do(http.MethodPost, "/api/contacts", map[string]any{"email": "friend@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = user.do(http.MethodPost, "/api/contacts", map[string]any{"email": "friend@example.com"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestContacts_Delete(t *testing.T) {
	env := setupTestEnv(t)

	user := env.signupAndLogin(t, "me@example.com", "Mia", "Me")
	env.signupAndLogin(t, "friend@example.com", "Fred", "Friend")

	w := user.do(http.MethodPost, "/api/contacts", map[string]any{"email": "friend@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	contactID := decodeJSON(t, w)["id"].(float64)

	w = user.do(http.MethodDelete, fmt.Sprintf("/api/contacts/%d", int(contactID)), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = user.do(http.MethodDelete, fmt.Sprintf("/api/contacts/%d", int(contactID)), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
