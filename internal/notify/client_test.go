package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendDirect(t *testing.T) {
	var gotPath, gotSecret string
	var gotMsg Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSecret = r.Header.Get("X-Gateway-Secret")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "s3cret", false)
	err := c.SendDirect(context.Background(), "u-1", "Reminder", "please submit")
	require.NoError(t, err)

	assert.Equal(t, "/dm", gotPath)
	assert.Equal(t, "s3cret", gotSecret)
	assert.Equal(t, "u-1", gotMsg.UserID)
	assert.Empty(t, gotMsg.ChannelID)
	assert.Equal(t, "please submit", gotMsg.Body)
}

func TestPostChannel(t *testing.T) {
	var gotPath string
	var gotMsg Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", false)
	err := c.PostChannel(context.Background(), "chan-1", "Pending", "list")
	require.NoError(t, err)

	assert.Equal(t, "/channel", gotPath)
	assert.Equal(t, "chan-1", gotMsg.ChannelID)
}

func TestGatewayErrorWrapsRecipient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown user", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", false)
	err := c.SendDirect(context.Background(), "ghost", "t", "b")
	require.Error(t, err)

	var ne *NotificationError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "ghost", ne.Recipient)
	assert.Contains(t, err.Error(), "404")
}

func TestStubModeSendsNothing(t *testing.T) {
	c := NewClient("http://gateway.invalid", "", true)
	assert.NoError(t, c.SendDirect(context.Background(), "u-1", "t", "b"))
	assert.NoError(t, c.PostChannel(context.Background(), "chan-1", "t", "b"))
}
