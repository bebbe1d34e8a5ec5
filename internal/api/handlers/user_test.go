package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icare-app/icare-server/internal/testutil"
)

func TestUserHandler_GetPreferences(t *testing.T) {
	ts := testutil.NewTestServer(t)

	authResp := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("defaults on first read", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/user/preferences"), nil, authResp.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var prefs testutil.PreferencesResponse
		testutil.AssertJSONResponse(t, resp, &prefs)
		assert.True(t, prefs.HideReels)
		assert.False(t, prefs.HideStories)
		assert.True(t, prefs.HideSuggestions)
		assert.False(t, prefs.LockMode)
		assert.Nil(t, prefs.LockEndTime)
	})

	t.Run("without token", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/user/preferences"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUserHandler_UpdatePreferences_Locked(t *testing.T) {
	ts := testutil.NewTestServer(t)

	authResp := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// Lock the preferences for an hour.
	lockEnd := time.Now().Add(time.Hour)
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/user/preferences"), map[string]interface{}{
		"lock_mode":    true,
		"lock_end_time": lockEnd.Format(time.RFC3339),
	}, authResp.Token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Any further update is forbidden while the lock window is open.
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/user/preferences"), map[string]interface{}{
		"hide_stories": true,
	}, authResp.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Mode verrou actif")

	// The stored record kept its previous values.
	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/user/preferences"), nil, authResp.Token)
	getResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer getResp.Body.Close()

	var prefs testutil.PreferencesResponse
	testutil.AssertJSONResponse(t, getResp, &prefs)
	assert.False(t, prefs.HideStories)
	assert.True(t, prefs.LockMode)
}

func TestUserHandler_UpdatePreferences_Partial(t *testing.T) {
	ts := testutil.NewTestServer(t)

	authResp := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/user/preferences"), map[string]interface{}{
		"hide_reels": false,
	}, authResp.Token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var prefs testutil.PreferencesResponse
	testutil.AssertJSONResponse(t, resp, &prefs)
	assert.False(t, prefs.HideReels)
	// Fields absent from the request keep their defaults.
	assert.False(t, prefs.HideStories)
	assert.True(t, prefs.HideSuggestions)
}

func TestUserHandler_TimeSavedAndStats(t *testing.T) {
	ts := testutil.NewTestServer(t)

	authResp := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("add time saved", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/user/time-saved"), map[string]interface{}{
			"minutes": 30,
		}, authResp.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Success        bool `json:"success"`
			TotalTimeSaved int  `json:"total_time_saved"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.True(t, result.Success)
		assert.Equal(t, 30, result.TotalTimeSaved)
	})

	t.Run("rejects non-positive minutes", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/user/time-saved"), map[string]interface{}{
			"minutes": 0,
		}, authResp.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("stats reflect the accrual", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/user/stats"), nil, authResp.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stats struct {
			TimeSaved       int   `json:"time_saved"`
			SessionsCount   int   `json:"sessions_count"`
			WeeklyTimeSaved int   `json:"weekly_time_saved"`
			TotalSessions   int64 `json:"total_sessions"`
		}
		testutil.AssertJSONResponse(t, resp, &stats)
		assert.Equal(t, 30, stats.TimeSaved)
		assert.Equal(t, 1, stats.SessionsCount)
		assert.Equal(t, 30, stats.WeeklyTimeSaved)
		assert.Equal(t, int64(1), stats.TotalSessions)
	})
}

// Full register → read defaults → lock → rejected update flow through the
// HTTP surface.
func TestEndToEnd_RegisterLockUpdate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	authResp := testutil.NewUserBuilder().
		WithEmail("alice@example.com").
		BuildAndAuthenticate(t, ts)
	token := authResp.Token
	require.NotEmpty(t, token)

	// Protected read with the fresh token returns the defaults.
	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/user/preferences"), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var prefs testutil.PreferencesResponse
	testutil.AssertJSONResponse(t, resp, &prefs)
	resp.Body.Close()
	require.True(t, prefs.HideReels)
	require.False(t, prefs.HideStories)
	require.True(t, prefs.HideSuggestions)

	// Enable the lock for an hour.
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/user/preferences"), map[string]interface{}{
		"lock_mode":    true,
		"lock_end_time": time.Now().Add(time.Hour).Format(time.RFC3339),
	}, token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Immediately try to change a toggle: rejected.
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/user/preferences"), map[string]interface{}{
		"hide_stories": true,
	}, token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// hide_stories is still false.
	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/user/preferences"), nil, token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	testutil.AssertJSONResponse(t, resp, &prefs)
	resp.Body.Close()
	assert.False(t, prefs.HideStories)
	assert.True(t, prefs.LockMode)
}
