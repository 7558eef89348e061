package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceAuth_Transitions(t *testing.T) {
	start := AuthState{Loading: true}

	s := reduceAuth(start, Event{Type: LoginSuccess, Payload: "tok-1"})
	assert.True(t, s.IsAuthenticated)
	assert.False(t, s.Loading)
	assert.Equal(t, "tok-1", s.Token)

	// the input state is untouched
	assert.True(t, start.Loading)
	assert.Empty(t, start.Token)

	u := &User{ID: "u1", Name: "alice"}
	s = reduceAuth(s, Event{Type: UserLoaded, Payload: u})
	assert.Same(t, u, s.User)

	s = reduceAuth(s, Event{Type: AuthError})
	assert.False(t, s.IsAuthenticated)
	assert.Empty(t, s.Token)
	assert.Nil(t, s.User)
}

func TestReduceProfile_ErrorClearsProfile(t *testing.T) {
	s := ProfileState{Profile: &Profile{Status: "Developer"}}

	s = reduceProfile(s, Event{Type: ProfileError, Payload: &APIError{Status: 400, Msg: "Profile not found"}})
	assert.Nil(t, s.Profile)
	require.NotNil(t, s.Error)
	assert.Equal(t, "Profile not found", s.Error.Msg)

	s = reduceProfile(s, Event{Type: ResetProfileLoading})
	assert.True(t, s.Loading)
}

func TestAlertQueue_ExpiresIndependently(t *testing.T) {
	q := NewAlertQueueWithTimeout(60 * time.Millisecond)

	first := q.Push("Profile Created", SeveritySuccess)
	q.PushWithTimeout("Experience Added", SeveritySuccess, 400*time.Millisecond)

	alerts := q.Alerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, "Profile Created", alerts[0].Msg)

	// the short alert expires on its own; the long one stays put
	assert.Eventually(t, func() bool { return len(q.Alerts()) == 1 },
		500*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, "Experience Added", q.Alerts()[0].Msg)
	assert.NotEqual(t, first, q.Alerts()[0].ID)

	assert.Eventually(t, func() bool { return len(q.Alerts()) == 0 },
		time.Second, 10*time.Millisecond)
}

func TestAPIError_Items(t *testing.T) {
	flat := &APIError{Status: 400, Msg: "Invalid credentials"}
	require.Len(t, flat.Items(), 1)
	assert.Equal(t, "Invalid credentials", flat.Items()[0].Msg)

	validation := &APIError{Status: 400, Errors: []ErrorItem{
		{Msg: "Status is required", Field: "status"},
		{Msg: "Skills is required", Field: "skills"},
	}}
	assert.Len(t, validation.Items(), 2)
}

func newStubServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var authCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		var in RegisterInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Name == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"errors": []ErrorItem{
				{Msg: "Name is required", Field: "name"},
				{Msg: "Please include a valid email", Field: "email"},
			}})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "stub-token"})
	})
	mux.HandleFunc("GET /api/auth", func(w http.ResponseWriter, r *http.Request) {
		authCalls.Add(1)
		if r.Header.Get(DefaultTokenHeader) != "stub-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"msg": "Token is not valid"})
			return
		}
		json.NewEncoder(w).Encode(User{ID: "u1", Name: "alice", Email: "a@x.com"})
	})
	mux.HandleFunc("POST /api/profile", func(w http.ResponseWriter, r *http.Request) {
		var form ProfileForm
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		if form.Status == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"errors": []ErrorItem{
				{Msg: "Status is required", Field: "status"},
			}})
			return
		}
		json.NewEncoder(w).Encode(Profile{OwnerID: "u1", Status: form.Status, Skills: []string{"go"}})
	})
	mux.HandleFunc("GET /api/profile", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]Profile{{OwnerID: "u1", Status: "Developer"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &authCalls
}

func newTestDispatcher(srv *httptest.Server) (*Dispatcher, *Store, *AlertQueue) {
	store := NewStore()
	alerts := NewAlertQueueWithTimeout(time.Minute)
	d := NewDispatcher(NewClient(srv.URL), store, alerts)
	return d, store, alerts
}

func TestDispatcher_RegisterChainsLoadUser(t *testing.T) {
	srv, authCalls := newStubServer(t)
	d, store, alerts := newTestDispatcher(srv)

	err := d.Register(context.Background(), RegisterInput{Name: "alice", Email: "a@x.com", Password: "pw123456"})
	require.NoError(t, err)

	state := store.State()
	assert.True(t, state.Auth.IsAuthenticated)
	assert.Equal(t, "stub-token", state.Auth.Token)
	require.NotNil(t, state.Auth.User)
	assert.Equal(t, "alice", state.Auth.User.Name)
	assert.Equal(t, int32(1), authCalls.Load())
	assert.Empty(t, alerts.Alerts())
}

func TestDispatcher_RegisterValidationFansOutAlerts(t *testing.T) {
	srv, _ := newStubServer(t)
	d, store, alerts := newTestDispatcher(srv)

	err := d.Register(context.Background(), RegisterInput{Email: "bad"})
	require.Error(t, err)

	got := alerts.Alerts()
	require.Len(t, got, 2)
	assert.Equal(t, "Name is required", got[0].Msg)
	assert.Equal(t, SeverityDanger, got[0].Severity)

	assert.False(t, store.State().Auth.IsAuthenticated)
}

func TestDispatcher_LoadUserWithoutTokenSkipsRequest(t *testing.T) {
	srv, authCalls := newStubServer(t)
	d, store, _ := newTestDispatcher(srv)

	err := d.LoadUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(0), authCalls.Load())
	state := store.State()
	assert.False(t, state.Auth.IsAuthenticated)
	assert.False(t, state.Auth.Loading)
}

func TestDispatcher_CreateProfileNavigatesOnlyOnFirstSubmission(t *testing.T) {
	srv, _ := newStubServer(t)
	d, store, alerts := newTestDispatcher(srv)

	var navigated []string
	d.Navigate = func(path string) { navigated = append(navigated, path) }

	err := d.CreateOrUpdateProfile(context.Background(), ProfileForm{Status: "Developer", Skills: "go"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/dashboard"}, navigated)

	err = d.CreateOrUpdateProfile(context.Background(), ProfileForm{Status: "Senior Developer", Skills: "go"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"/dashboard"}, navigated)

	got := alerts.Alerts()
	require.Len(t, got, 2)
	assert.Equal(t, "Profile Created", got[0].Msg)
	assert.Equal(t, "Profile Updated", got[1].Msg)
	assert.Equal(t, "Senior Developer", store.State().Profile.Profile.Status)
}

func TestDispatcher_ProfileValidationFailure(t *testing.T) {
	srv, _ := newStubServer(t)
	d, store, alerts := newTestDispatcher(srv)

	err := d.CreateOrUpdateProfile(context.Background(), ProfileForm{}, false)
	require.Error(t, err)

	got := alerts.Alerts()
	require.Len(t, got, 1)
	assert.Equal(t, "Status is required", got[0].Msg)

	state := store.State()
	assert.Nil(t, state.Profile.Profile)
	require.NotNil(t, state.Profile.Error)
	assert.Equal(t, http.StatusBadRequest, state.Profile.Error.Status)
}

func TestDispatcher_GetAllProfilesClearsThenLoads(t *testing.T) {
	srv, _ := newStubServer(t)
	d, store, _ := newTestDispatcher(srv)

	var seen []EventType
	store.Subscribe(func(e Event, _ State) { seen = append(seen, e.Type) })

	err := d.GetAllProfiles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []EventType{ClearProfile, GetProfiles}, seen)
	require.Len(t, store.State().Profile.Profiles, 1)
}

func TestDispatcher_LogoutResetsEverything(t *testing.T) {
	srv, _ := newStubServer(t)
	d, store, _ := newTestDispatcher(srv)

	require.NoError(t, d.Register(context.Background(), RegisterInput{Name: "alice", Email: "a@x.com", Password: "pw123456"}))
	require.NoError(t, d.CreateOrUpdateProfile(context.Background(), ProfileForm{Status: "Developer", Skills: "go"}, false))

	d.Logout()

	state := store.State()
	assert.False(t, state.Auth.IsAuthenticated)
	assert.Nil(t, state.Auth.User)
	assert.Nil(t, state.Profile.Profile)
	assert.Empty(t, d.client.Token())
}
