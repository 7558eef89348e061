package client

// EventType identifies a state transition. Reducers switch on these;
// unknown types leave the state untouched.
type EventType string

const (
	RegisterSuccess EventType = "REGISTER_SUCCESS"
	RegisterFail    EventType = "REGISTER_FAIL"
	UserLoaded      EventType = "USER_LOADED"
	AuthError       EventType = "AUTH_ERROR"
	LoginSuccess    EventType = "LOGIN_SUCCESS"
	LoginFail       EventType = "LOGIN_FAIL"
	Logout          EventType = "LOGOUT"
	AccountDeleted  EventType = "ACCOUNT_DELETED"

	GetProfile          EventType = "GET_PROFILE"
	GetProfiles         EventType = "GET_PROFILES"
	GetRepos            EventType = "GET_REPOS"
	UpdateProfile       EventType = "UPDATE_PROFILE"
	ProfileError        EventType = "PROFILE_ERROR"
	ClearProfile        EventType = "CLEAR_PROFILE"
	ResetProfileLoading EventType = "RESET_PROFILE_LOADING"
)

// Event pairs a type with its payload. Payload kinds by type:
// token string for auth successes, *User for UserLoaded, *Profile for
// GetProfile/UpdateProfile, []Profile for GetProfiles, []Repo for
// GetRepos, *APIError for ProfileError, nil otherwise.
type Event struct {
	Type    EventType
	Payload any
}
