package client

import (
	"context"
	"errors"
	"fmt"
)

// Dispatcher runs the API actions. Each action performs the HTTP call,
// dispatches the resulting events into the store and pushes user facing
// alerts for failures (and for a few confirmations).
type Dispatcher struct {
	client *Client
	store  *Store
	alerts *AlertQueue

	// Navigate is invoked after a successful first profile submission
	// with the suggested destination. Optional.
	Navigate func(path string)
}

func NewDispatcher(c *Client, store *Store, alerts *AlertQueue) *Dispatcher {
	return &Dispatcher{client: c, store: store, alerts: alerts}
}

// Register creates an account, stores the issued token and resolves the
// identity behind it.
func (d *Dispatcher) Register(ctx context.Context, input RegisterInput) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := d.client.post(ctx, "/api/users", input, &resp); err != nil {
		d.failAuth(err, RegisterFail)
		return err
	}

	d.client.SetToken(resp.Token)
	d.store.Dispatch(Event{Type: RegisterSuccess, Payload: resp.Token})
	return d.LoadUser(ctx)
}

// Login exchanges credentials for a token and chains into LoadUser.
func (d *Dispatcher) Login(ctx context.Context, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := d.client.post(ctx, "/api/auth", LoginInput{Email: email, Password: password}, &resp); err != nil {
		d.failAuth(err, LoginFail)
		return err
	}

	d.client.SetToken(resp.Token)
	d.store.Dispatch(Event{Type: LoginSuccess, Payload: resp.Token})
	return d.LoadUser(ctx)
}

// LoadUser resolves the current token into a user. With no token it
// degrades silently: no request, just an AuthError transition.
func (d *Dispatcher) LoadUser(ctx context.Context) error {
	if d.client.Token() == "" {
		d.store.Dispatch(Event{Type: AuthError})
		return nil
	}

	var u User
	if err := d.client.get(ctx, "/api/auth", &u); err != nil {
		d.store.Dispatch(Event{Type: AuthError})
		return err
	}
	d.store.Dispatch(Event{Type: UserLoaded, Payload: &u})
	return nil
}

// Logout drops the token locally. The server keeps no session state.
func (d *Dispatcher) Logout() {
	d.client.SetToken("")
	d.store.Dispatch(Event{Type: Logout})
}

// GetCurrentProfile loads the caller's own profile.
func (d *Dispatcher) GetCurrentProfile(ctx context.Context) error {
	var p Profile
	if err := d.client.get(ctx, "/api/profile/me", &p); err != nil {
		d.failProfile(err)
		return err
	}
	d.store.Dispatch(Event{Type: GetProfile, Payload: &p})
	return nil
}

// GetAllProfiles lists every profile in the directory. The previously
// viewed profile is cleared first so stale data never flashes.
func (d *Dispatcher) GetAllProfiles(ctx context.Context) error {
	d.store.Dispatch(Event{Type: ClearProfile})

	var profiles []Profile
	if err := d.client.get(ctx, "/api/profile", &profiles); err != nil {
		d.failProfile(err)
		return err
	}
	d.store.Dispatch(Event{Type: GetProfiles, Payload: profiles})
	return nil
}

// GetProfileByUserID loads a public profile by its owner's id.
func (d *Dispatcher) GetProfileByUserID(ctx context.Context, userID string) error {
	var p Profile
	if err := d.client.get(ctx, "/api/profile/user/"+userID, &p); err != nil {
		d.failProfile(err)
		return err
	}
	d.store.Dispatch(Event{Type: GetProfile, Payload: &p})
	return nil
}

// GetGithubRepos loads the latest public repositories for a username.
func (d *Dispatcher) GetGithubRepos(ctx context.Context, username string) error {
	var repos []Repo
	if err := d.client.get(ctx, "/api/profile/github/"+username, &repos); err != nil {
		d.failProfile(err)
		return err
	}
	d.store.Dispatch(Event{Type: GetRepos, Payload: repos})
	return nil
}

// CreateOrUpdateProfile submits the profile form. edit distinguishes a
// first submission from a revision; only a first submission triggers
// navigation back to the dashboard.
func (d *Dispatcher) CreateOrUpdateProfile(ctx context.Context, form ProfileForm, edit bool) error {
	var p Profile
	if err := d.client.post(ctx, "/api/profile", form, &p); err != nil {
		d.failProfile(err)
		return err
	}

	d.store.Dispatch(Event{Type: GetProfile, Payload: &p})
	if edit {
		d.alerts.Push("Profile Updated", SeveritySuccess)
	} else {
		d.alerts.Push("Profile Created", SeveritySuccess)
		if d.Navigate != nil {
			d.Navigate("/dashboard")
		}
	}
	return nil
}

// AddExperience prepends a work entry to the caller's profile.
func (d *Dispatcher) AddExperience(ctx context.Context, form ExperienceForm) error {
	var p Profile
	if err := d.client.put(ctx, "/api/profile/experience", form, &p); err != nil {
		d.failProfile(err)
		return err
	}
	d.store.Dispatch(Event{Type: UpdateProfile, Payload: &p})
	d.alerts.Push("Experience Added", SeveritySuccess)
	return nil
}

// AddEducation prepends an education entry to the caller's profile.
func (d *Dispatcher) AddEducation(ctx context.Context, form EducationForm) error {
	var p Profile
	if err := d.client.put(ctx, "/api/profile/education", form, &p); err != nil {
		d.failProfile(err)
		return err
	}
	d.store.Dispatch(Event{Type: UpdateProfile, Payload: &p})
	d.alerts.Push("Education Added", SeveritySuccess)
	return nil
}

// DeleteExperience removes a work entry by its id.
func (d *Dispatcher) DeleteExperience(ctx context.Context, entryID string) error {
	var p Profile
	if err := d.client.delete(ctx, "/api/profile/experience/"+entryID, &p); err != nil {
		d.failProfile(err)
		return err
	}
	d.store.Dispatch(Event{Type: UpdateProfile, Payload: &p})
	d.alerts.Push("Experience Removed", SeveritySuccess)
	return nil
}

// DeleteEducation removes an education entry by its id.
func (d *Dispatcher) DeleteEducation(ctx context.Context, entryID string) error {
	var p Profile
	if err := d.client.delete(ctx, "/api/profile/education/"+entryID, &p); err != nil {
		d.failProfile(err)
		return err
	}
	d.store.Dispatch(Event{Type: UpdateProfile, Payload: &p})
	d.alerts.Push("Education Removed", SeveritySuccess)
	return nil
}

// DeleteAccount permanently removes the caller's profile and identity.
func (d *Dispatcher) DeleteAccount(ctx context.Context) error {
	if err := d.client.delete(ctx, "/api/profile", nil); err != nil {
		d.failProfile(err)
		return err
	}

	d.client.SetToken("")
	d.store.Dispatch(Event{Type: ClearProfile})
	d.store.Dispatch(Event{Type: AccountDeleted})
	d.alerts.Push("Your account has been permanently deleted", SeveritySuccess)
	return nil
}

// failAuth fans validation items out as danger alerts, then dispatches
// the failure event so the session state resets.
func (d *Dispatcher) failAuth(err error, failType EventType) {
	d.pushErrorAlerts(err)
	d.store.Dispatch(Event{Type: failType})
}

func (d *Dispatcher) failProfile(err error) {
	d.pushErrorAlerts(err)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = &APIError{Msg: err.Error()}
	}
	d.store.Dispatch(Event{Type: ProfileError, Payload: apiErr})
}

func (d *Dispatcher) pushErrorAlerts(err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		d.alerts.Push(fmt.Sprintf("Request failed: %v", err), SeverityDanger)
		return
	}
	for _, item := range apiErr.Items() {
		d.alerts.Push(item.Msg, SeverityDanger)
	}
}
