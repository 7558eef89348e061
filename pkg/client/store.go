package client

import "sync"

// AuthState tracks the session. Loading starts true and flips false on
// the first auth related event, mirroring an initial "checking token"
// phase.
type AuthState struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *User
}

type ProfileState struct {
	Profile  *Profile
	Profiles []Profile
	Repos    []Repo
	Loading  bool
	Error    *APIError
}

type State struct {
	Auth    AuthState
	Profile ProfileState
}

func initialState() State {
	return State{
		Auth:    AuthState{Loading: true},
		Profile: ProfileState{Loading: true},
	}
}

// Store holds the state behind a mutex and advances it through pure
// reducers. Subscribers are notified after every dispatch.
type Store struct {
	mu          sync.RWMutex
	state       State
	subscribers []func(Event, State)
}

func NewStore() *Store {
	return &Store{state: initialState()}
}

// State returns a snapshot. Slices and pointers in it must be treated
// as read only by callers.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a callback invoked synchronously after each
// dispatch with the event and the resulting state. Not removable;
// subscribe once at setup.
func (s *Store) Subscribe(fn func(Event, State)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) Dispatch(e Event) {
	s.mu.Lock()
	s.state.Auth = reduceAuth(s.state.Auth, e)
	s.state.Profile = reduceProfile(s.state.Profile, e)
	next := s.state
	subs := s.subscribers
	s.mu.Unlock()

	for _, fn := range subs {
		fn(e, next)
	}
}
