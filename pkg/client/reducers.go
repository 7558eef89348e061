package client

// Reducers are pure: they never mutate the incoming state and return a
// new value for every handled event.

func reduceAuth(s AuthState, e Event) AuthState {
	switch e.Type {
	case RegisterSuccess, LoginSuccess:
		token, _ := e.Payload.(string)
		s.Token = token
		s.IsAuthenticated = true
		s.Loading = false
		return s
	case UserLoaded:
		u, _ := e.Payload.(*User)
		s.IsAuthenticated = true
		s.Loading = false
		s.User = u
		return s
	case RegisterFail, LoginFail, AuthError, Logout, AccountDeleted:
		s.Token = ""
		s.IsAuthenticated = false
		s.Loading = false
		s.User = nil
		return s
	default:
		return s
	}
}

func reduceProfile(s ProfileState, e Event) ProfileState {
	switch e.Type {
	case GetProfile, UpdateProfile:
		p, _ := e.Payload.(*Profile)
		s.Profile = p
		s.Loading = false
		s.Error = nil
		return s
	case GetProfiles:
		ps, _ := e.Payload.([]Profile)
		s.Profiles = ps
		s.Loading = false
		s.Error = nil
		return s
	case GetRepos:
		repos, _ := e.Payload.([]Repo)
		s.Repos = repos
		s.Loading = false
		return s
	case ProfileError:
		apiErr, _ := e.Payload.(*APIError)
		s.Error = apiErr
		s.Profile = nil
		s.Loading = false
		return s
	case ClearProfile, Logout, AccountDeleted:
		s.Profile = nil
		s.Repos = nil
		s.Loading = false
		return s
	case ResetProfileLoading:
		s.Loading = true
		return s
	default:
		return s
	}
}
