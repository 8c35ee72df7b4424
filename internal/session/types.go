package session

// Token is the credential bundle issued by the backend on login and refresh.
type Token struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Profile is the decoded identity record from the backend's /api/me endpoint.
type Profile struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"user_roles"`
}

// HasRole checks if the profile carries a specific role.
func (p *Profile) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if the profile's role set intersects the given roles.
func (p *Profile) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

// State holds the two pieces of session state. Token and Profile are
// independently nullable: a token without a profile is "not fully
// authenticated" and must be tolerated everywhere.
type State struct {
	Token   *Token
	Profile *Profile
}

// Authenticated reports whether a bearer credential is present.
func (s State) Authenticated() bool {
	return s.Token != nil && s.Token.AccessToken != ""
}

// FullyAuthenticated reports whether both credential and identity are present.
func (s State) FullyAuthenticated() bool {
	return s.Authenticated() && s.Profile != nil
}
