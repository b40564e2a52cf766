package types

import "encoding/json"

// User is the signed-in user as returned by the session endpoint. Fields the
// endpoint adds beyond these are kept in Extra.
type User struct {
	Name              string         `json:"name,omitempty"`
	PreferredUsername string         `json:"preferred_username,omitempty"`
	Email             string         `json:"email,omitempty"`
	Extra             map[string]any `json:"-"`
}

// DisplayName returns the best available name for the user.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.Name != "":
		return u.Name
	case u.PreferredUsername != "":
		return u.PreferredUsername
	default:
		return u.Email
	}
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range []string{"name", "preferred_username", "email"} {
		delete(all, k)
	}
	if len(all) > 0 {
		p.Extra = all
	}
	*u = User(p)
	return nil
}
