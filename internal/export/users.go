package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// User identifies a message author. Only the ID is guaranteed; the two
// name fields come from the identity table or from the record itself.
type User struct {
	ID          string
	RealName    string
	DisplayName string
}

// DisplayLabel returns the best printable name for the user:
// display name, then real name, then the raw ID.
func (u User) DisplayLabel() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.RealName != "" {
		return u.RealName
	}
	return u.ID
}

// UserTable maps Slack user IDs to identities loaded from a users.json
// export file. It is built once and read-only afterwards.
type UserTable struct {
	users map[string]User
}

// userEntry is one element of the users.json array.
type userEntry struct {
	ID      string `json:"id"`
	Profile struct {
		RealName    string `json:"real_name"`
		DisplayName string `json:"display_name"`
	} `json:"profile"`
}

// LoadUsers reads a users.json identity table. A missing path ("") yields
// an empty table, which resolves everything from embedded record fields.
func LoadUsers(path string) (*UserTable, error) {
	t := &UserTable{users: make(map[string]User)}
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var entries []userEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse users file %s: %w", path, err)
	}

	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		t.users[e.ID] = User{
			ID:          e.ID,
			RealName:    e.Profile.RealName,
			DisplayName: e.Profile.DisplayName,
		}
	}
	return t, nil
}

// Size returns the number of identities in the table.
func (t *UserTable) Size() int {
	return len(t.users)
}

// Resolve returns the identity for a user ID. A table entry wins outright
// over the embedded profile; with neither available the raw ID is used.
// Resolve never fails: an unknown user always renders as something.
func (t *UserTable) Resolve(id string, embedded *UserProfile) User {
	if u, ok := t.users[id]; ok {
		return u
	}
	u := User{ID: id}
	if embedded != nil {
		u.RealName = embedded.RealName
		u.DisplayName = embedded.DisplayName
	}
	return u
}
