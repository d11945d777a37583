package models

// User is a marketplace account as stored in the users table.
type User struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	LoginID      string `json:"userId" db:"user_id"`
	PasswordHash string `json:"-" db:"password"` // don’t expose hash
	Coins        int    `json:"coins" db:"coins"`
}

// UserSummary is the public view of a user returned by login and /userinfo.
type UserSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
	Coins  int    `json:"coins"`
}

// Summary drops the password hash.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, UserID: u.LoginID, Coins: u.Coins}
}

// Identity is the authenticated caller, taken from a verified session token.
type Identity struct {
	ID      int
	Name    string
	LoginID string
}
