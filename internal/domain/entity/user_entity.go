package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password field.
// Favorites is the embedded, ordered collection of saved countries;
// countryName is unique within a single user's favorites.
type User struct {
	ID        string
	Email     string
	Password  string
	Favorites []Favorite
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Favorite is a saved country reference. The display fields are copied
// from the country data provider at insertion time and are not kept in
// sync afterwards.
type Favorite struct {
	CountryName string `json:"countryName"`
	Flag        string `json:"flag"`
	Capital     string `json:"capital"`
	Region      string `json:"region"`
}

// HasFavorite reports whether name is already in the user's favorites.
// The match is case-sensitive on the exact country name.
func (u *User) HasFavorite(name string) bool {
	for _, f := range u.Favorites {
		if f.CountryName == name {
			return true
		}
	}
	return false
}
