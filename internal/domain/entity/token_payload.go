package entity

// AccessTokenPayload is the identity signed into a bearer token.
// ArtistID is zero when the user owns no artist record.
type AccessTokenPayload struct {
	Email    string `json:"email"`
	UserID   int64  `json:"userId"`
	ArtistID int64  `json:"artistId,omitempty"`
}

func (p AccessTokenPayload) IsArtist() bool { return p.ArtistID != 0 }
