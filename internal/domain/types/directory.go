package types

// PublishRequest is the body POSTed to the directory.
type PublishRequest struct {
	Token string `json:"token"`
}

// DirectoryEntry is the directory's reply to both publish and fetch.
// Token is base64 on the wire.
type DirectoryEntry struct {
	ID      TokenID `json:"id"`
	Token   string  `json:"token"`
	Success bool    `json:"success"`
}
