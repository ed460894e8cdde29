package entity

// Dashboard is a named, user-owned collection of cards.
type Dashboard struct {
	ID          string `json:"id" yaml:"id"`
	Slug        string `json:"slug" yaml:"slug"`
	Title       string `json:"title" yaml:"title"`
	OwnerUserID string `json:"ownerUserId" yaml:"ownerUserId"`
	XOrder      int    `json:"xOrder" yaml:"xOrder"`
}

// Viewer identifies who is looking at (or mutating) a dashboard. Supplied by
// the identity layer; this service never authenticates anyone itself.
type Viewer struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// IsOwnerOf reports whether the viewer owns the given dashboard.
func (v Viewer) IsOwnerOf(d Dashboard) bool {
	return v.UserID != "" && v.UserID == d.OwnerUserID
}
