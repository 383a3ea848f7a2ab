package domain

// Identity is the request-scoped principal recovered from a verified token.
type Identity struct {
	Username string
	UserID   int64
}
