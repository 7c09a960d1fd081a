// ABOUTME: Navigation guard deciding where a view may be entered
// ABOUTME: Protected views need a session; the login view bounces signed-in users home

package session

import "context"

// Access classifies a view for the guard
type Access int

const (
	// AccessPublic views are reachable with or without a session
	AccessPublic Access = iota
	// AccessProtected views require a session
	AccessProtected
	// AccessAnonymous is the login view
	AccessAnonymous
)

// Navigation is the guard's verdict
type Navigation int

const (
	Stay Navigation = iota
	ToLogin
	ToHome
)

func (n Navigation) String() string {
	switch n {
	case ToLogin:
		return "login"
	case ToHome:
		return "home"
	}
	return "stay"
}

// Reader is the part of Store the guard needs
type Reader interface {
	Get(ctx context.Context) (Session, error)
}

// Guard checks the stored session against the view's access level.
// A session that cannot be read counts as absent.
func Guard(ctx context.Context, store Reader, access Access) Navigation {
	_, err := store.Get(ctx)
	signedIn := err == nil

	switch {
	case access == AccessProtected && !signedIn:
		return ToLogin
	case access == AccessAnonymous && signedIn:
		return ToHome
	}
	return Stay
}
