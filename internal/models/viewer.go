package models

import (
	"fmt"
)

// Viewer identifies who is reading a listing: an authenticated user id when
// available, otherwise the request's client IP. The two axes are mutually
// exclusive — when UserID is set the IP is ignored for checkpoint lookups.
type Viewer struct {
	UserID *uint
	IP     string
}

func AuthenticatedViewer(userID uint, ip string) Viewer {
	return Viewer{UserID: &userID, IP: ip}
}

func AnonymousViewer(ip string) Viewer {
	return Viewer{IP: ip}
}

func (v Viewer) Authenticated() bool {
	return v.UserID != nil
}

// Resolvable reports whether the viewer can own a checkpoint at all.
// A request with no user and no client IP is counted but never tracked.
func (v Viewer) Resolvable() bool {
	return v.UserID != nil || v.IP != ""
}

// Key returns a stable identifier usable as a cache key segment.
func (v Viewer) Key() string {
	if v.UserID != nil {
		return fmt.Sprintf("u:%d", *v.UserID)
	}
	return "ip:" + v.IP
}
