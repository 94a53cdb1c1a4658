package model

import (
	"errors"
	"time"
)

// PushSubscription is one registered browser/device endpoint for a user.
// Supports multiple devices per user.
//
// Endpoint is the opaque delivery URL issued by the browser's push service;
// P256dh and Auth are the client keys used to encrypt each payload. The
// alert engine deletes a subscription once the push service confirms the
// endpoint is permanently gone (self-healing).
type PushSubscription struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Endpoint  string    `db:"endpoint" json:"-"` // opaque push service URL, hidden from JSON
	P256dh    string    `db:"p256dh" json:"-"`
	Auth      string    `db:"auth" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SubscribeRequest mirrors the browser PushSubscription JSON shape.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// UnsubscribeRequest removes a single device registration by endpoint.
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

var (
	// ErrSubscriptionNotFound is returned when no subscription matches.
	ErrSubscriptionNotFound = errors.New("push subscription not found")
)
