package models

import "time"

// Notification type constants
const (
	NotificationTypePasswordRecovery = "password_recovery"
)

// Notification is one entry of a user's inbox.
type Notification struct {
	ID           string        `json:"id"`
	Date         time.Time     `json:"date"`
	Text         string        `json:"text"`
	Type         string        `json:"type"`
	Read         bool          `json:"read"`
	RecoveryData *RecoveryData `json:"recoveryData,omitempty"`
}

// RecoveryData carries the identity a recovery request asks to unlock.
// Field names match the documents written by the web client.
type RecoveryData struct {
	ID           string `json:"id"`
	UserToUnlock string `json:"userToUnlock"`
	UserType     string `json:"userType"`
	UserRole     string `json:"userRole,omitempty"`
	UserSubRole  string `json:"userSubRole,omitempty"`
}

// IsRecoveryRequest reports whether n is a password recovery request.
func (n *Notification) IsRecoveryRequest() bool {
	return n.Type == NotificationTypePasswordRecovery && n.RecoveryData != nil
}

// Identity returns the account the recovery request refers to.
func (d *RecoveryData) Identity() Identity {
	return Identity{
		Name:    d.UserToUnlock,
		Type:    AccountType(d.UserType),
		Role:    d.UserRole,
		SubRole: d.UserSubRole,
	}
}

// RecoveryStatus is what a client needs to decide whether to offer recovery.
type RecoveryStatus struct {
	FailedAttempts    int  `json:"failed_attempts"`
	RecoveryAvailable bool `json:"recovery_available"`
}

// LockedAccount is one counter entry at or above the lockout threshold.
type LockedAccount struct {
	AccountKey     string `json:"account_key"`
	FailedAttempts int    `json:"failed_attempts"`
}
