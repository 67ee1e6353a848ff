// Package queue defines message payloads exchanged over the message broker.
package queue

// AccountAuthenticatedEvent is published after every successful login.
// It replaces in-process "user logged in" notifications with a durable
// event so downstream consumers (audit log, analytics, the social
// presence service) can react without querying the primary stores.
type AccountAuthenticatedEvent struct {
	AccountID uint32 `json:"account_id"`
	Username  string `json:"username"`
	Expansion string `json:"expansion"`
	Emulator  string `json:"emulator"`
	SourceIP  string `json:"source_ip"`
	LoginAt   string `json:"login_at"`
}
