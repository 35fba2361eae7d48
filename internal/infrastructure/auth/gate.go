// Package auth implements the shared-credential entry gate.
package auth

import (
	"crypto/subtle"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Gate compares a username/password pair against one configured pair.
// With no pair configured the gate is open.
type Gate struct {
	user     []byte
	password []byte
}

// NewGate reads the pair from creds.
func NewGate(creds domain.Credentials) *Gate {
	return &Gate{user: []byte(creds.LoginUser), password: []byte(creds.LoginPassword)}
}

// Enabled reports whether credentials must be entered.
func (g *Gate) Enabled() bool {
	return len(g.user) > 0 && len(g.password) > 0
}

// Check compares both fields in constant time.
func (g *Gate) Check(user, password string) bool {
	if !g.Enabled() {
		return true
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), g.user)
	passOK := subtle.ConstantTimeCompare([]byte(password), g.password)
	return userOK&passOK == 1
}

var _ ports.Authenticator = (*Gate)(nil)
