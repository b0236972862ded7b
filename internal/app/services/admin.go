package services

import (
	"github.com/yigit/classpoints/internal/pkg/apperrors"
	"github.com/yigit/classpoints/internal/pkg/auth"
)

// ErrAdminPasswordMismatch is returned when the admin passphrase does not match
var ErrAdminPasswordMismatch = apperrors.NewCustomError(apperrors.ErrPermissionDenied, "admin password mismatch")

// AdminGate guards admin operations with a single shared passphrase
type AdminGate struct {
	passphrase string
}

// NewAdminGate creates a gate for the given passphrase
func NewAdminGate(passphrase string) *AdminGate {
	return &AdminGate{passphrase: passphrase}
}

// Check returns ErrAdminPasswordMismatch unless given equals the passphrase exactly
func (g *AdminGate) Check(given string) error {
	if !auth.PassphraseMatches(g.passphrase, given) {
		return ErrAdminPasswordMismatch
	}
	return nil
}
