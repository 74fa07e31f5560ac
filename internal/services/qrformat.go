package services

import (
	"fmt"

	"github.com/alhuda/dismissal/internal/models"
)

// CredentialText renders a parent's pickup pass in the exact grammar
// ParseCredential accepts, so printed passes round-trip by construction.
func CredentialText(p *models.Parent, date string) string {
	return fmt.Sprintf("Name: %s\nPhone: %s\nParent ID: %d\nDate: %s",
		p.Name, p.Phone, p.ID, date)
}

// AlternateCredentialText renders a pass for someone picking up on a
// parent's behalf.
func AlternateCredentialText(p *models.Parent, alternateName, alternatePhone, date string) string {
	return fmt.Sprintf("Parent: %s\nAlternate Pickup by: %s\nPhone: %s\nParent ID: %d\nDate: %s",
		p.Name, alternateName, alternatePhone, p.ID, date)
}
