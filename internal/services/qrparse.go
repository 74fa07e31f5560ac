package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/alhuda/dismissal/internal/directory"
	"github.com/alhuda/dismissal/internal/dismissal"
)

var ErrUnrecognizedFormat = errors.New("unrecognized credential format")

// Credential is the parsed contact descriptor carried by a caregiver's QR
// pass. Transient: it never touches the database directly.
type Credential struct {
	Kind dismissal.ContactKind

	// Parent kind
	Name string

	// Alternate kind
	ParentName    string
	AlternateName string

	Phone    string
	ParentID string // decimal digits; empty when the credential omits it
	Date     string
}

// DisplayName is what ends up on the dismissal record: the person actually
// at the gate.
func (c *Credential) DisplayName() string {
	if c.Kind == dismissal.ContactAlternate {
		return c.AlternateName
	}
	return c.Name
}

var reDigits = regexp.MustCompile(`^[0-9]+$`)

// credentialKeys are the only line keys the grammar accepts. Anything else
// fails the parse; the pipeline never guesses at shapes.
var credentialKeys = map[string]bool{
	"name":                true,
	"phone":               true,
	"parent id":           true,
	"date":                true,
	"parent":              true,
	"alternate pickup by": true,
}

// ParseCredential parses the line-oriented key:value credential text. Keys
// are case-insensitive and trimmed. Two shapes exist: a Parent credential
// (Name + Phone) and an Alternate credential (Parent + Alternate Pickup by +
// Phone). Everything else is ErrUnrecognizedFormat.
func ParseCredential(raw string) (*Credential, error) {
	fields := map[string]string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, ErrUnrecognizedFormat
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if !credentialKeys[key] {
			return nil, ErrUnrecognizedFormat
		}
		fields[key] = strings.TrimSpace(value)
	}

	c := &Credential{
		Name:          fields["name"],
		ParentName:    fields["parent"],
		AlternateName: fields["alternate pickup by"],
		Phone:         fields["phone"],
		ParentID:      fields["parent id"],
		Date:          fields["date"],
	}

	if c.Phone == "" {
		return nil, ErrUnrecognizedFormat
	}
	if norm := directory.NormPhone(c.Phone); norm != "" {
		c.Phone = norm
	}
	if c.ParentID != "" && !reDigits.MatchString(c.ParentID) {
		return nil, ErrUnrecognizedFormat
	}

	switch {
	case c.ParentName != "" && c.AlternateName != "":
		c.Kind = dismissal.ContactAlternate
	case c.Name != "" && c.ParentName == "" && c.AlternateName == "":
		c.Kind = dismissal.ContactParent
	default:
		return nil, ErrUnrecognizedFormat
	}
	return c, nil
}
