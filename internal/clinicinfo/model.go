package clinicinfo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMessage is returned when a contact-form submission is malformed.
var ErrInvalidMessage = errors.New("clinicinfo: invalid message")

// contactDocID is the fixed key of the single clinic contact document.
const contactDocID = "main"

// ContactInfo is the clinic's public contact card. One document exists per
// deployment.
type ContactInfo struct {
	ID             string `dynamodbav:"id" json:"-"`
	Phone          string `dynamodbav:"phone" json:"phone"`
	EmergencyPhone string `dynamodbav:"emergencyPhone" json:"emergency_phone"`
	Email          string `dynamodbav:"email" json:"email"`
	Address        string `dynamodbav:"address" json:"address"`
	Hours          string `dynamodbav:"hours" json:"hours"`
	UpdatedAt      string `dynamodbav:"updatedAt" json:"updated_at"`
}

// ContactUpdate carries a partial edit of the contact card. Nil fields are
// left untouched.
type ContactUpdate struct {
	Phone          *string `json:"phone"`
	EmergencyPhone *string `json:"emergency_phone"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	Hours          *string `json:"hours"`
}

// Empty reports whether the update would change nothing.
func (u *ContactUpdate) Empty() bool {
	return u.Phone == nil && u.EmergencyPhone == nil && u.Email == nil && u.Address == nil && u.Hours == nil
}

// Message is a contact-form submission from a site visitor.
type Message struct {
	ID        string `dynamodbav:"id" json:"id"`
	BoxID     string `dynamodbav:"boxId" json:"-"`
	MsgKey    string `dynamodbav:"msgKey" json:"-"`
	Name      string `dynamodbav:"name" json:"name"`
	Email     string `dynamodbav:"email" json:"email"`
	Phone     string `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	Subject   string `dynamodbav:"subject,omitempty" json:"subject,omitempty"`
	Body      string `dynamodbav:"body" json:"body"`
	CreatedAt string `dynamodbav:"createdAt" json:"created_at"`
}

// Validate checks required submission fields.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}
