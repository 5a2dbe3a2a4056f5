package customer

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactType tags a contact method with the medium it reaches.
type ContactType string

const (
	ContactTypeEmail    ContactType = "email"
	ContactTypePhone    ContactType = "phone"
	ContactTypeSMS      ContactType = "sms"
	ContactTypeWebChat  ContactType = "web_chat"
	ContactTypeFacebook ContactType = "facebook"
	ContactTypeTwitter  ContactType = "twitter"
	ContactTypeWhatsApp ContactType = "whatsapp"
	ContactTypeTelegram ContactType = "telegram"
)

// NotificationFrequency controls how eagerly a customer is notified.
type NotificationFrequency string

const (
	FrequencyImmediate NotificationFrequency = "immediate"
	FrequencyDaily     NotificationFrequency = "daily"
	FrequencyWeekly    NotificationFrequency = "weekly"
)

// ContactMethod is one way of reaching a customer, e.g. an email address
// or a phone number. At most one method should carry IsPreferred.
type ContactMethod struct {
	Type        ContactType `json:"type" bson:"type"`
	Value       string      `json:"value" bson:"value"`
	IsPreferred bool        `json:"is_preferred" bson:"is_preferred"`
}

type CustomerPreference struct {
	PreferredLanguage     string                `json:"preferred_language" bson:"preferred_language"`
	TimeZone              string                `json:"time_zone" bson:"time_zone"`
	NotificationFrequency NotificationFrequency `json:"notification_frequency" bson:"notification_frequency"`
	OptInMarketing        bool                  `json:"opt_in_marketing" bson:"opt_in_marketing"`
}

// Customer represents a support customer
type Customer struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	ContactMethods []ContactMethod    `json:"contact_methods" bson:"contact_methods"`
	Preferences    CustomerPreference `json:"preferences" bson:"preferences"`
	Tags           []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// CustomerUpdate is a partial update payload. Only non-nil fields are
// applied; everything else is left untouched.
type CustomerUpdate struct {
	Name           *string             `json:"name,omitempty"`
	ContactMethods []ContactMethod     `json:"contact_methods,omitempty"`
	Preferences    *CustomerPreference `json:"preferences,omitempty"`
	Tags           []string            `json:"tags,omitempty"`
	IsActive       *bool               `json:"is_active,omitempty"`
}
