package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChannelType selects the configuration variant a channel carries.
type ChannelType string

const (
	ChannelTypeEmail       ChannelType = "email"
	ChannelTypePhone       ChannelType = "phone"
	ChannelTypeChat        ChannelType = "chat"
	ChannelTypeSocialMedia ChannelType = "social_media"
)

// ChannelConfig is the notify capability shared by all channel variants.
// Delivery is best effort: implementations report errors but nothing is
// retried or confirmed.
type ChannelConfig interface {
	Kind() ChannelType
	Notify(ctx context.Context, target, message string) error
}

type EmailConfig struct {
	SMTPServer string `json:"smtp_server" bson:"smtp_server"`
	SMTPPort   int    `json:"smtp_port" bson:"smtp_port"`
	Username   string `json:"username" bson:"username"`
	Password   string `json:"password" bson:"password"`
	UseTLS     bool   `json:"use_tls" bson:"use_tls"`
}

func (EmailConfig) Kind() ChannelType { return ChannelTypeEmail }

func (EmailConfig) Notify(ctx context.Context, target, message string) error {
	return nil
}

type SocialMediaConfig struct {
	Platform    string `json:"platform" bson:"platform"`
	AccountName string `json:"account_name" bson:"account_name"`
	AccessToken string `json:"access_token" bson:"access_token"`
	APIVersion  string `json:"api_version,omitempty" bson:"api_version,omitempty"`
}

func (SocialMediaConfig) Kind() ChannelType { return ChannelTypeSocialMedia }

func (SocialMediaConfig) Notify(ctx context.Context, target, message string) error {
	return nil
}

type ChatConfig struct {
	Provider   string `json:"provider" bson:"provider"`
	APIKey     string `json:"api_key" bson:"api_key"`
	WebhookURL string `json:"webhook_url,omitempty" bson:"webhook_url,omitempty"`
}

func (ChatConfig) Kind() ChannelType { return ChannelTypeChat }

func (ChatConfig) Notify(ctx context.Context, target, message string) error {
	return nil
}

type PhoneConfig struct {
	Provider    string `json:"provider" bson:"provider"`
	AccountSID  string `json:"account_sid" bson:"account_sid"`
	AuthToken   string `json:"auth_token" bson:"auth_token"`
	PhoneNumber string `json:"phone_number" bson:"phone_number"`
}

func (PhoneConfig) Kind() ChannelType { return ChannelTypePhone }

func (PhoneConfig) Notify(ctx context.Context, target, message string) error {
	return nil
}

// Channel represents a communication channel with provider credentials.
type Channel struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Type      ChannelType        `json:"type" bson:"type"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	Config    ChannelConfig      `json:"config" bson:"config"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// ChannelUpdate is a partial update payload. A new config is decoded
// against the update's type when present, otherwise the stored type.
type ChannelUpdate struct {
	Name     *string         `json:"name,omitempty"`
	Type     *ChannelType    `json:"type,omitempty"`
	IsActive *bool           `json:"is_active,omitempty"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// DecodeJSONConfig selects the config variant for typ and unmarshals raw
// into it.
func DecodeJSONConfig(typ ChannelType, raw []byte) (ChannelConfig, error) {
	switch typ {
	case ChannelTypeEmail:
		var cfg EmailConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case ChannelTypeSocialMedia:
		var cfg SocialMediaConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case ChannelTypeChat:
		var cfg ChatConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case ChannelTypePhone:
		var cfg PhoneConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("unknown channel type %q", typ)
	}
}

func decodeBSONConfig(typ ChannelType, raw bson.Raw) (ChannelConfig, error) {
	switch typ {
	case ChannelTypeEmail:
		var cfg EmailConfig
		if err := bson.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case ChannelTypeSocialMedia:
		var cfg SocialMediaConfig
		if err := bson.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case ChannelTypeChat:
		var cfg ChatConfig
		if err := bson.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	case ChannelTypePhone:
		var cfg PhoneConfig
		if err := bson.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("unknown channel type %q", typ)
	}
}

// UnmarshalJSON decodes the config subdocument into the variant selected
// by the type tag.
func (ch *Channel) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       primitive.ObjectID `json:"id"`
		Name     string             `json:"name"`
		Type     ChannelType        `json:"type"`
		IsActive *bool              `json:"is_active"`
		Config   json.RawMessage    `json:"config"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ch.ID = raw.ID
	ch.Name = raw.Name
	ch.Type = raw.Type
	// channels are active unless explicitly disabled
	ch.IsActive = raw.IsActive == nil || *raw.IsActive

	if len(raw.Config) > 0 {
		cfg, err := DecodeJSONConfig(raw.Type, raw.Config)
		if err != nil {
			return err
		}
		ch.Config = cfg
	}
	return nil
}

// UnmarshalBSON mirrors UnmarshalJSON for documents read back from the
// store.
func (ch *Channel) UnmarshalBSON(data []byte) error {
	var raw struct {
		ID        primitive.ObjectID `bson:"_id,omitempty"`
		Name      string             `bson:"name"`
		Type      ChannelType        `bson:"type"`
		IsActive  bool               `bson:"is_active"`
		Config    bson.Raw           `bson:"config"`
		CreatedAt time.Time          `bson:"created_at"`
		UpdatedAt time.Time          `bson:"updated_at"`
	}
	if err := bson.Unmarshal(data, &raw); err != nil {
		return err
	}

	ch.ID = raw.ID
	ch.Name = raw.Name
	ch.Type = raw.Type
	ch.IsActive = raw.IsActive
	ch.CreatedAt = raw.CreatedAt
	ch.UpdatedAt = raw.UpdatedAt

	if len(raw.Config) > 0 {
		cfg, err := decodeBSONConfig(raw.Type, raw.Config)
		if err != nil {
			return err
		}
		ch.Config = cfg
	}
	return nil
}
