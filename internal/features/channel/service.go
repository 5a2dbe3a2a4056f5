package channel

import (
	"context"
	"errors"
	"time"

	"go-support/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ChannelService interface {
	Create(ctx context.Context, channel *Channel) (*Channel, error)
	Get(ctx context.Context, id string) (*Channel, error)
	FindBy(ctx context.Context, key, value string) (*Channel, error)
	Update(ctx context.Context, id string, update *ChannelUpdate) (*Channel, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ChannelServiceImpl struct {
	Repo ChannelRepository
}

func NewChannelService(repo ChannelRepository) ChannelService {
	return &ChannelServiceImpl{Repo: repo}
}

func (s *ChannelServiceImpl) Create(ctx context.Context, channel *Channel) (*Channel, error) {
	if channel.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	if channel.Config == nil {
		return nil, apperr.Validation("config", "config is required")
	}

	now := time.Now()
	channel.CreatedAt = now
	channel.UpdatedAt = now

	if err := s.Repo.Insert(ctx, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

func (s *ChannelServiceImpl) Get(ctx context.Context, id string) (*Channel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("id", id)
	}

	channel, err := s.Repo.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("channel", id)
	}
	if err != nil {
		return nil, err
	}
	return channel, nil
}

// FindBy returns nil without error when nothing matches; callers use it
// for best-effort lookups like contact-type routing.
func (s *ChannelServiceImpl) FindBy(ctx context.Context, key, value string) (*Channel, error) {
	channel, err := s.Repo.FindBy(ctx, key, value)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return channel, nil
}

func (s *ChannelServiceImpl) Update(ctx context.Context, id string, update *ChannelUpdate) (*Channel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("id", id)
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}
	if len(update.Config) > 0 {
		// The config variant is keyed by type: use the update's type when
		// given, otherwise the stored one.
		typ := update.Type
		if typ == nil {
			existing, err := s.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			typ = &existing.Type
		}
		cfg, err := DecodeJSONConfig(*typ, update.Config)
		if err != nil {
			return nil, apperr.Validation("config", err.Error())
		}
		set["config"] = cfg
	}

	channel, err := s.Repo.Update(ctx, oid, set)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("channel", id)
	}
	if err != nil {
		return nil, err
	}
	return channel, nil
}

func (s *ChannelServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperr.InvalidID("id", id)
	}

	deleted, err := s.Repo.Delete(ctx, oid)
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}
