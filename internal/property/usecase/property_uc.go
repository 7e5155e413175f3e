package usecase

import (
	"context"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
)

// PropertyCache keeps assembled detail DTOs close to the readers. Misses
// return (nil, nil).
type PropertyCache interface {
	GetProperty(ctx context.Context, propertyID string) (*domain.PropertyDto, error)
	SetProperty(ctx context.Context, dto *domain.PropertyDto) error
	DeleteProperty(ctx context.Context, propertyID string) error
}

// EventPublisher emits property lifecycle events for downstream services.
type EventPublisher interface {
	PublishPropertyCreated(ctx context.Context, propertyID, userID string) error
	PublishPropertyUpdated(ctx context.Context, propertyID, userID string) error
}

// OwnerNotifier sends the listing-published confirmation email.
type OwnerNotifier interface {
	SendPropertyCreated(toEmail, propertyID string) error
}

// EmailFinder resolves a user id to the owner's email address.
type EmailFinder interface {
	GetEmailByID(ctx context.Context, userID string) (string, error)
}

// PropertyUsecase is the write side of the listing facade: add and update
// with ownership enforcement, photo signature verification ahead of any
// write, and best-effort notifications after commit.
type PropertyUsecase struct {
	repo      domain.PropertyRepository
	verifier  domain.UploadVerifier
	publisher EventPublisher
	cache     PropertyCache
	users     EmailFinder
	notifier  OwnerNotifier
	logger    *logger.Logger
}

func NewPropertyUsecase(
	repo domain.PropertyRepository,
	verifier domain.UploadVerifier,
	publisher EventPublisher,
	cache PropertyCache,
	users EmailFinder,
	notifier OwnerNotifier,
	log *logger.Logger,
) *PropertyUsecase {
	return &PropertyUsecase{
		repo:      repo,
		verifier:  verifier,
		publisher: publisher,
		cache:     cache,
		users:     users,
		notifier:  notifier,
		logger:    log,
	}
}

// AddProperty validates every photo signature before touching storage,
// then creates the full aggregate in one transaction. Event publishing
// and the confirmation email run after commit and never fail the request.
func (uc *PropertyUsecase) AddProperty(ctx context.Context, userID string, payload *domain.PropertyPayload) (domain.MessageResponse, error) {
	for _, photo := range payload.Photos {
		if !uc.verifier.IsUploadOk(photo.ImageID, photo.Version, photo.Signature) {
			uc.logger.Warn("AddProperty: rejected photo with invalid signature", "user_id", userID, "image_id", photo.ImageID)
			return domain.MessageResponse{}, domain.ErrInvalidUpload
		}
	}

	propertyID, err := uc.repo.Create(ctx, userID, payload)
	if err != nil {
		return domain.MessageResponse{}, err
	}
	uc.logger.Info("AddProperty: property created", "property_id", propertyID, "user_id", userID)

	if err := uc.publisher.PublishPropertyCreated(ctx, propertyID, userID); err != nil {
		uc.logger.Error("AddProperty: failed to publish created event", "property_id", propertyID, "error", err.Error())
	}
	uc.notifyOwner(ctx, userID, propertyID)

	return domain.MessageResponse{Message: "Property added successfully"}, nil
}

// UpdateProperty loads the stored identifier pre-image, enforces that the
// caller owns the listing, then mutates every sub-entity in place.
func (uc *PropertyUsecase) UpdateProperty(ctx context.Context, userID string, payload *domain.PropertyPayload) (domain.MessageResponse, error) {
	refs, err := uc.repo.FindRefs(ctx, payload.PropertyID)
	if err != nil {
		return domain.MessageResponse{}, err
	}
	if refs.UserID != userID {
		uc.logger.Warn("UpdateProperty: ownership check failed", "property_id", payload.PropertyID, "user_id", userID, "owner_id", refs.UserID)
		return domain.MessageResponse{}, domain.ErrForbidden
	}

	if err := uc.repo.Update(ctx, refs, payload); err != nil {
		return domain.MessageResponse{}, err
	}
	uc.logger.Info("UpdateProperty: property updated", "property_id", payload.PropertyID, "user_id", userID)

	if err := uc.cache.DeleteProperty(ctx, payload.PropertyID); err != nil {
		uc.logger.Error("UpdateProperty: failed to invalidate cache", "property_id", payload.PropertyID, "error", err.Error())
	}
	if err := uc.publisher.PublishPropertyUpdated(ctx, payload.PropertyID, userID); err != nil {
		uc.logger.Error("UpdateProperty: failed to publish updated event", "property_id", payload.PropertyID, "error", err.Error())
	}

	return domain.MessageResponse{Message: "Property updated successfully"}, nil
}

func (uc *PropertyUsecase) notifyOwner(ctx context.Context, userID, propertyID string) {
	email, err := uc.users.GetEmailByID(ctx, userID)
	if err != nil {
		uc.logger.Error("notifyOwner: failed to resolve owner email", "user_id", userID, "error", err.Error())
		return
	}
	if err := uc.notifier.SendPropertyCreated(email, propertyID); err != nil {
		uc.logger.Error("notifyOwner: failed to send confirmation email", "user_id", userID, "error", err.Error())
	}
}
