package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/krmu/lostfound-api/internal/model"
	"github.com/krmu/lostfound-api/internal/repository"
	"github.com/krmu/lostfound-api/shared/storage"
)

// foundItemImageFolder is the logical object-storage folder for found-item
// photos.
const foundItemImageFolder = "found-items"

// FoundItemUsecase defines the found-item use cases.
type FoundItemUsecase interface {
	CreateFoundItem(ctx context.Context, params CreateFoundItemParams) (*model.FoundItem, error)
	ListFoundItems(ctx context.Context) ([]*FoundItemDetail, error)
	MarkFoundItemReturned(ctx context.Context, id string) (*model.FoundItem, error)
	DeleteFoundItem(ctx context.Context, id string) (*model.FoundItem, error)
}

// CreateFoundItemParams defines the parameters for logging a found item.
// Image is mandatory; every found item has a photo.
type CreateFoundItemParams struct {
	ItemType      string
	Description   string
	DateFound     time.Time
	LocationFound string
	AdminID       string
	Image         []byte
}

// FoundItemDetail is a found item with its admin reference expanded.
// Admin is nil when the referenced account no longer exists.
type FoundItemDetail struct {
	model.FoundItem
	Admin *UserRef `json:"admin"`
}

var (
	ErrImageRequired     = errors.New("image file is required")
	ErrInvalidAdminID    = errors.New("invalid admin id")
	ErrAdminNotFound     = errors.New("admin not found")
	ErrFoundItemNotFound = errors.New("found item not found")
)

type foundItemUsecase struct {
	itemRepo repository.FoundItemRepository
	userRepo repository.UserRepository
	uploader storage.Uploader
}

// NewFoundItemUsecase creates a new FoundItemUsecase.
func NewFoundItemUsecase(
	itemRepo repository.FoundItemRepository,
	userRepo repository.UserRepository,
	uploader storage.Uploader,
) FoundItemUsecase {
	return &foundItemUsecase{
		itemRepo: itemRepo,
		userRepo: userRepo,
		uploader: uploader,
	}
}

// CreateFoundItem validates the admin reference, uploads the mandatory
// photo, and persists the item with is_returned unset.
func (u *foundItemUsecase) CreateFoundItem(
	ctx context.Context,
	params CreateFoundItemParams,
) (*model.FoundItem, error) {
	if len(params.Image) == 0 {
		return nil, ErrImageRequired
	}

	adminID, err := bson.ObjectIDFromHex(params.AdminID)
	if err != nil {
		return nil, ErrInvalidAdminID
	}

	if _, err := u.userRepo.GetUser(ctx, params.AdminID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAdminNotFound
		}

		return nil, err
	}

	imageURL, err := u.uploader.Upload(ctx, params.Image, foundItemImageFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return u.itemRepo.CreateFoundItem(ctx, &model.FoundItem{
		ItemType:      params.ItemType,
		ImageURL:      imageURL,
		Description:   params.Description,
		DateFound:     params.DateFound,
		LocationFound: params.LocationFound,
		Admin:         adminID,
		IsReturned:    false,
	})
}

// ListFoundItems returns every found item with admin references expanded to
// a {id, username} projection.
func (u *foundItemUsecase) ListFoundItems(ctx context.Context) ([]*FoundItemDetail, error) {
	items, err := u.itemRepo.ListFoundItems(ctx)
	if err != nil {
		return nil, err
	}

	adminIDs := make([]bson.ObjectID, 0, len(items))
	for _, item := range items {
		adminIDs = append(adminIDs, item.Admin)
	}

	admins, err := u.userRepo.GetUsersByIDs(ctx, adminIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*FoundItemDetail, 0, len(items))
	for _, item := range items {
		details = append(details, &FoundItemDetail{
			FoundItem: *item,
			Admin:     adminRef(admins[item.Admin]),
		})
	}

	return details, nil
}

func (u *foundItemUsecase) MarkFoundItemReturned(ctx context.Context, id string) (*model.FoundItem, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrFoundItemNotFound
	}

	item, err := u.itemRepo.MarkFoundItemReturned(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFoundItemNotFound
		}

		return nil, err
	}

	return item, nil
}

func (u *foundItemUsecase) DeleteFoundItem(ctx context.Context, id string) (*model.FoundItem, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrFoundItemNotFound
	}

	item, err := u.itemRepo.DeleteFoundItem(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFoundItemNotFound
		}

		return nil, err
	}

	return item, nil
}

// adminRef omits the role; the admin projection carries only id and
// username.
func adminRef(user *model.User) *UserRef {
	if user == nil {
		return nil
	}

	return &UserRef{
		ID:       user.ID,
		Username: user.Username,
	}
}
