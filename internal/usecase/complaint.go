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

// complaintPhotoFolder is the logical object-storage folder for report
// attachments.
const complaintPhotoFolder = "complaints"

// ComplaintUsecase defines the lost-item report use cases.
type ComplaintUsecase interface {
	CreateComplaint(ctx context.Context, params CreateComplaintParams) (*model.Complaint, error)
	ListComplaints(ctx context.Context) ([]*ComplaintDetail, error)
	GetComplaint(ctx context.Context, id string) (*ComplaintDetail, error)
	UpdateComplaintStatus(ctx context.Context, id string, status model.ComplaintStatus) (*model.Complaint, error)
	DeleteComplaint(ctx context.Context, id string) (*model.Complaint, error)
}

// CreateComplaintParams defines the parameters for a new report. Photo is
// nil when the student attached nothing.
type CreateComplaintParams struct {
	ProductType   string
	DateLost      time.Time
	LastKnownSpot string
	Description   string
	StudentID     string
	Photo         []byte
}

// UserRef is the reduced projection used when a document's owner reference
// is expanded.
type UserRef struct {
	ID       bson.ObjectID `json:"id"`
	Username string        `json:"username"`
	Role     model.Role    `json:"role,omitempty"`
}

// ComplaintDetail is a complaint with its student reference expanded.
// Student is nil when the referenced account no longer exists.
type ComplaintDetail struct {
	model.Complaint
	Student *UserRef `json:"student"`
}

var (
	ErrInvalidStudentID  = errors.New("invalid student id")
	ErrStudentNotFound   = errors.New("student not found")
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrInvalidStatus     = errors.New("invalid status value")
)

type complaintUsecase struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
	uploader      storage.Uploader
}

// NewComplaintUsecase creates a new ComplaintUsecase.
func NewComplaintUsecase(
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	uploader storage.Uploader,
) ComplaintUsecase {
	return &complaintUsecase{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		uploader:      uploader,
	}
}

// CreateComplaint validates the student reference, uploads the photo when
// one was attached, and persists the report. An upload failure aborts the
// operation before any document is written.
func (u *complaintUsecase) CreateComplaint(
	ctx context.Context,
	params CreateComplaintParams,
) (*model.Complaint, error) {
	studentID, err := bson.ObjectIDFromHex(params.StudentID)
	if err != nil {
		return nil, ErrInvalidStudentID
	}

	if _, err := u.userRepo.GetUser(ctx, params.StudentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStudentNotFound
		}

		return nil, err
	}

	var photoURL string
	if len(params.Photo) > 0 {
		photoURL, err = u.uploader.Upload(ctx, params.Photo, complaintPhotoFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
	}

	return u.complaintRepo.CreateComplaint(ctx, &model.Complaint{
		ProductType:   params.ProductType,
		DateLost:      params.DateLost,
		LastKnownSpot: params.LastKnownSpot,
		Description:   params.Description,
		PhotoURL:      photoURL,
		Student:       studentID,
		Status:        model.StatusPending,
	})
}

// ListComplaints returns every report, newest first, with student
// references expanded.
func (u *complaintUsecase) ListComplaints(ctx context.Context) ([]*ComplaintDetail, error) {
	complaints, err := u.complaintRepo.ListComplaints(ctx)
	if err != nil {
		return nil, err
	}

	studentIDs := make([]bson.ObjectID, 0, len(complaints))
	for _, c := range complaints {
		studentIDs = append(studentIDs, c.Student)
	}

	students, err := u.userRepo.GetUsersByIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*ComplaintDetail, 0, len(complaints))
	for _, c := range complaints {
		details = append(details, &ComplaintDetail{
			Complaint: *c,
			Student:   studentRef(students[c.Student]),
		})
	}

	return details, nil
}

func (u *complaintUsecase) GetComplaint(ctx context.Context, id string) (*ComplaintDetail, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrComplaintNotFound
	}

	complaint, err := u.complaintRepo.GetComplaint(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrComplaintNotFound
		}

		return nil, err
	}

	student, err := u.userRepo.GetUser(ctx, complaint.Student.Hex())
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return &ComplaintDetail{
		Complaint: *complaint,
		Student:   studentRef(student),
	}, nil
}

func (u *complaintUsecase) UpdateComplaintStatus(
	ctx context.Context,
	id string,
	status model.ComplaintStatus,
) (*model.Complaint, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrComplaintNotFound
	}

	complaint, err := u.complaintRepo.UpdateComplaintStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrComplaintNotFound
		}

		return nil, err
	}

	return complaint, nil
}

func (u *complaintUsecase) DeleteComplaint(ctx context.Context, id string) (*model.Complaint, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrComplaintNotFound
	}

	complaint, err := u.complaintRepo.DeleteComplaint(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrComplaintNotFound
		}

		return nil, err
	}

	return complaint, nil
}

func studentRef(user *model.User) *UserRef {
	if user == nil {
		return nil
	}

	return &UserRef{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}
