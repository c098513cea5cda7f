// Package testutil provides in-memory fakes for the repository, mailer and
// object-storage boundaries so handler and usecase tests run without
// MongoDB, SMTP or Cloudinary.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/krmu/lostfound-api/internal/model"
)

// duplicateKeyErr mimics the server-side unique index violation.
func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

// FakeUserRepo is an in-memory repository.UserRepository.
type FakeUserRepo struct {
	mu    sync.Mutex
	users map[bson.ObjectID]*model.User
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{users: make(map[bson.ObjectID]*model.User)}
}

func (r *FakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, duplicateKeyErr()
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone
	return user, nil
}

func (r *FakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	clone := *user
	return &clone, nil
}

func (r *FakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *FakeUserRepo) GetUsersByIDs(
	_ context.Context,
	ids []bson.ObjectID,
) (map[bson.ObjectID]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[bson.ObjectID]*model.User, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			clone := *user
			out[id] = &clone
		}
	}

	return out, nil
}

// StoredHash returns the password hash persisted for username.
func (r *FakeUserRepo) StoredHash(username string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			return user.PasswordHash
		}
	}

	return ""
}

// FakeComplaintRepo is an in-memory repository.ComplaintRepository.
type FakeComplaintRepo struct {
	mu         sync.Mutex
	complaints map[bson.ObjectID]*model.Complaint
}

func NewFakeComplaintRepo() *FakeComplaintRepo {
	return &FakeComplaintRepo{complaints: make(map[bson.ObjectID]*model.Complaint)}
}

func (r *FakeComplaintRepo) CreateComplaint(
	_ context.Context,
	complaint *model.Complaint,
) (*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	complaint.ID = bson.NewObjectID()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now

	clone := *complaint
	r.complaints[complaint.ID] = &clone
	return complaint, nil
}

func (r *FakeComplaintRepo) GetComplaint(_ context.Context, id string) (*model.Complaint, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	complaint, ok := r.complaints[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	clone := *complaint
	return &clone, nil
}

func (r *FakeComplaintRepo) ListComplaints(_ context.Context) ([]*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Complaint, 0, len(r.complaints))
	for _, complaint := range r.complaints {
		clone := *complaint
		out = append(out, &clone)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *FakeComplaintRepo) UpdateComplaintStatus(
	_ context.Context,
	id string,
	status model.ComplaintStatus,
) (*model.Complaint, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	complaint, ok := r.complaints[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	complaint.Status = status
	complaint.UpdatedAt = time.Now()

	clone := *complaint
	return &clone, nil
}

func (r *FakeComplaintRepo) DeleteComplaint(_ context.Context, id string) (*model.Complaint, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	complaint, ok := r.complaints[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.complaints, objectID)
	return complaint, nil
}

// Count returns the number of stored complaints.
func (r *FakeComplaintRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.complaints)
}

// FakeFoundItemRepo is an in-memory repository.FoundItemRepository.
type FakeFoundItemRepo struct {
	mu    sync.Mutex
	items map[bson.ObjectID]*model.FoundItem
}

func NewFakeFoundItemRepo() *FakeFoundItemRepo {
	return &FakeFoundItemRepo{items: make(map[bson.ObjectID]*model.FoundItem)}
}

func (r *FakeFoundItemRepo) CreateFoundItem(
	_ context.Context,
	item *model.FoundItem,
) (*model.FoundItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	item.ID = bson.NewObjectID()
	item.CreatedAt = now
	item.UpdatedAt = now

	clone := *item
	r.items[item.ID] = &clone
	return item, nil
}

func (r *FakeFoundItemRepo) ListFoundItems(_ context.Context) ([]*model.FoundItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.FoundItem, 0, len(r.items))
	for _, item := range r.items {
		clone := *item
		out = append(out, &clone)
	}

	return out, nil
}

func (r *FakeFoundItemRepo) MarkFoundItemReturned(_ context.Context, id string) (*model.FoundItem, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	item.IsReturned = true
	item.UpdatedAt = time.Now()

	clone := *item
	return &clone, nil
}

func (r *FakeFoundItemRepo) DeleteFoundItem(_ context.Context, id string) (*model.FoundItem, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.items, objectID)
	return item, nil
}

// Count returns the number of stored items.
func (r *FakeFoundItemRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// SentEmail records one dispatched message.
type SentEmail struct {
	To        string
	Subject   string
	HTML      string
	MessageID string
}

// SpySender is a mailer.Sender that records sends and can be told to fail
// for specific recipients.
type SpySender struct {
	mu     sync.Mutex
	sent   []SentEmail
	FailTo map[string]error
}

func NewSpySender() *SpySender {
	return &SpySender{FailTo: make(map[string]error)}
}

func (s *SpySender) SendHTML(to, subject, htmlBody string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.FailTo[to]; ok {
		return "", err
	}

	messageID := fmt.Sprintf("<test-%d@lostfound-api>", len(s.sent)+1)
	s.sent = append(s.sent, SentEmail{
		To:        to,
		Subject:   subject,
		HTML:      htmlBody,
		MessageID: messageID,
	})

	return messageID, nil
}

// Sent returns a copy of the recorded sends.
func (s *SpySender) Sent() []SentEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentEmail(nil), s.sent...)
}

// Calls returns how many sends succeeded.
func (s *SpySender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

// UploadCall records one storage upload.
type UploadCall struct {
	Size   int
	Folder string
}

// SpyUploader is a storage.Uploader that records uploads.
type SpyUploader struct {
	mu    sync.Mutex
	calls []UploadCall
	URL   string
	Err   error
}

func NewSpyUploader() *SpyUploader {
	return &SpyUploader{URL: "https://res.cloudinary.com/demo/image/upload/v1/test.jpg"}
}

func (u *SpyUploader) Upload(_ context.Context, data []byte, folder string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Err != nil {
		return "", u.Err
	}

	u.calls = append(u.calls, UploadCall{Size: len(data), Folder: folder})
	return u.URL, nil
}

// Uploads returns a copy of the recorded calls.
func (u *SpyUploader) Uploads() []UploadCall {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]UploadCall(nil), u.calls...)
}

// Calls returns how many uploads were attempted successfully.
func (u *SpyUploader) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}
