package connect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjail3/fyndly-backend/internal/domain"
)

type fakeRequestRepo struct {
	requests []*domain.ConnectionRequest
}

func (f *fakeRequestRepo) Create(ctx context.Context, request *domain.ConnectionRequest) error {
	request.ID = len(f.requests) + 1
	request.CreatedAt = time.Now()
	f.requests = append(f.requests, request)
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id int) (*domain.ConnectionRequest, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (f *fakeRequestRepo) GetByUsers(ctx context.Context, senderID, receiverID int) (*domain.ConnectionRequest, error) {
	for _, r := range f.requests {
		if r.SenderID == senderID && r.ReceiverID == receiverID {
			return r, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (f *fakeRequestRepo) ListForUser(ctx context.Context, userID int) ([]*domain.ConnectionRequest, error) {
	var out []*domain.ConnectionRequest
	for _, r := range f.requests {
		if r.HasUser(userID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id int, status domain.RequestStatus) error {
	for _, r := range f.requests {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return domain.ErrRequestNotFound
}

type fakeMatchRepo struct {
	matches []*domain.Match
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *domain.Match) error {
	match.ID = len(f.matches) + 1
	f.matches = append(f.matches, match)
	return nil
}

func (f *fakeMatchRepo) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	return nil, domain.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListForUser(ctx context.Context, userID int) ([]*domain.Match, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	profiles map[int]*domain.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *domain.Profile) error { return nil }

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *domain.Profile) error { return nil }

func (f *fakeProfileRepo) UpdateEmbedding(ctx context.Context, userID int, embedding []float64) error {
	return nil
}

func (f *fakeProfileRepo) ListComplete(ctx context.Context) ([]*domain.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) ListByUserIDs(ctx context.Context, userIDs []int) ([]*domain.Profile, error) {
	return nil, nil
}

func newFixture() (*UseCase, *fakeRequestRepo, *fakeMatchRepo) {
	requestRepo := &fakeRequestRepo{}
	matchRepo := &fakeMatchRepo{}
	profiles := map[int]*domain.Profile{
		1: {ID: 1, UserID: 1, DisplayName: "alice"},
		2: {ID: 2, UserID: 2, DisplayName: "bob"},
	}
	uc := NewUseCase(requestRepo, matchRepo, &fakeProfileRepo{profiles: profiles})
	return uc, requestRepo, matchRepo
}

func TestSendRequestRejectsSelf(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.SendRequest(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrCannotRequestSelf)
}

func TestSendRequestUnknownReceiver(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.SendRequest(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestSendRequestCreatesPending(t *testing.T) {
	uc, _, _ := newFixture()

	request, err := uc.SendRequest(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, request.Status)
	assert.Equal(t, 1, request.SenderID)
	assert.Equal(t, 2, request.ReceiverID)
}

func TestSendRequestBlocksEitherDirection(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.SendRequest(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = uc.SendRequest(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyExists)

	_, err = uc.SendRequest(context.Background(), 2, 1)
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyExists)
}

func TestRespondOnlyReceiver(t *testing.T) {
	uc, _, _ := newFixture()
	request, err := uc.SendRequest(context.Background(), 1, 2)
	require.NoError(t, err)

	// The sender cannot respond to their own request.
	_, err = uc.Respond(context.Background(), 1, request.ID, true)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestRespondAcceptCreatesMatch(t *testing.T) {
	uc, _, matchRepo := newFixture()
	request, err := uc.SendRequest(context.Background(), 1, 2)
	require.NoError(t, err)

	updated, err := uc.Respond(context.Background(), 2, request.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, updated.Status)
	require.Len(t, matchRepo.matches, 1)
	assert.True(t, matchRepo.matches[0].HasUser(1))
	assert.True(t, matchRepo.matches[0].HasUser(2))
}

func TestRespondRejectNoMatch(t *testing.T) {
	uc, _, matchRepo := newFixture()
	request, err := uc.SendRequest(context.Background(), 1, 2)
	require.NoError(t, err)

	updated, err := uc.Respond(context.Background(), 2, request.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, updated.Status)
	assert.Empty(t, matchRepo.matches)
}

func TestRespondOnlyOnce(t *testing.T) {
	uc, _, _ := newFixture()
	request, err := uc.SendRequest(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 2, request.ID, false)
	require.NoError(t, err)

	_, err = uc.Respond(context.Background(), 2, request.ID, true)
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyExists)
}

func TestListForUserShowsOtherSide(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.SendRequest(context.Background(), 1, 2)
	require.NoError(t, err)

	views, err := uc.ListForUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "alice", views[0].User.DisplayName)
}
