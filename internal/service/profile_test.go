package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"renrakuban/internal/model"
	"renrakuban/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockProfileRepo 个人资料仓库的Mock实现
type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id int64) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func strPtr(s string) *string {
	return &s
}

func TestProfileService_UpdateWithAvatar(t *testing.T) {
	repo := new(mockProfileRepo)
	store := &fakeStorage{}
	svc := NewProfileService(repo, store, logger.NewLogger("error"))

	existing := &model.Profile{
		ID:        7,
		Name:      "田中",
		AvatarURL: strPtr("https://storage.example.com/object/public/profile/7/old.png"),
	}
	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)

	var updated *model.Profile
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Profile")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*model.Profile)
		}).Return(nil)

	err := svc.Update(context.Background(), 7, "田中太郎", strPtr("大家好"), pngDataURL("avatar-bytes"))
	require.NoError(t, err)

	require.Len(t, store.uploads, 1)
	up := store.uploads[0]
	assert.Equal(t, ProfileBucket, up.bucket)
	assert.True(t, strings.HasPrefix(up.path, "7/"))
	assert.Equal(t, []byte("avatar-bytes"), up.data)

	// 旧头像尽力清理
	require.Len(t, store.removes, 1)
	assert.Equal(t, ProfileBucket, store.removes[0].bucket)
	assert.Equal(t, []string{"7/old.png"}, store.removes[0].paths)

	require.NotNil(t, updated)
	assert.Equal(t, "田中太郎", updated.Name)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, "https://storage.example.com/object/public/profile/"+up.path, *updated.AvatarURL)
}

func TestProfileService_UpdateWithoutAvatar(t *testing.T) {
	repo := new(mockProfileRepo)
	store := &fakeStorage{}
	svc := NewProfileService(repo, store, logger.NewLogger("error"))

	existing := &model.Profile{
		ID:        7,
		Name:      "田中",
		AvatarURL: strPtr("https://storage.example.com/object/public/profile/7/old.png"),
	}
	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)

	var updated *model.Profile
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Profile")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*model.Profile)
		}).Return(nil)

	err := svc.Update(context.Background(), 7, "田中太郎", nil, "")
	require.NoError(t, err)

	assert.Empty(t, store.uploads)
	assert.Empty(t, store.removes)

	require.NotNil(t, updated)
	assert.Equal(t, "田中太郎", updated.Name)
	assert.Nil(t, updated.Introduce)
	// 未提交新头像时沿用原头像引用
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, "https://storage.example.com/object/public/profile/7/old.png", *updated.AvatarURL)
}

func TestProfileService_UpdateFirstAvatar(t *testing.T) {
	repo := new(mockProfileRepo)
	store := &fakeStorage{}
	svc := NewProfileService(repo, store, logger.NewLogger("error"))

	// 尚无头像的资料
	existing := &model.Profile{ID: 7, Name: "田中"}
	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	err := svc.Update(context.Background(), 7, "田中", nil, pngDataURL("x"))
	require.NoError(t, err)

	require.Len(t, store.uploads, 1)
	assert.Empty(t, store.removes, "没有旧头像时不应发起删除")
}

func TestProfileService_UpdateMalformedAvatar(t *testing.T) {
	repo := new(mockProfileRepo)
	store := &fakeStorage{}
	svc := NewProfileService(repo, store, logger.NewLogger("error"))

	existing := &model.Profile{ID: 7, Name: "田中"}
	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)

	err := svc.Update(context.Background(), 7, "田中", nil, "data:bad")
	assert.ErrorIs(t, err, ErrInvalidImage)

	assert.Empty(t, store.uploads)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_GetNotFound(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := NewProfileService(repo, &fakeStorage{}, logger.NewLogger("error"))

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

	profile, err := svc.Get(context.Background(), 99)
	assert.Nil(t, profile)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
