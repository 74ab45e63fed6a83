package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dingdong-api/core/errors"
	"dingdong-api/core/params"
	authdto "dingdong-api/modules/auth/dto"
	"dingdong-api/modules/user/dto"
	"dingdong-api/modules/user/entity"
)

type fakeUserRepo struct {
	users  []entity.User
	oauths []entity.UserOauth
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUsers(_ context.Context, limit int, offset int) ([]entity.User, int, error) {
	total := len(f.users)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return f.users[offset:end], total, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	created := *user
	created.ID = f.nextID
	f.nextID++
	f.users = append(f.users, created)
	return &created, nil
}

func (f *fakeUserRepo) GetOauth(_ context.Context, provider string, accountID string) (*entity.UserOauth, error) {
	for i := range f.oauths {
		if f.oauths[i].Provider == provider && f.oauths[i].ProviderAccountID == accountID {
			o := f.oauths[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateOauth(_ context.Context, oauth *entity.UserOauth) error {
	f.oauths = append(f.oauths, *oauth)
	return nil
}

type fakeAuthService struct {
	issuedFor []int64
}

func (f *fakeAuthService) CreateTokenPair(_ context.Context, userID int64, _ bool) (*authdto.TokenResponse, *errors.AppError) {
	f.issuedFor = append(f.issuedFor, userID)
	return &authdto.TokenResponse{Token: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthService) RefreshToken(_ context.Context, _ *authdto.RefreshTokenRequest) (*authdto.TokenResponse, *errors.AppError) {
	return nil, nil
}

func (f *fakeAuthService) SendVerificationEmail(_ context.Context, _ string) *errors.AppError {
	return nil
}

func (f *fakeAuthService) VerifyEmail(_ context.Context, _ string, _ string) *errors.AppError {
	return nil
}

type fakeGoogle struct {
	profile *GoogleProfile
}

func (f *fakeGoogle) Fetch(_ context.Context, _ string) (*GoogleProfile, error) {
	return f.profile, nil
}

func newUserService(repo *fakeUserRepo) (UserServiceInterface, *fakeAuthService) {
	auth := &fakeAuthService{}
	return NewUserService(repo, auth, &fakeGoogle{}), auth
}

func TestCreateUser(t *testing.T) {
	svc, _ := newUserService(newFakeUserRepo())

	user, appErr := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:     "A@B.com",
		Password1: "secret",
		Password2: "secret",
		Username:  "alice",
	})
	require.Nil(t, appErr)
	assert.Equal(t, "a@b.com", user.Email)
	assert.NotEmpty(t, user.ProfileColor)
}

func TestCreateUser_PasswordMismatch(t *testing.T) {
	svc, _ := newUserService(newFakeUserRepo())

	_, appErr := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:     "a@b.com",
		Password1: "secret",
		Password2: "other",
		Username:  "alice",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUserPasswordMismatch, appErr.Code)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newUserService(repo)

	req := &dto.CreateUserRequest{Email: "a@b.com", Password1: "s", Password2: "s", Username: "alice"}
	_, appErr := svc.CreateUser(context.Background(), req)
	require.Nil(t, appErr)

	req.Username = "bob"
	_, appErr = svc.CreateUser(context.Background(), req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUserDuplicate, appErr.Code)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newUserService(repo)

	_, appErr := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email: "a@b.com", Password1: "s", Password2: "s", Username: "alice",
	})
	require.Nil(t, appErr)

	_, appErr = svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email: "c@d.com", Password1: "s", Password2: "s", Username: "alice",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUserDuplicate, appErr.Code)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc, auth := newUserService(repo)

	_, appErr := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email: "a@b.com", Password1: "secret", Password2: "secret", Username: "alice",
	})
	require.Nil(t, appErr)

	tokens, appErr := svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.com", Password: "secret"})
	require.Nil(t, appErr)
	assert.Equal(t, "access", tokens.Token)
	assert.Equal(t, []int64{1}, auth.issuedFor)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newUserService(repo)

	_, appErr := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email: "a@b.com", Password1: "secret", Password2: "secret", Username: "alice",
	})
	require.Nil(t, appErr)

	_, appErr = svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.com", Password: "wrong"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUserNotFound, appErr.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newUserService(newFakeUserRepo())

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@b.com", Password: "x"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUserNotFound, appErr.Code)
}

func TestOauthLogin_CreatesAndLinksUser(t *testing.T) {
	repo := newFakeUserRepo()
	auth := &fakeAuthService{}
	svc := NewUserService(repo, auth, &fakeGoogle{profile: &GoogleProfile{
		ID: "g-123", Email: "New@B.com", Name: "newbie",
	}})

	tokens, appErr := svc.OauthLogin(context.Background(), &dto.OauthLoginRequest{Code: "code"})
	require.Nil(t, appErr)
	assert.Equal(t, "access", tokens.Token)

	require.Len(t, repo.users, 1)
	assert.Equal(t, "new@b.com", repo.users[0].Email)
	require.Len(t, repo.oauths, 1)
	assert.Equal(t, "g-123", repo.oauths[0].ProviderAccountID)
}

func TestOauthLogin_ExistingLink(t *testing.T) {
	repo := newFakeUserRepo()
	created, err := repo.Create(context.Background(), &entity.User{Email: "a@b.com", Username: "alice"})
	require.NoError(t, err)
	require.NoError(t, repo.CreateOauth(context.Background(), &entity.UserOauth{
		UserID: created.ID, Provider: "google", ProviderAccountID: "g-123",
	}))

	auth := &fakeAuthService{}
	svc := NewUserService(repo, auth, &fakeGoogle{profile: &GoogleProfile{
		ID: "g-123", Email: "a@b.com", Name: "alice",
	}})

	_, appErr := svc.OauthLogin(context.Background(), &dto.OauthLoginRequest{Code: "code"})
	require.Nil(t, appErr)

	assert.Len(t, repo.users, 1, "no second account should be created")
	assert.Equal(t, []int64{created.ID}, auth.issuedFor)
}

func TestGetUserList_Pagination(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newUserService(repo)

	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.Create(context.Background(), &entity.User{Email: name + "@b.com", Username: name})
		require.NoError(t, err)
	}

	page, appErr := svc.GetUserList(context.Background(), params.QueryParams{PageNumber: 2, PageSize: 2})
	require.Nil(t, appErr)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "c", page.Users[0].Username)
}
