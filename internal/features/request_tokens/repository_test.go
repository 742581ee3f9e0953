package request_tokens

import (
	"os"
	"sync"
	"testing"
	"time"

	users_models "trailiva-backend/internal/features/users/models"
	"trailiva-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createDbUser inserts a user row for tokens to reference and removes it,
// with its tokens, when the test ends.
func createDbUser(t *testing.T) *users_models.User {
	t.Helper()

	if os.Getenv("DATABASE_DSN") == "" {
		t.Skip("DATABASE_DSN is not set")
	}

	user := &users_models.User{
		ID:             uuid.New(),
		Name:           "Token Owner",
		Email:          uuid.NewString() + "@x.com",
		HashedPassword: "x",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, storage.GetDb().Create(user).Error)

	t.Cleanup(func() {
		storage.GetDb().Delete(&users_models.User{}, "id = ?", user.ID)
	})

	return user
}

func newDbToken(userID uuid.UUID, expiresAt time.Time) *RequestToken {
	return &RequestToken{
		ID:        uuid.New(),
		Token:     uuid.NewString(),
		UserID:    userID,
		TokenType: TokenTypeUserVerification,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
}

func Test_GormRepository_ClaimReturnsTokenOnce(t *testing.T) {
	user := createDbUser(t)
	repository := &GormRequestTokenRepository{}

	token := newDbToken(user.ID, time.Now().UTC().Add(time.Hour))
	require.NoError(t, repository.Create(token))

	wrongType, err := repository.Claim(token.Token, TokenTypeTaskRequest)
	require.NoError(t, err)
	assert.Nil(t, wrongType)

	found, err := repository.FindByToken(token.Token, TokenTypeUserVerification)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, token.ID, found.ID)

	claimed, err := repository.Claim(token.Token, TokenTypeUserVerification)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, token.ID, claimed.ID)
	assert.Equal(t, user.ID, claimed.UserID)
	assert.Nil(t, claimed.WorkspaceID)

	again, err := repository.Claim(token.Token, TokenTypeUserVerification)
	require.NoError(t, err)
	assert.Nil(t, again)

	found, err = repository.FindByToken(token.Token, TokenTypeUserVerification)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func Test_GormRepository_ConcurrentClaims_OnlyOneWins(t *testing.T) {
	user := createDbUser(t)
	repository := &GormRequestTokenRepository{}

	token := newDbToken(user.ID, time.Now().UTC().Add(time.Hour))
	require.NoError(t, repository.Create(token))

	const claimers = 10

	var wg sync.WaitGroup
	results := make(chan *RequestToken, claimers)
	errs := make(chan error, claimers)

	for range claimers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			claimed, err := repository.Claim(token.Token, TokenTypeUserVerification)
			if err != nil {
				errs <- err
				return
			}
			results <- claimed
		}()
	}

	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	winners := 0
	for claimed := range results {
		if claimed != nil {
			winners++
			assert.Equal(t, token.ID, claimed.ID)
		}
	}
	assert.Equal(t, 1, winners)
}

func Test_GormRepository_DeleteExpired_KeepsLiveTokens(t *testing.T) {
	user := createDbUser(t)
	repository := &GormRequestTokenRepository{}
	now := time.Now().UTC()

	expired := newDbToken(user.ID, now.Add(-time.Minute))
	live := newDbToken(user.ID, now.Add(time.Hour))
	require.NoError(t, repository.Create(expired))
	require.NoError(t, repository.Create(live))

	deleted, err := repository.DeleteExpired(now)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	found, err := repository.FindByToken(expired.Token, TokenTypeUserVerification)
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repository.FindByToken(live.Token, TokenTypeUserVerification)
	require.NoError(t, err)
	assert.NotNil(t, found)
}
