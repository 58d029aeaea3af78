package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/store"
)

func registeredUser(t *testing.T, st store.Store, username, password string) uint {
	t.Helper()
	auth := NewAuthService(st, testConfig(time.Hour))
	user, _, err := auth.Register(&dto.RegisterRequest{
		Username: username, Email: username + "@x.com", Password: password,
	})
	require.NoError(t, err)
	return user.ID
}

func strptr(s string) *string { return &s }

func TestUpdateProfileUniqueness(t *testing.T) {
	st := mustStore(t)
	svc := NewUserService(st)
	aliceID := registeredUser(t, st, "alice", "secret1")
	registeredUser(t, st, "bob", "secret1")

	_, err := svc.UpdateProfile(aliceID, &dto.UpdateProfileRequest{Username: strptr("bob")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.UpdateProfile(aliceID, &dto.UpdateProfileRequest{Email: strptr("bob@x.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting your own identity is not a conflict.
	user, err := svc.UpdateProfile(aliceID, &dto.UpdateProfileRequest{
		Username: strptr("alice"),
		Bio:      strptr("taco enthusiast"),
	})
	require.NoError(t, err)
	assert.Equal(t, "taco enthusiast", user.Bio)

	user, err = svc.UpdateProfile(aliceID, &dto.UpdateProfileRequest{Username: strptr("alicia")})
	require.NoError(t, err)
	assert.Equal(t, "alicia", user.Username)

	_, err = svc.UpdateProfile(999, &dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	st := mustStore(t)
	svc := NewUserService(st)
	auth := NewAuthService(st, testConfig(time.Hour))
	aliceID := registeredUser(t, st, "alice", "secret1")

	assert.ErrorIs(t, svc.ChangePassword(aliceID, "wrong", "newsecret"), ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(aliceID, "secret1", "newsecret"))

	_, _, err := auth.Login(&dto.LoginRequest{Identifier: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login(&dto.LoginRequest{Identifier: "alice", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestDeleteAccountCascades(t *testing.T) {
	st := mustStore(t)
	users := NewUserService(st)
	eateries := NewEateryService(st)
	aliceID := registeredUser(t, st, "alice", "secret1")
	bobID := registeredUser(t, st, "bob", "secret1")

	_, mineReview, _, err := eateries.CreateSubmission(aliceID, submission("Mine", "1 A St"))
	require.NoError(t, err)
	theirs, _, _, err := eateries.CreateSubmission(bobID, submission("Theirs", "2 B St"))
	require.NoError(t, err)

	// Alice reviews Bob's eatery too.
	_, err = eateries.CreateReview(aliceID, &dto.ReviewRequest{
		EateryID: theirs.ID, Type: "Restaurant", Cuisine: "Mexican", Rating: 2, Price: "$",
	})
	require.NoError(t, err)

	require.NoError(t, users.DeleteAccount(aliceID))

	_, err = st.UserByID(aliceID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	listed, err := eateries.List(0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, theirs.ID, listed[0].ID)

	// Alice's review on Bob's eatery is gone; Bob's own review remains.
	remaining, err := eateries.ReviewsByEatery(theirs.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, bobID, remaining[0].UserID)

	_, err = st.ReviewByID(mineReview.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, users.DeleteAccount(aliceID), ErrUserNotFound)
}

func TestStats(t *testing.T) {
	st := mustStore(t)
	users := NewUserService(st)
	eateries := NewEateryService(st)
	aliceID := registeredUser(t, st, "alice", "secret1")
	bobID := registeredUser(t, st, "bob", "secret1")

	empty, err := users.Stats(aliceID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.Zero(t, empty.AverageRating)

	vegan := submission("V", "1 A St")
	vegan.Rating = 5
	_, _, _, err = eateries.CreateSubmission(aliceID, vegan)
	require.NoError(t, err)

	meaty := submission("M", "2 B St")
	meaty.Rating = 2
	meaty.DietaryOptions.Vegan = false
	_, _, _, err = eateries.CreateSubmission(aliceID, meaty)
	require.NoError(t, err)

	// Bob's eateries must not leak into Alice's stats.
	_, _, _, err = eateries.CreateSubmission(bobID, submission("B", "3 C St"))
	require.NoError(t, err)

	stats, err := users.Stats(aliceID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 3.5, stats.AverageRating, 0.001)
	assert.Equal(t, 1, stats.VeganCount)
}
