package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	return s, dir
}

func TestUserCRUDAndPersistence(t *testing.T) {
	s, dir := openStore(t)

	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "$2a$10$hashhashhashhashhashha",
		Bio:      "likes tacos",
	}
	require.NoError(t, s.CreateUser(user))
	assert.Equal(t, uint(1), user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	second := &models.User{Username: "bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, s.CreateUser(second))
	assert.Equal(t, uint(2), second.ID)

	byName, err := s.UserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := s.UserByEmail("bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, second.ID, byEmail.ID)

	_, err = s.UserByID(99)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The password hash must survive a process restart even though the API
	// model hides it from JSON.
	reopened, err := Open(dir)
	require.NoError(t, err)
	loaded, err := reopened.UserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Password, loaded.Password)
	assert.Equal(t, "likes tacos", loaded.Bio)
}

func TestUserUpdateAndDelete(t *testing.T) {
	s, _ := openStore(t)

	user := &models.User{Username: "carol", Email: "carol@example.com", Password: "x"}
	require.NoError(t, s.CreateUser(user))

	user.Bio = "updated"
	require.NoError(t, s.UpdateUser(user))

	loaded, err := s.UserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", loaded.Bio)

	require.NoError(t, s.DeleteUser(user.ID))
	assert.ErrorIs(t, s.DeleteUser(user.ID), store.ErrNotFound)
}

func TestEateryIDsAreMaxPlusOne(t *testing.T) {
	s, _ := openStore(t)

	a := &models.Eatery{Name: "A", Address: "1 A St", Type: "Restaurant", Cuisine: "Mexican", Rating: 4, Price: "$", UserID: 1}
	b := &models.Eatery{Name: "B", Address: "2 B St", Type: "Cafe", Cuisine: "Coffee", Rating: 5, Price: "$$", UserID: 1}
	require.NoError(t, s.CreateEatery(a))
	require.NoError(t, s.CreateEatery(b))
	assert.Equal(t, uint(1), a.ID)
	assert.Equal(t, uint(2), b.ID)

	// Ids follow max-existing+1, so deleting the max frees its id.
	require.NoError(t, s.DeleteEatery(b.ID))
	c := &models.Eatery{Name: "C", Address: "3 C St", Type: "Bar", Cuisine: "Pub", Rating: 3, Price: "$", UserID: 2}
	require.NoError(t, s.CreateEatery(c))
	assert.Equal(t, uint(2), c.ID)
}

func TestEateryByAddressMatchesNormalized(t *testing.T) {
	s, _ := openStore(t)

	e := &models.Eatery{Name: "Taco Spot", Address: "123 Main St", Type: "Restaurant", Cuisine: "Mexican", Rating: 4, Price: "$", UserID: 1}
	require.NoError(t, s.CreateEatery(e))

	found, err := s.EateryByAddress(models.NormalizeAddress("123 main st "))
	require.NoError(t, err)
	assert.Equal(t, e.ID, found.ID)

	_, err = s.EateryByAddress(models.NormalizeAddress("124 Main St"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEateriesListNewestFirstAndOwnerFilter(t *testing.T) {
	s, _ := openStore(t)

	for i, owner := range []uint{1, 2, 1} {
		e := &models.Eatery{Name: "E", Address: "addr", Type: "Restaurant", Cuisine: "x", Rating: i, Price: "$", UserID: owner}
		require.NoError(t, s.CreateEatery(e))
	}

	all, err := s.Eateries(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Same-instant creations fall back to id descending.
	assert.Equal(t, uint(3), all[0].ID)
	assert.Equal(t, uint(1), all[2].ID)

	mine, err := s.Eateries(1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, e := range mine {
		assert.Equal(t, uint(1), e.UserID)
	}
}

func TestEateryDietaryOptionsRoundTrip(t *testing.T) {
	s, dir := openStore(t)

	e := &models.Eatery{
		Name: "Vegan Place", Address: "9 V St", Type: "Restaurant", Cuisine: "Vegan",
		Rating: 5, Price: "$$", UserID: 1,
		DietaryOptions: datatypes.NewJSONType(models.DietaryOptions{Vegan: true, GlutenFree: true}),
		Images:         datatypes.NewJSONSlice([]string{"a.jpg"}),
		Coordinates:    datatypes.NewJSONType(&models.Coordinates{Lat: 37.77, Lng: -122.41}),
	}
	require.NoError(t, s.CreateEatery(e))

	reopened, err := Open(dir)
	require.NoError(t, err)
	loaded, err := reopened.EateryByID(e.ID)
	require.NoError(t, err)

	opts := loaded.DietaryOptions.Data()
	assert.True(t, opts.Vegan)
	assert.True(t, opts.GlutenFree)
	assert.False(t, opts.NutFree)
	assert.Equal(t, []string{"a.jpg"}, []string(loaded.Images))
	require.NotNil(t, loaded.Coordinates.Data())
	assert.InDelta(t, 37.77, loaded.Coordinates.Data().Lat, 0.001)
}

func TestReviewCascades(t *testing.T) {
	s, _ := openStore(t)

	mk := func(eateryID, userID uint) *models.Review {
		r := &models.Review{EateryID: eateryID, UserID: userID, Type: "Restaurant", Cuisine: "x", Rating: 3, Price: "$"}
		require.NoError(t, s.CreateReview(r))
		return r
	}
	mk(1, 1)
	mk(1, 2)
	mk(2, 1)

	byEatery, err := s.ReviewsByEatery(1)
	require.NoError(t, err)
	assert.Len(t, byEatery, 2)

	byUser, err := s.ReviewsByUser(1)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	require.NoError(t, s.DeleteReviewsByEatery(1))
	byEatery, err = s.ReviewsByEatery(1)
	require.NoError(t, err)
	assert.Empty(t, byEatery)

	require.NoError(t, s.DeleteReviewsByOwner(1))
	byUser, err = s.ReviewsByUser(1)
	require.NoError(t, err)
	assert.Empty(t, byUser)
}

func TestCorruptFileSurfacesError(t *testing.T) {
	s, dir := openStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "eateries.json"), []byte("{not json"), 0o644))

	_, err := s.Eateries(0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
