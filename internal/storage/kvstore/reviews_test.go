package kvstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendesaude/internal/domain"
	"agendesaude/internal/storage/kvstore"
)

func rev(id, clinicID, authorID string, rating int) domain.Review {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Review{
		ID:         id,
		ClinicID:   clinicID,
		AuthorID:   authorID,
		AuthorName: "Autor " + authorID,
		Rating:     rating,
		Comment:    "comentário",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestInsertRejectsDuplicateAuthor(t *testing.T) {
	store, _ := newTestStore(t)
	repo := kvstore.NewReviewRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, rev("r1", "c1", "u1", 5)))

	err := repo.Insert(ctx, rev("r2", "c1", "u1", 2))
	var dup *domain.DuplicateReviewError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "c1", dup.ClinicID)
	assert.Equal(t, "u1", dup.AuthorID)

	// Same author on another clinic, and another author on the same
	// clinic, are both fine.
	require.NoError(t, repo.Insert(ctx, rev("r3", "c2", "u1", 4)))
	require.NoError(t, repo.Insert(ctx, rev("r4", "c1", "u2", 3)))
}

func TestPutReplacesByID(t *testing.T) {
	store, _ := newTestStore(t)
	repo := kvstore.NewReviewRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, rev("r1", "c1", "u1", 5)))

	edited := rev("r1", "c1", "u1", 2)
	edited.Comment = "mudou de ideia"
	require.NoError(t, repo.Put(ctx, edited))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rating)
	assert.Equal(t, "mudou de ideia", got.Comment)

	assert.ErrorIs(t, repo.Put(ctx, rev("ghost", "c1", "u9", 1)), domain.ErrNotFound)
}

func TestDeleteSplicesAndIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	repo := kvstore.NewReviewRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, rev("r1", "c1", "u1", 5)))
	require.NoError(t, repo.Insert(ctx, rev("r2", "c1", "u2", 3)))

	ok, err := repo.Delete(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetByID(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rs, err := repo.ListByClinic(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "r2", rs[0].ID)

	// Deleting again reports false without erroring.
	ok, err = repo.Delete(ctx, "r1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Author is free to review the clinic again after the delete.
	require.NoError(t, repo.Insert(ctx, rev("r3", "c1", "u1", 4)))
}

func TestListByClinicAndAuthor(t *testing.T) {
	store, _ := newTestStore(t)
	repo := kvstore.NewReviewRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, rev("r1", "c1", "u1", 5)))
	require.NoError(t, repo.Insert(ctx, rev("r2", "c1", "u2", 3)))
	require.NoError(t, repo.Insert(ctx, rev("r3", "c2", "u1", 4)))

	byClinic, err := repo.ListByClinic(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, byClinic, 2)

	byAuthor, err := repo.ListByAuthor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)
	for _, r := range byAuthor {
		assert.Equal(t, "u1", r.AuthorID)
	}

	empty, err := repo.ListByClinic(ctx, "c9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReviewSurvivesPrimaryCorruption(t *testing.T) {
	store, mr := newTestStore(t)
	repo := kvstore.NewReviewRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, rev("r1", "c1", "u1", 5)))
	mr.Set(kvstore.CollectionReviews, "{{{not json")

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
}
