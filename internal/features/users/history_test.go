package users

import (
	"testing"

	"github.com/hazra-dev/vidtube/internal/features/videos"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ids(n int) []primitive.ObjectID {
	out := make([]primitive.ObjectID, n)
	for i := range out {
		out[i] = primitive.NewObjectID()
	}
	return out
}

func TestPageIDs(t *testing.T) {
	all := ids(5)

	require.Equal(t, all[:2], PageIDs(all, 0, 2))
	require.Equal(t, all[2:4], PageIDs(all, 2, 2))
	// Last page may be partial.
	require.Equal(t, all[4:], PageIDs(all, 4, 2))
	// Past the end is empty, not an error.
	require.Empty(t, PageIDs(all, 6, 2))
	require.Empty(t, PageIDs(nil, 0, 10))
}

func TestOrderByHistory(t *testing.T) {
	history := ids(3)

	// Fetched in a different order than the history records.
	fetched := []videos.VideoWithOwner{
		{ID: history[2]},
		{ID: history[0]},
		{ID: history[1]},
	}

	ordered := OrderByHistory(history, fetched)
	require.Len(t, ordered, 3)
	require.Equal(t, history[0], ordered[0].ID)
	require.Equal(t, history[1], ordered[1].ID)
	require.Equal(t, history[2], ordered[2].ID)
}

func TestOrderByHistory_SkipsDeletedVideos(t *testing.T) {
	history := ids(3)

	// The middle entry's video no longer exists.
	fetched := []videos.VideoWithOwner{
		{ID: history[2]},
		{ID: history[0]},
	}

	ordered := OrderByHistory(history, fetched)
	require.Len(t, ordered, 2)
	require.Equal(t, history[0], ordered[0].ID)
	require.Equal(t, history[2], ordered[1].ID)
}
