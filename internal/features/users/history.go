package users

import (
	"github.com/hazra-dev/vidtube/internal/features/videos"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageIDs slices one page out of an ordered id list. Pages past the
// end come back empty.
func PageIDs(ids []primitive.ObjectID, offset, limit int) []primitive.ObjectID {
	if offset >= len(ids) {
		return nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end]
}

// OrderByHistory rearranges fetched videos into history order. The
// database join does not guarantee order, so the id list is the source
// of truth; ids with no surviving video are skipped.
func OrderByHistory(ids []primitive.ObjectID, items []videos.VideoWithOwner) []videos.VideoWithOwner {
	byID := make(map[primitive.ObjectID]videos.VideoWithOwner, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	ordered := make([]videos.VideoWithOwner, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered
}
