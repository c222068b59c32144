package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PlaceKeyPrefix     = "place:%d"
	PostKeyPrefix      = "post:%d"
	PlaceTypesKey      = "place-types"
	FavoritesKeyPrefix = "user:%d:favorites"
)

const (
	UserTTL       = 5 * time.Minute
	PlaceTTL      = 10 * time.Minute
	PostTTL       = 30 * time.Minute
	PlaceTypesTTL = time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PlaceKey(placeID uint) string {
	return fmt.Sprintf(PlaceKeyPrefix, placeID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FavoritesKey(userID uint) string {
	return fmt.Sprintf(FavoritesKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePlace(ctx context.Context, placeID uint) {
	Invalidate(ctx, PlaceKey(placeID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateFavorites(ctx context.Context, userID uint) {
	Invalidate(ctx, FavoritesKey(userID))
}
