package redis

import (
	"fmt"

	"github.com/mcoot/battleship-go2/internal/model"
)

// Key prefix for all battleship data
const keyPrefix = "bship"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// matchKey returns the Redis key for a match snapshot
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchesForOwnerIndexKey returns the Redis key for the sorted set of an
// owner's matches, scored by last update
func matchesForOwnerIndexKey(owner model.PlayerID) string {
	return fmt.Sprintf("%s:idx:matches_for_owner:%s", keyPrefix, owner)
}
