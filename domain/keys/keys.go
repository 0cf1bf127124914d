package keys

import (
	"strings"

	"github.com/astromart/goledger/domain"
)

// Delimiter joins composite key components. Account ids cannot contain it.
const Delimiter = "||"

// redis key prefixes
const (
	PfxHealthCheck = "healthcheck"
)

// CustomKey joins key components with the given delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// ListingKey is the composite key of a listing: registry||token
func ListingKey(registry domain.AccountId, tokenId domain.TokenId) string {
	return CustomKey(Delimiter, registry.String(), tokenId.String())
}

// OfferKey is the composite key of an offer: registry||buyer||token
func OfferKey(registry, buyer domain.AccountId, tokenId domain.TokenId) string {
	return CustomKey(Delimiter, registry.String(), buyer.String(), tokenId.String())
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the prefix of a key.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
