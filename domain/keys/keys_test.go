package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomKey(t *testing.T) {
	req := require.New(t)
	req.Equal("a||b||c", CustomKey("||", "a", "b", "c"))
	req.Equal("a", CustomKey("||", "a"))
}

func TestListingKey(t *testing.T) {
	req := require.New(t)
	req.Equal("registry.astro||42", ListingKey("registry.astro", "42"))
}

func TestOfferKey(t *testing.T) {
	req := require.New(t)
	req.Equal("registry.astro||alice||42", OfferKey("registry.astro", "alice", "42"))
}
