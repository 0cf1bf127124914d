package priceformatter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astromart/goledger/domain"
)

func TestDisplayPrice(t *testing.T) {
	req := require.New(t)

	cases := []struct {
		amount string
		want   string
	}{
		{"1000000000000000000000000", "1"},
		{"1500000000000000000000000", "1.5"},
		{"100", "0.0000000000000000000001"},
		{"0", "0"},
	}
	for _, c := range cases {
		got, err := DisplayPrice(c.amount)
		req.NoError(err)
		req.Equal(c.want, got)
	}

	_, err := DisplayPrice("not-a-number")
	req.ErrorIs(err, domain.ErrInvalidNumberFormat)
}
