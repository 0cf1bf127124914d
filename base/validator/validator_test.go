package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAccountId() {
	tests := []struct {
		desc       string
		account    string
		expIsValid bool
	}{
		{
			desc:       "too short",
			account:    "a",
			expIsValid: false,
		},
		{
			desc:       "simple account",
			account:    "alice",
			expIsValid: true,
		},
		{
			desc:       "sub account",
			account:    "market.astro",
			expIsValid: true,
		},
		{
			desc:       "dashes and digits",
			account:    "nft-registry-1.astro",
			expIsValid: true,
		},
		{
			desc:       "upper case rejected",
			account:    "Alice",
			expIsValid: false,
		},
		{
			desc:       "double separator rejected",
			account:    "al..ice",
			expIsValid: false,
		},
		{
			desc:       "trailing separator rejected",
			account:    "alice.",
			expIsValid: false,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAccountId(t.account), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
