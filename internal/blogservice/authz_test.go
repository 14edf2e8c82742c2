package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	testCases := []struct {
		name      string
		requester string
		owner     string
		expected  bool
	}{
		{
			name:      "same identifier",
			requester: "0b1e9422-8f6e-4a1a-9f33-1a3b5c4d6e7f",
			owner:     "0b1e9422-8f6e-4a1a-9f33-1a3b5c4d6e7f",
			expected:  true,
		},
		{
			name:      "different identifier",
			requester: "0b1e9422-8f6e-4a1a-9f33-1a3b5c4d6e7f",
			owner:     "9f1e9422-8f6e-4a1a-9f33-1a3b5c4d6e7f",
			expected:  false,
		},
		{
			name:      "equal after canonicalization",
			requester: "0B1E9422-8F6E-4A1A-9F33-1A3B5C4D6E7F",
			owner:     "0b1e9422-8f6e-4a1a-9f33-1a3b5c4d6e7f",
			expected:  true,
		},
		{
			name:      "whitespace is not significant",
			requester: " 0b1e9422-8f6e-4a1a-9f33-1a3b5c4d6e7f ",
			owner:     "0b1e9422-8f6e-4a1a-9f33-1a3b5c4d6e7f",
			expected:  true,
		},
		{
			name:      "empty requester never matches",
			requester: "",
			owner:     "",
			expected:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CanMutate(tc.requester, tc.owner))
		})
	}
}
