package clip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetEnabledDisablesClip(t *testing.T) {
	original := Enabled()
	defer SetEnabled(original)

	SetEnabled(false)
	require.False(t, Enabled())
	require.NoError(t, Clip("anything"))
}
