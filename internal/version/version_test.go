package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVersionStrings checks that Full embeds the short version and the
// commit, so CLI output always carries both.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), Commit)
}
