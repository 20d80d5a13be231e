package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui"
)

func TestTUIPorts(t *testing.T) {
	setupTestServices(t, nil, nil)

	ports := tuiPorts()

	require.NoError(t, ports.Validate())
	assert.Equal(t, searchService, ports.Search)
	assert.Equal(t, chatService, ports.Chat)
	assert.Equal(t, analysisService, ports.Analysis)
	assert.Equal(t, settingsService, ports.Settings)
}

func TestTUICmd_ServicesNotConfigured(t *testing.T) {
	t.Cleanup(resetFlags)
	SetServices(nil)

	_, err := execute(t, "", "tui")
	assert.ErrorIs(t, err, tui.ErrMissingSearchService)
}

func TestTUICmd_RejectsArgs(t *testing.T) {
	setupTestServices(t, nil, nil)

	_, err := execute(t, "", "tui", "now")
	assert.ErrorContains(t, err, "unknown command")
}
