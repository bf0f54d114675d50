package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDevToolsURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		contents  string
		writeNone bool
		assert    func(t *testing.T, wsURL string, err error)
	}{
		{
			name:     "ok",
			contents: "41315\n/devtools/browser/d1d3f8eb-b362-4f12-9370-bd25778d0da7\n",
			assert: func(t *testing.T, wsURL string, err error) {
				t.Helper()
				require.NoError(t, err)
				assert.Equal(t, "ws://127.0.0.1:41315/devtools/browser/d1d3f8eb-b362-4f12-9370-bd25778d0da7", wsURL)
			},
		},
		{
			name:      "err/missing_file",
			writeNone: true,
			assert: func(t *testing.T, wsURL string, err error) {
				t.Helper()
				require.Empty(t, wsURL)
				require.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dataDir := t.TempDir()
			if !tc.writeNone {
				fpath := filepath.Join(dataDir, "DevToolsActivePort")
				require.NoError(t, os.WriteFile(fpath, []byte(tc.contents), 0o600))
			}

			wsURL, err := getDevToolsURL(dataDir)
			tc.assert(t, wsURL, err)
		})
	}
}
