package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	starkevents "github.com/NethermindEth/starkevents/cmd/starkevents"
	"github.com/NethermindEth/starkevents/core"
	"github.com/NethermindEth/starkevents/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledger = `blocks:
  - number: 0
    hash: "0x100"
    timestamp: 1700000000
    transactions:
      - hash: "0xaa"
        events:
          - from: "0x1"
            keys: ["0x10"]
            data: ["0x5"]
          - from: "0x2"
            keys: ["0x20"]
          - from: "0x1"
            keys: ["0x10", "0x11"]
  - number: 1
    hash: "0x101"
    timestamp: 1700000010
    transactions:
      - hash: "0xbb"
        events:
          - from: "0x1"
            keys: ["0x10"]
          - from: "0x1"
            keys: ["0x30"]
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cmd := starkevents.NewCmd(new(node.Config), noopRun)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func importLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "ledger.yaml")
	require.NoError(t, os.WriteFile(file, []byte(ledger), 0o600))
	dbPath := filepath.Join(dir, "db")

	out, err := execute(t, "import", "--file", file, "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 blocks")
	return dbPath
}

func TestImportAndQuery(t *testing.T) {
	dbPath := importLedger(t)

	t.Run("pages through every event", func(t *testing.T) {
		out, err := execute(t, "query", "--db-path", dbPath, "--chunk-size", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "continuation token: 0,2")

		out, err = execute(t, "query", "--db-path", dbPath, "--chunk-size", "2", "--continuation-token", "0,2")
		require.NoError(t, err)
		assert.Contains(t, out, "continuation token: 1,1")

		out, err = execute(t, "query", "--db-path", dbPath, "--chunk-size", "2", "--continuation-token", "1,1")
		require.NoError(t, err)
		assert.Contains(t, out, "no more pages")
	})

	t.Run("filters by address and keys", func(t *testing.T) {
		out, err := execute(t, "query", "--db-path", dbPath, "--address", "0x1", "--keys", "0x10,0x30", "--keys", "")
		require.NoError(t, err)
		assert.Contains(t, out, "0x11")
		assert.NotContains(t, out, "0x30")
		assert.Contains(t, out, "no more pages")
	})

	t.Run("block range", func(t *testing.T) {
		out, err := execute(t, "query", "--db-path", dbPath, "--from", "latest", "--to", "latest")
		require.NoError(t, err)
		assert.Contains(t, out, "0x30")
		assert.NotContains(t, out, "0xaa")
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := execute(t, "query", "--db-path", dbPath, "--continuation-token", "nope")
		require.Error(t, err)
	})

	t.Run("page too big", func(t *testing.T) {
		_, err := execute(t, "query", "--db-path", dbPath, "--chunk-size", "1001")
		require.Error(t, err)
	})
}

func TestImportIsIdempotent(t *testing.T) {
	dbPath := importLedger(t)
	file := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(file, []byte(ledger), 0o600))

	out, err := execute(t, "import", "--file", file, "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 blocks")
}

func TestImportRejectsBrokenChain(t *testing.T) {
	file := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`blocks:
  - number: 0
    hash: "0x100"
  - number: 1
    hash: "0x101"
    parent_hash: "0x999"
`), 0o600))

	_, err := execute(t, "import", "--file", file, "--db-path", filepath.Join(t.TempDir(), "db"))
	require.ErrorContains(t, err, "store block 1")
}

func TestImportRejectsMalformedEvents(t *testing.T) {
	ledgers := map[string]string{
		"missing from": `blocks:
  - number: 0
    hash: "0x100"
    transactions:
      - hash: "0xaa"
        events:
          - keys: ["0x10"]
`,
		"null key": `blocks:
  - number: 0
    hash: "0x100"
    transactions:
      - hash: "0xaa"
        events:
          - from: "0x1"
            keys: [null]
`,
	}

	for name, contents := range ledgers {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			file := filepath.Join(dir, "ledger.yaml")
			require.NoError(t, os.WriteFile(file, []byte(contents), 0o600))

			var err error
			require.NotPanics(t, func() {
				_, err = execute(t, "import", "--file", file, "--db-path", filepath.Join(dir, "db"))
			})
			require.ErrorIs(t, err, core.ErrMalformedEvent)
			assert.ErrorContains(t, err, "store block 0")
		})
	}
}

func TestDBCommands(t *testing.T) {
	dbPath := importLedger(t)

	out, err := execute(t, "db", "info", "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "0x101")

	out, err = execute(t, "db", "size", "--db-path", dbPath)
	require.NoError(t, err)
	for _, bucket := range []string{"ChainHeight", "BlockHeadersByNumber", "ReceiptsByBlockNumber", "TOTAL"} {
		assert.Contains(t, out, bucket)
	}

	_, err = execute(t, "db", "info", "--db-path", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
