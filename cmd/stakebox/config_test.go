// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/ledger"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	p, err := cfg.params()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), p.RatePerDay)
	assert.Equal(t, uint8(2), p.RewardDecimals)
	assert.Equal(t, params.ModeImmediate, p.Mode)
	assert.Len(t, p.Catalog, params.CatalogSize)
	assert.Equal(t, "CudtPyZYtPrwJufP6k7gAzPYfV12CLdpu4MHXfLSig9", p.Catalog[0].String())

	gene, err := cfg.genesis(p)
	require.NoError(t, err)
	assert.Equal(t, "devnet", gene.Name())
}

func TestLoadConfig(t *testing.T) {
	prize := ledger.BytesToAddress([]byte("prize"))
	path := writeConfig(t, `
network: staging
program:
  ratePerDay: 24
  rewardDecimals: 0
  mode: deferred
  catalog:
    - `+prize.String()+`
    - CudtPyZYtPrwJufP6k7gAzPYfV12CLdpu4MHXfLSig9
    - E6cg8XYnor3g58o2qP7N2DHV9JNDJgwpNDAh7QrSw72w
    - CeMJNozciBS8Ke9Y7saYbJeeaq2vSoEptgXSvoMBq1Q3
    - H6fpRxytdX6MpBAffyxMitsqoyhHqE71SwNPsEvt1oQ2
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	p, err := cfg.params()
	require.NoError(t, err)
	assert.Equal(t, uint64(24), p.RatePerDay)
	assert.Equal(t, uint8(0), p.RewardDecimals)
	assert.Equal(t, params.ModeDeferred, p.Mode)
	assert.Equal(t, prize, p.Catalog[0])
	assert.Equal(t, defaultProgramID, p.ProgramID, "unset keys keep their default")

	g1, err := cfg.genesis(p)
	require.NoError(t, err)
	assert.Equal(t, "staging", g1.Name())

	def, _ := loadConfig("")
	dp, _ := def.params()
	g2, err := def.genesis(dp)
	require.NoError(t, err)
	assert.NotEqual(t, g1.ID(), g2.ID())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "rate: 1\n"},
		{"bad address", "program:\n  programId: not-base58!\n"},
		{"empty network", "network: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInvalidProgramConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad mode", "program:\n  mode: later\n"},
		{"short catalog", "program:\n  catalog:\n    - CudtPyZYtPrwJufP6k7gAzPYfV12CLdpu4MHXfLSig9\n"},
		{"huge decimals", "program:\n  rewardDecimals: 30\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeConfig(t, tt.content))
			require.NoError(t, err)
			_, err = cfg.params()
			assert.Error(t, err)
		})
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "oracle.key")

	key1, err := loadOrGenerateKey(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	key2, err := loadOrGenerateKey(path)
	require.NoError(t, err)
	assert.True(t, key1.Equal(key2))
}
