// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stakebox/stakebox/builtin/params"
	"github.com/stakebox/stakebox/genesis"
	"github.com/stakebox/stakebox/ledger"
)

// programConfig is the yaml form of params.Params.
type programConfig struct {
	ProgramID      ledger.Address   `yaml:"programId"`
	RewardMint     ledger.Address   `yaml:"rewardMint"`
	RatePerDay     uint64           `yaml:"ratePerDay"`
	RewardDecimals uint8            `yaml:"rewardDecimals"`
	Mode           string           `yaml:"mode"`
	Catalog        []ledger.Address `yaml:"catalog"`
}

type config struct {
	Network string `yaml:"network"`
	// collectibles minted to each dev account, devnet only
	DevCollectibles int           `yaml:"devCollectibles"`
	Program         programConfig `yaml:"program"`
}

var defaultProgramID = ledger.BytesToAddress([]byte("stakebox-program"))

func defaultConfig() *config {
	return &config{
		Network:         "devnet",
		DevCollectibles: 2,
		Program: programConfig{
			ProgramID:      defaultProgramID,
			RewardMint:     ledger.DeriveAddress(defaultProgramID, []byte("reward-mint")),
			RatePerDay:     1000,
			RewardDecimals: 2,
			Mode:           params.ModeImmediate.String(),
			Catalog: []ledger.Address{
				ledger.MustParseAddress("CudtPyZYtPrwJufP6k7gAzPYfV12CLdpu4MHXfLSig9"),
				ledger.MustParseAddress("E6cg8XYnor3g58o2qP7N2DHV9JNDJgwpNDAh7QrSw72w"),
				ledger.MustParseAddress("CeMJNozciBS8Ke9Y7saYbJeeaq2vSoEptgXSvoMBq1Q3"),
				ledger.MustParseAddress("H6fpRxytdX6MpBAffyxMitsqoyhHqE71SwNPsEvt1oQ2"),
				ledger.MustParseAddress("Hpvp9ZuFnK1E5aBxVM3thGqsybGNBTf6ucXT2ZEX7EPr"),
			},
		},
	}
}

// loadConfig reads the config file at path over the defaults. Unknown keys are rejected.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config [%v]", path)
	}
	if cfg.Network == "" {
		return nil, errors.New("network name is empty")
	}
	return cfg, nil
}

func (c *config) params() (*params.Params, error) {
	mode, err := params.ParseMode(c.Program.Mode)
	if err != nil {
		return nil, err
	}
	p := &params.Params{
		ProgramID:      c.Program.ProgramID,
		RewardMint:     c.Program.RewardMint,
		RatePerDay:     c.Program.RatePerDay,
		RewardDecimals: c.Program.RewardDecimals,
		Mode:           mode,
		Catalog:        append([]ledger.Address(nil), c.Program.Catalog...),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// genesis builds the genesis of the configured network. Only the devnet gets
// collectibles for the dev accounts.
func (c *config) genesis(p *params.Params) (*genesis.Genesis, error) {
	var collectibles []genesis.Collectible
	if c.Network == "devnet" && c.DevCollectibles > 0 {
		collectibles = genesis.DevCollectibles(c.DevCollectibles)
	}
	return genesis.New(c.Network, p, collectibles)
}
