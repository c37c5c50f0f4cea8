// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// stakebox runs the staking and lootbox program behind its HTTP API.
package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakebox/stakebox/api"
	"github.com/stakebox/stakebox/api/middleware"
	"github.com/stakebox/stakebox/api/node"
	"github.com/stakebox/stakebox/clock"
	"github.com/stakebox/stakebox/genesis"
	"github.com/stakebox/stakebox/ledger"
	"github.com/stakebox/stakebox/log"
	"github.com/stakebox/stakebox/logdb"
	"github.com/stakebox/stakebox/lvldb"
	"github.com/stakebox/stakebox/metrics"
	"github.com/stakebox/stakebox/oracle"
	"github.com/stakebox/stakebox/program"
	"github.com/stakebox/stakebox/state"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "Stakebox",
		Usage:   "Collectible staking and lootbox node",
		Flags: []cli.Flag{
			dataDirFlag,
			inMemoryFlag,
			configFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			adminAddrFlag,
			enableMetricsFlag,
			verbosityFlag,
			jsonLogsFlag,
			oracleKeyFlag,
			autoFulfilFlag,
			ntpServerFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "oracle-key",
				Usage: "print the public key of the oracle key file",
				Flags: []cli.Flag{dataDirFlag, oracleKeyFlag},
				Action: func(ctx *cli.Context) error {
					key, err := loadOrGenerateKey(oracleKeyPath(ctx))
					if err != nil {
						return errors.Wrap(err, "load oracle key")
					}
					fmt.Println(hexutil.Encode(crypto.CompressPubkey(&key.PublicKey)))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func oracleKeyPath(ctx *cli.Context) string {
	if path := ctx.String(oracleKeyFlag.Name); path != "" {
		return path
	}
	return filepath.Join(ctx.String(dataDirFlag.Name), "oracle.key")
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)

	cfg, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	p, err := cfg.params()
	if err != nil {
		return errors.WithMessage(err, "program config")
	}
	gene, err := cfg.genesis(p)
	if err != nil {
		return errors.WithMessage(err, "genesis")
	}

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		cacheMB     int
		instanceDir = "Memory"
	)
	if ctx.Bool(inMemoryFlag.Name) {
		if mainDB, err = lvldb.NewMem(); err != nil {
			return err
		}
		if logDB, err = logdb.NewMem(); err != nil {
			return err
		}
		cacheMB = 128
	} else {
		dataDir, err := makeDataDir(ctx)
		if err != nil {
			return err
		}
		if instanceDir, err = makeInstanceDir(dataDir, gene); err != nil {
			return err
		}
		if mainDB, cacheMB, err = openMainDB(ctx, instanceDir); err != nil {
			return err
		}
		if logDB, err = openLogDB(instanceDir); err != nil {
			mainDB.Close()
			return err
		}
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing event database..."); logDB.Close() }()

	// a cached slot is about 256 bytes
	creator, err := state.NewCreator(mainDB, cacheMB*1024*1024/256)
	if err != nil {
		return err
	}
	if err := gene.Setup(creator); err != nil {
		return errors.WithMessage(err, "setup genesis")
	}

	oracleKey, err := loadOrGenerateKey(oracleKeyPath(ctx))
	if err != nil {
		return errors.Wrap(err, "load oracle key")
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	prog, err := program.New(creator, p, clock.System, program.WithOracleKey(oracleKey))
	if err != nil {
		return err
	}
	defer prog.Close()

	var fulfiller *oracle.Fulfiller
	if ctx.Bool(autoFulfilFlag.Name) {
		fulfiller = oracle.NewFulfiller(func(ctx context.Context, ref ledger.Address) error {
			_, err := prog.Fulfill(ctx, ref)
			return err
		}, 1024)
	}

	requestLogs := middleware.NewRequestLogSettings(
		ctx.Bool(enableAPILogsFlag.Name),
		time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name))*time.Millisecond,
		ctx.Bool(apiLog5xxErrorsFlag.Name),
	)

	handler, closeAPI := api.New(prog, logDB, clock.System, api.Options{
		AllowedOrigins: strings.TrimSpace(ctx.String(apiCorsFlag.Name)),
		EventsLimit:    ctx.Uint64(apiEventsLimitFlag.Name),
		EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
		RequestLogs:    requestLogs,
		Info: &node.Info{
			Name:      gene.Name(),
			GenesisID: gene.ID(),
			Version:   fullVersion(),
		},
	})
	defer closeAPI()

	apiURL, stopAPI, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	if addr := ctx.String(adminAddrFlag.Name); addr != "" {
		adminURL, stopAdmin, err := api.StartAdminServer(addr, logLevel, requestLogs)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); stopAdmin() }()
		logger.Info("admin server started", "url", adminURL)
	}

	printStartupMessage(gene, instanceDir, apiURL, &oracleKey.PublicKey, fulfiller != nil)

	group, groupCtx := errgroup.WithContext(exitSignal)
	group.Go(func() error {
		return pumpEvents(groupCtx, prog, logDB, fulfiller)
	})
	if fulfiller != nil {
		group.Go(func() error {
			return fulfiller.Run(groupCtx)
		})
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		group.Go(func() error {
			mainDB.CollectMetrics(groupCtx, time.Minute)
			return nil
		})
	}
	if server := ctx.String(ntpServerFlag.Name); server != "" {
		group.Go(func() error {
			clock.WatchOffset(groupCtx, server, 10*time.Minute, 5*time.Second)
			return nil
		})
	}
	return group.Wait()
}

// pumpEvents stores every committed event and hands new randomness requests
// to the fulfiller, if any. Events queued together are stored in one insert.
func pumpEvents(ctx context.Context, prog *program.Program, logDB *logdb.LogDB, fulfiller *oracle.Fulfiller) error {
	ch := make(chan *program.Event, 256)
	sub := prog.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sub.Err():
			return err
		case ev := <-ch:
			batch := []*program.Event{ev}
		drain:
			for len(batch) < cap(ch) {
				select {
				case ev := <-ch:
					batch = append(batch, ev)
				default:
					break drain
				}
			}
			if err := logDB.Insert(batch...); err != nil {
				return errors.Wrap(err, "store events")
			}
			if fulfiller == nil {
				continue
			}
			for _, ev := range batch {
				if ev.Kind == program.EventRandomnessRequested && ev.Oracle != nil {
					fulfiller.Notify(*ev.Oracle)
				}
			}
		}
	}
}

func printStartupMessage(gene *genesis.Genesis, instanceDir, apiURL string, oracleKey *ecdsa.PublicKey, autoFulfil bool) {
	fmt.Printf(`Starting %v
    Network      [ %v %v ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Oracle key   [ %v ]
    Auto fulfil  [ %v ]
`,
		fullVersion(),
		gene.Name(), gene.ID(),
		instanceDir,
		apiURL,
		hexutil.Encode(crypto.CompressPubkey(oracleKey)),
		autoFulfil)
}
