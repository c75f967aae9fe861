package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/miaswap/launchpad"
	launchCommon "github.com/miaswap/launchpad/common"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name: "launchpad",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db_dir", Value: "./data/bolt", Usage: "bolt db dir path", EnvVars: []string{"DB_DIR"}},
			&cli.StringFlag{Name: "mysql", Value: "root@tcp(127.0.0.1:3306)/launchpad?charset=utf8mb4&parseTime=True&loc=Local", Usage: "mysql dsn", EnvVars: []string{"MYSQL"}},
			&cli.StringFlag{Name: "sqlite", Value: "./data/launchpad.sqlite", Usage: "sqlite db path", EnvVars: []string{"SQLITE"}},
			&cli.BoolFlag{Name: "use_sqlite", Value: false, Usage: "run with sqlite instead of mysql", EnvVars: []string{"USE_SQLITE"}},

			&cli.StringFlag{Name: "owner", Value: "", Usage: "sale owner address", EnvVars: []string{"OWNER"}},
			&cli.StringFlag{Name: "contract", Value: "", Usage: "collection contract address", EnvVars: []string{"CONTRACT"}},
			&cli.Int64Flag{Name: "chain_id", Value: 1, EnvVars: []string{"CHAIN_ID"}},
			&cli.Uint64Flag{Name: "max_supply", Value: 10000, Usage: "max mintable supply", EnvVars: []string{"MAX_SUPPLY"}},
			&cli.UintFlag{Name: "wallet_limit", Value: 0, Usage: "global wallet limit, 0 = unlimited", EnvVars: []string{"WALLET_LIMIT"}},

			&cli.StringFlag{Name: "kafka_uri", Value: "127.0.0.1:9092", EnvVars: []string{"KAFKA_URI"}},
			&cli.BoolFlag{Name: "use_kafka", Value: false, EnvVars: []string{"USE_KAFKA"}},
			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	s := launchpad.New(
		c.String("db_dir"), c.String("mysql"), c.String("sqlite"), c.Bool("use_sqlite"),
		common.HexToAddress(c.String("owner")), common.HexToAddress(c.String("contract")), c.Int64("chain_id"),
		c.Uint64("max_supply"), uint32(c.Uint("wallet_limit")),
		c.String("kafka_uri"), c.Bool("use_kafka"),
	)
	launchCommon.NewMetricServer()
	s.Run(c.String("port"))

	<-signals
	s.Close()

	return nil
}
