package config

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/miaswap/launchpad/common"
	"github.com/miaswap/launchpad/config/schema"
)

var log = common.NewLog("config")

type Config struct {
	wdb       *Wdb
	scheduler *gocron.Scheduler

	Param schema.Param

	lock        sync.RWMutex
	ipWhiteList map[string]struct{}
}

func New(configDSN string, sqliteDir string, useSqlite bool) *Config {
	var wdb *Wdb
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewWdb(configDSN)
	}
	if err := wdb.Migrate(); err != nil {
		panic(err)
	}
	param, err := wdb.GetParam()
	if err != nil {
		panic(err)
	}
	return &Config{
		wdb:         wdb,
		scheduler:   gocron.NewScheduler(time.UTC),
		Param:       param,
		ipWhiteList: make(map[string]struct{}),
	}
}

func (c *Config) IPWhitelist() *map[string]struct{} {
	c.lock.RLock()
	defer c.lock.RUnlock()
	mmap := c.ipWhiteList
	return &mmap
}

func (c *Config) Run() {
	go c.runJobs()
}

func (c *Config) Close() {
	c.scheduler.Stop()
	c.wdb.Close()
}
