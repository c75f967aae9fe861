package config

import (
	"github.com/miaswap/launchpad/config/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Wdb struct {
	Db *gorm.DB
}

func NewWdb(dsn string) *Wdb {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 10,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect config db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbPath string) *Wdb {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 10,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect config sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.Param{}, &schema.IpRateWhitelist{})
}

func (w *Wdb) GetParam() (param schema.Param, err error) {
	err = w.Db.First(&param).Error
	if err == gorm.ErrRecordNotFound {
		param = schema.Param{
			RateLimit:  0,
			RatePeriod: "M",
		}
		return param, nil
	}
	return
}

func (w *Wdb) GetAllAvailableIpRateWhitelist() ([]schema.IpRateWhitelist, error) {
	res := make([]schema.IpRateWhitelist, 0)
	err := w.Db.Model(&schema.IpRateWhitelist{}).Where("available = ?", true).Find(&res).Error
	return res, err
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}
