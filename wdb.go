package launchpad

import (
	"time"

	"github.com/miaswap/launchpad/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Wdb struct {
	Db *gorm.DB
}

func NewWdb(dsn string) *Wdb {
	logLevel := logger.Error
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logLevel),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbPath string) *Wdb {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(
		&schema.MintOrder{}, &schema.ContributionRecord{}, &schema.RefundRecord{},
		&schema.StakeEventRecord{}, &schema.Whitelist{}, &schema.TokenPrice{}, &schema.SaleStatistic{},
	)
}

func (w *Wdb) InsertMintOrder(order schema.MintOrder) error {
	return w.Db.Create(&order).Error
}

func (w *Wdb) GetMintOrders(recipient string, num int) ([]schema.MintOrder, error) {
	res := make([]schema.MintOrder, 0, num)
	err := w.Db.Model(&schema.MintOrder{}).Where("recipient = ?", recipient).Order("id DESC").Limit(num).Find(&res).Error
	return res, err
}

func (w *Wdb) InsertContribution(record schema.ContributionRecord) error {
	return w.Db.Create(&record).Error
}

func (w *Wdb) GetContributions(bidder string, num int) ([]schema.ContributionRecord, error) {
	res := make([]schema.ContributionRecord, 0, num)
	err := w.Db.Model(&schema.ContributionRecord{}).Where("bidder = ?", bidder).Order("id DESC").Limit(num).Find(&res).Error
	return res, err
}

func (w *Wdb) InsertRefund(record schema.RefundRecord) error {
	return w.Db.Create(&record).Error
}

func (w *Wdb) InsertStakeEvent(record schema.StakeEventRecord) error {
	return w.Db.Create(&record).Error
}

func (w *Wdb) GetStakeEvents(staker string, num int) ([]schema.StakeEventRecord, error) {
	res := make([]schema.StakeEventRecord, 0, num)
	err := w.Db.Model(&schema.StakeEventRecord{}).Where("staker = ?", staker).Order("id DESC").Limit(num).Find(&res).Error
	return res, err
}

func (w *Wdb) SaveWhitelist(wl schema.Whitelist) error {
	return w.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "root"}},
		UpdateAll: true,
	}).Create(&wl).Error
}

func (w *Wdb) GetWhitelist(root string) (schema.Whitelist, error) {
	res := schema.Whitelist{}
	err := w.Db.First(&res, "root = ?", root).Error
	return res, err
}

func (w *Wdb) InsertPrices(tps []schema.TokenPrice) error {
	return w.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tps).Error
}

func (w *Wdb) UpdatePrice(symbol string, newPrice float64) error {
	return w.Db.Model(&schema.TokenPrice{}).Where("symbol = ? and manual_set = false", symbol).Update("price", newPrice).Error
}

func (w *Wdb) GetPrices() ([]schema.TokenPrice, error) {
	res := make([]schema.TokenPrice, 0, 10)
	err := w.Db.Find(&res).Error
	return res, err
}

func (w *Wdb) InsertStatistic(st schema.SaleStatistic) error {
	return w.Db.Create(&st).Error
}

func (w *Wdb) GetStatisticsRange(start, end time.Time) ([]schema.SaleStatistic, error) {
	res := make([]schema.SaleStatistic, 0)
	err := w.Db.Model(&schema.SaleStatistic{}).Where("date >= ? and date < ?", start, end).Order("date").Find(&res).Error
	return res, err
}

// MintOrdersSince returns the mint orders created after `since`; volume
// summation happens in Go because the amounts are stored as decimal strings.
func (w *Wdb) MintOrdersSince(since time.Time) ([]schema.MintOrder, error) {
	res := make([]schema.MintOrder, 0)
	err := w.Db.Model(&schema.MintOrder{}).Where("created_at >= ?", since).Find(&res).Error
	return res, err
}

func (w *Wdb) ContributionsSince(since time.Time) ([]schema.ContributionRecord, error) {
	res := make([]schema.ContributionRecord, 0)
	err := w.Db.Model(&schema.ContributionRecord{}).Where("created_at >= ?", since).Find(&res).Error
	return res, err
}

func (w *Wdb) Close() error {
	sql, err := w.Db.DB()
	if err != nil {
		return err
	}
	return sql.Close()
}
