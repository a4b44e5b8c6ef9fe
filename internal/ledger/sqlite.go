package ledger

import (
	"errors"
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type farmerRow struct {
	Identity     string `gorm:"primaryKey"`
	FarmSize     uint64
	Registered   bool
	RegisteredAt time.Time
}

func (farmerRow) TableName() string { return "farmers" }

type priceRow struct {
	Seed  string `gorm:"primaryKey"`
	Price uint64
}

func (priceRow) TableName() string { return "prices" }

type purchaseRow struct {
	Seq        uint64 `gorm:"primaryKey;autoIncrement:false"`
	Identity   string
	Seed       string
	Quantity   uint64
	AmountPaid uint64
	CreatedAt  time.Time
}

func (purchaseRow) TableName() string { return "purchases" }

// SQLiteStorage is a durable Storage implementation on sqlite via gorm.
// Settlement runs inside a database transaction, so a failed payment
// transfer rolls back the purchase row with the database's own rollback.
type SQLiteStorage struct {
	db *gorm.DB
}

// NewSQLiteStorage opens (or creates) the database at path and migrates the
// three ledger tables.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&farmerRow{}, &priceRow{}, &purchaseRow{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) PutFarmer(f *Farmer) error {
	var existing farmerRow
	err := s.db.First(&existing, "identity = ?", f.Identity).Error
	if err == nil {
		return ErrAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	row := farmerRow{
		Identity:     f.Identity,
		FarmSize:     f.FarmSize,
		Registered:   f.Registered,
		RegisteredAt: f.RegisteredAt,
	}
	return s.db.Create(&row).Error
}

func (s *SQLiteStorage) GetFarmer(identity string) (*Farmer, error) {
	var row farmerRow
	if err := s.db.First(&row, "identity = ?", identity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Farmer{
		Identity:     row.Identity,
		FarmSize:     row.FarmSize,
		Registered:   row.Registered,
		RegisteredAt: row.RegisteredAt,
	}, nil
}

func (s *SQLiteStorage) SetPrice(seed SeedType, price uint64) error {
	row := priceRow{Seed: string(seed), Price: price}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

func (s *SQLiteStorage) GetPrice(seed SeedType) (uint64, error) {
	var row priceRow
	if err := s.db.First(&row, "seed = ?", string(seed)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // unset
		}
		return 0, err
	}
	return row.Price, nil
}

func (s *SQLiteStorage) Settle(p *Purchase, transfer func(p *Purchase) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&purchaseRow{}).Count(&n).Error; err != nil {
			return err
		}
		p.Seq = uint64(n)
		row := purchaseRow{
			Seq:        p.Seq,
			Identity:   p.Identity,
			Seed:       string(p.Seed),
			Quantity:   p.Quantity,
			AmountPaid: p.AmountPaid,
			CreatedAt:  p.CreatedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		// transfer failure aborts the transaction, dropping the row above
		return transfer(p)
	})
}

func (s *SQLiteStorage) GetPurchase(seq uint64) (*Purchase, error) {
	var row purchaseRow
	if err := s.db.First(&row, "seq = ?", seq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Purchase{
		Seq:        row.Seq,
		Identity:   row.Identity,
		Seed:       SeedType(row.Seed),
		Quantity:   row.Quantity,
		AmountPaid: row.AmountPaid,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (s *SQLiteStorage) PurchaseCount() (uint64, error) {
	var n int64
	if err := s.db.Model(&purchaseRow{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return uint64(n), nil
}
