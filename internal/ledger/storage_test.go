package ledger

import (
	"errors"
	"testing"
	"time"
)

func TestLocalStorage_PutFarmerDuplicate(t *testing.T) {
	s := NewLocalStorage()

	first := &Farmer{Identity: "0xAA", FarmSize: 10, Registered: true, RegisteredAt: time.Now()}
	if err := s.PutFarmer(first); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err := s.PutFarmer(&Farmer{Identity: "0xAA", FarmSize: 99, Registered: true})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	f, err := s.GetFarmer("0xAA")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if f.FarmSize != 10 {
		t.Errorf("expected original farm size 10, got %d", f.FarmSize)
	}
}

func TestLocalStorage_GetFarmerNotFound(t *testing.T) {
	s := NewLocalStorage()

	if _, err := s.GetFarmer("0xFF"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLocalStorage_PriceDefaultsToZero(t *testing.T) {
	s := NewLocalStorage()

	price, err := s.GetPrice(Rice)
	if err != nil {
		t.Fatalf("GetPrice failed: %v", err)
	}
	if price != 0 {
		t.Errorf("expected unset price to be 0, got %d", price)
	}

	s.SetPrice(Rice, 7)
	s.SetPrice(Rice, 9) // overwrites unconditionally
	if price, _ = s.GetPrice(Rice); price != 9 {
		t.Errorf("expected price 9, got %d", price)
	}
}

func TestLocalStorage_SettleCommit(t *testing.T) {
	s := NewLocalStorage()

	p := &Purchase{Identity: "0xAA", Seed: Wheat, Quantity: 10, AmountPaid: 50, CreatedAt: time.Now()}
	err := s.Settle(p, func(p *Purchase) error { return nil })
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if p.Seq != 0 {
		t.Errorf("expected assigned sequence 0, got %d", p.Seq)
	}
	if n, _ := s.PurchaseCount(); n != 1 {
		t.Errorf("expected counter 1, got %d", n)
	}

	got, err := s.GetPurchase(0)
	if err != nil {
		t.Fatalf("GetPurchase failed: %v", err)
	}
	if got.AmountPaid != 50 {
		t.Errorf("expected amount paid 50, got %d", got.AmountPaid)
	}
}

func TestLocalStorage_SettleRollback(t *testing.T) {
	s := NewLocalStorage()

	p := &Purchase{Identity: "0xAA", Seed: Wheat, Quantity: 10, AmountPaid: 50, CreatedAt: time.Now()}
	boom := errors.New("transfer rejected")
	err := s.Settle(p, func(p *Purchase) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected transfer error, got %v", err)
	}

	if n, _ := s.PurchaseCount(); n != 0 {
		t.Errorf("expected counter 0 after rollback, got %d", n)
	}
	if _, err := s.GetPurchase(0); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected no record after rollback, got %v", err)
	}
}
