package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Payer transfers value to a principal. The settlement only cares about
// success or failure; the mechanism lives outside the ledger.
type Payer interface {
	Transfer(to string, amount uint64) error
}

// Service provides the settlement ledger operations on a Storage backend.
// The seller principal is fixed at creation and receives all proceeds.
type Service struct {
	storage Storage
	payer   Payer
	seller  string
	logger  *zap.Logger

	// mu serializes all ledger operations: each one runs to completion
	// before the next starts, whatever the delivery layer does.
	mu sync.Mutex
}

// NewService creates a new Service.
func NewService(storage Storage, payer Payer, seller string, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		storage: storage,
		payer:   payer,
		seller:  seller,
		logger:  logger,
	}
}

// Register creates the farmer record for an identity token. Registration is
// once only; the stored farm size never changes afterwards. A zero farm
// size is accepted.
func (s *Service) Register(identity string, farmSize uint64) (*Farmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity == "" {
		return nil, ErrEmptyIdentity
	}

	farmer := &Farmer{
		Identity:     identity,
		FarmSize:     farmSize,
		Registered:   true,
		RegisteredAt: time.Now(),
	}

	if err := s.storage.PutFarmer(farmer); err != nil {
		s.logger.Warn("farmer registration rejected", zap.String("identity", identity), zap.Error(err))
		return nil, err
	}

	s.logger.Info("farmer registered", zap.String("identity", identity), zap.Uint64("farm_size", farmSize))
	return farmer, nil
}

// SetPrice overwrites the unit price for a seed type. Seller only.
func (s *Service) SetPrice(caller string, seed SeedType, price uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller != s.seller {
		s.logger.Warn("price update rejected", zap.String("caller", caller), zap.String("seed", string(seed)))
		return ErrUnauthorized
	}

	if err := s.storage.SetPrice(seed, price); err != nil {
		s.logger.Error("failed to store price", zap.String("seed", string(seed)), zap.Error(err))
		return err
	}

	s.logger.Info("price updated", zap.String("seed", string(seed)), zap.Uint64("price", price))
	return nil
}

// Purchase settles a seed sale for a registered farmer: it validates the
// payment, appends the purchase record and pays the seller as one unit.
// The quantity sold equals the farmer's raw farm size regardless of seed
// type (adjust the formula here if that ever changes). Excess payment is
// refunded to the caller best-effort: a failed refund is logged but does
// not void the settled purchase, unlike a failed seller transfer which
// rolls everything back.
func (s *Service) Purchase(caller, identity string, seed SeedType, tendered uint64) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farmer, err := s.storage.GetFarmer(identity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotRegistered
		}
		s.logger.Error("failed to read farmer", zap.String("identity", identity), zap.Error(err))
		return nil, err
	}
	if !farmer.Registered {
		return nil, ErrNotRegistered
	}

	price, err := s.storage.GetPrice(seed)
	if err != nil {
		s.logger.Error("failed to read price", zap.String("seed", string(seed)), zap.Error(err))
		return nil, err
	}
	if price == 0 {
		return nil, ErrPriceNotSet
	}

	total, ok := checkedMul(farmer.FarmSize, price)
	if !ok {
		return nil, ErrOverflow
	}
	if tendered < total {
		return nil, ErrInsufficientPayment
	}

	purchase := &Purchase{
		Identity:   identity,
		Seed:       seed,
		Quantity:   farmer.FarmSize,
		AmountPaid: total,
		CreatedAt:  time.Now(),
	}

	err = s.storage.Settle(purchase, func(p *Purchase) error {
		if err := s.payer.Transfer(s.seller, total); err != nil {
			s.logger.Error("seller payment failed, rolling back settlement",
				zap.Uint64("seq", p.Seq),
				zap.String("identity", identity),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refunded := uint64(0)
	if excess := tendered - total; excess > 0 {
		// refund is best-effort: the purchase stays committed even if the
		// excess cannot be returned
		if err := s.payer.Transfer(caller, excess); err != nil {
			s.logger.Warn("excess refund failed",
				zap.Uint64("seq", purchase.Seq),
				zap.String("caller", caller),
				zap.Uint64("excess", excess),
				zap.Error(err),
			)
		} else {
			refunded = excess
		}
	}

	s.logger.Info("purchase settled",
		zap.Uint64("seq", purchase.Seq),
		zap.String("identity", identity),
		zap.String("seed", string(seed)),
		zap.Uint64("quantity", purchase.Quantity),
		zap.Uint64("amount_paid", total),
		zap.Uint64("refunded", refunded),
	)

	return &Receipt{Seq: purchase.Seq, Charged: total, Refunded: refunded}, nil
}

// Farmer returns the registration record for an identity token.
func (s *Service) Farmer(identity string) (*Farmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.GetFarmer(identity)
}

// PurchaseRecord returns the settled purchase with the given sequence number.
func (s *Service) PurchaseRecord(seq uint64) (*Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.GetPurchase(seq)
}

// Price returns the unit price for a seed type. Zero means unset.
func (s *Service) Price(seed SeedType) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.GetPrice(seed)
}

// checkedMul multiplies two uint64 values and reports overflow explicitly
// instead of relying on wraparound.
func checkedMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/a != b {
		return 0, false
	}
	return p, true
}
