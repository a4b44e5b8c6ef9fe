package ledger

// Storage is the main interface for the ledger storage layer: registered
// farmers, the price table and the append-only purchase log.
type Storage interface {
	PutFarmer(f *Farmer) error
	GetFarmer(identity string) (*Farmer, error)
	SetPrice(seed SeedType, price uint64) error
	GetPrice(seed SeedType) (uint64, error)
	// Settle assigns the next sequence number to p, appends it and bumps the
	// purchase counter, running transfer inside the same atomic unit. If
	// transfer returns an error, nothing is committed.
	Settle(p *Purchase, transfer func(p *Purchase) error) error
	GetPurchase(seq uint64) (*Purchase, error)
	PurchaseCount() (uint64, error)
}

// LocalStorage provides an in-memory implementation of Storage: two maps
// plus the purchase counter.
type LocalStorage struct {
	farmers   map[string]*Farmer
	prices    map[SeedType]uint64
	purchases map[uint64]*Purchase
	counter   uint64
}

// NewLocalStorage instantiates a LocalStorage with empty maps.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		farmers:   map[string]*Farmer{},
		prices:    map[SeedType]uint64{},
		purchases: map[uint64]*Purchase{},
	}
}

// PutFarmer inserts a new farmer record. Registration is once only; returns
// ErrAlreadyRegistered if the identity already exists.
func (l *LocalStorage) PutFarmer(f *Farmer) error {
	if _, ok := l.farmers[f.Identity]; ok {
		return ErrAlreadyRegistered
	}
	l.farmers[f.Identity] = f
	return nil
}

// GetFarmer retrieves a farmer by identity token.
// Returns ErrNotFound if the identity was never registered.
func (l *LocalStorage) GetFarmer(identity string) (*Farmer, error) {
	f, ok := l.farmers[identity]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

// SetPrice overwrites the unit price for a seed type. No history is kept.
func (l *LocalStorage) SetPrice(seed SeedType, price uint64) error {
	l.prices[seed] = price
	return nil
}

// GetPrice returns the unit price for a seed type. Zero means unset.
func (l *LocalStorage) GetPrice(seed SeedType) (uint64, error) {
	return l.prices[seed], nil
}

// Settle stages p under the next sequence number and runs transfer. The
// record and counter bump are only kept when transfer succeeds, so a failed
// payment leaves the ledger exactly as it was.
func (l *LocalStorage) Settle(p *Purchase, transfer func(p *Purchase) error) error {
	p.Seq = l.counter
	if err := transfer(p); err != nil {
		return err
	}
	l.purchases[p.Seq] = p
	l.counter++
	return nil
}

// GetPurchase retrieves a purchase record by sequence number.
func (l *LocalStorage) GetPurchase(seq uint64) (*Purchase, error) {
	p, ok := l.purchases[seq]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// PurchaseCount returns the number of settled purchases, which always
// equals the next sequence number.
func (l *LocalStorage) PurchaseCount() (uint64, error) {
	return l.counter, nil
}
