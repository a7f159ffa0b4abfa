// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORAGE_DRIVER=memory (desarrollo) y en los tests de casos de uso.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

type stockKey struct {
	productID  int64
	locationID int64
}

// Store es el estado compartido por todos los repositorios en memoria.
// Las transacciones (TxRunner) toman el lock de escritura completo y registran un
// journal de deshacer; los repos fuera de tx bloquean por operación.
type Store struct {
	mu        sync.RWMutex
	locations map[int64]*entity.Location
	products  map[int64]*entity.Product
	moves     map[int64]*entity.StockMove
	stock     map[stockKey]*entity.Stock
	users     map[string]*entity.User

	nextLocation int64
	nextProduct  int64
	nextMove     int64

	now func() time.Time
}

// NewStore crea un store con las ubicaciones base: Partners/Vendors, WH/Stock y Partners/Customers.
func NewStore() *Store {
	s := &Store{
		locations: make(map[int64]*entity.Location),
		products:  make(map[int64]*entity.Product),
		moves:     make(map[int64]*entity.StockMove),
		stock:     make(map[stockKey]*entity.Stock),
		users:     make(map[string]*entity.User),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, l := range []struct{ name, kind string }{
		{"Partners/Vendors", entity.LocationVendor},
		{"WH/Stock", entity.LocationInternal},
		{"Partners/Customers", entity.LocationCustomer},
	} {
		s.nextLocation++
		s.locations[s.nextLocation] = &entity.Location{ID: s.nextLocation, Name: l.name, Kind: l.kind, CreatedAt: s.now()}
	}
	return s
}

// SetClock reemplaza el reloj usado para timestamps generados por el store.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Repositories agrupa los repositorios fuera de transacción sobre un mismo store.
type Repositories struct {
	Locations *LocationRepo
	Products  *ProductRepo
	Moves     *MoveRepo
	Stock     *StockRepo
	Users     *UserRepo
	Tx        *TxRunner
}

// NewRepositories construye todos los adaptadores sobre el store.
func NewRepositories(s *Store) *Repositories {
	return &Repositories{
		Locations: &LocationRepo{s: s},
		Products:  &ProductRepo{s: s},
		Moves:     &MoveRepo{s: s},
		Stock:     &StockRepo{s: s},
		Users:     &UserRepo{s: s},
		Tx:        NewTxRunner(s),
	}
}

// tx es el journal de deshacer de una transacción en curso. Un *tx nil indica que el repo
// opera fuera de transacción y debe tomar el lock por sí mismo.
type tx struct {
	undo []func()
}

func (t *tx) record(f func()) {
	if t != nil {
		t.undo = append(t.undo, f)
	}
}

func (t *tx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (s *Store) rlock(t *tx) func() {
	if t != nil {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock(t *tx) func() {
	if t != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) view(m *entity.StockMove) *entity.StockMoveView {
	v := &entity.StockMoveView{StockMove: *cloneMove(m)}
	if p := s.products[m.ProductID]; p != nil {
		v.ProductSKU, v.ProductName = p.SKU, p.Name
	}
	if l := s.locations[m.SourceID]; l != nil {
		v.SourceName, v.SourceKind = l.Name, l.Kind
	}
	if l := s.locations[m.DestID]; l != nil {
		v.DestName, v.DestKind = l.Name, l.Kind
	}
	return v
}

func cloneMove(m *entity.StockMove) *entity.StockMove {
	if m == nil {
		return nil
	}
	c := *m
	if m.DoneAt != nil {
		t := *m.DoneAt
		c.DoneAt = &t
	}
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneLocation(l *entity.Location) *entity.Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
