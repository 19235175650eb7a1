package cart

import "sync"

// Store is the single source of truth for one shopping session: the
// ordered cart line collection and the favorites set. All mutations go
// through its methods; every mutation persists the full collection before
// returning, so derived values read after a mutation always reflect it.
//
// The mutex guards the whole load→mutate→persist sequence: handlers for
// the same session may run on concurrent goroutines and the sequence is
// not atomic on its own.
type Store struct {
	mu      sync.Mutex
	storage Storage
	cartKey string
	favKey  string

	items     []CartLine
	favorites []int64
}

// NewStore builds a store bound to the given storage keys and restores any
// previously persisted state. Malformed or missing persisted data yields an
// empty cart and favorites set, never an error.
func NewStore(storage Storage, cartKey, favoritesKey string) *Store {
	s := &Store{
		storage: storage,
		cartKey: cartKey,
		favKey:  favoritesKey,
	}

	var pc persistedCart
	if storage.Load(cartKey, &pc) && pc.Version == storageVersion {
		for _, line := range pc.Items {
			if line.Quantity >= 1 && !s.hasLine(line.ProductID) {
				s.items = append(s.items, line)
			}
		}
	}

	var pf persistedFavorites
	if storage.Load(favoritesKey, &pf) && pf.Version == storageVersion {
		for _, id := range pf.IDs {
			if !contains(s.favorites, id) {
				s.favorites = append(s.favorites, id)
			}
		}
	}

	return s
}

// AddToCart appends a new line with quantity 1, or increments the existing
// line's quantity when the product is already in the cart.
func (s *Store) AddToCart(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity++
			s.persistCart()
			return
		}
	}
	s.items = append(s.items, CartLine{Item: item, Quantity: 1})
	s.persistCart()
}

// RemoveFromCart drops the line for the given product. Removing a product
// that is not in the cart is a no-op.
func (s *Store) RemoveFromCart(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLine(productID)
	s.persistCart()
}

// UpdateQuantity sets a line's quantity to an absolute value. A quantity
// of zero or less removes the line. An id with no line is a no-op: a
// quantity-set must not resurrect a product the session already removed.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLine(productID)
		s.persistCart()
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			s.persistCart()
			return
		}
	}
}

// ClearCart empties the cart unconditionally. Favorites are untouched.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistCart()
}

// AddToFavorites inserts the product id into the favorites set. Adding an
// id that is already present changes nothing, so a double-click cannot
// inflate the count.
func (s *Store) AddToFavorites(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.favorites, productID) {
		return
	}
	s.favorites = append(s.favorites, productID)
	s.persistFavorites()
}

// RemoveFromFavorites deletes the id from the set; no-op when absent.
func (s *Store) RemoveFromFavorites(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.favorites {
		if id == productID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			s.persistFavorites()
			return
		}
	}
}

// IsInFavorites reports membership without side effects.
func (s *Store) IsInFavorites(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.favorites, productID)
}

// CartItems returns an ordered snapshot of the current lines. Callers get
// a copy; mutating it cannot corrupt the store.
func (s *Store) CartItems() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]CartLine, len(s.items))
	copy(items, s.items)
	return items
}

// CartTotal is the sum of unit price times quantity over all lines.
func (s *Store) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, line := range s.items {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// CartCount is the total number of units in the cart, not the number of
// distinct lines: three of one product counts as three.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.items {
		count += line.Quantity
	}
	return count
}

// Favorites returns a snapshot of the favorited product ids.
func (s *Store) Favorites() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, len(s.favorites))
	copy(ids, s.favorites)
	return ids
}

// FavoritesCount is the size of the favorites set.
func (s *Store) FavoritesCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

// removeLine and the persist helpers assume the caller holds s.mu.

func (s *Store) removeLine(productID int64) {
	for i, line := range s.items {
		if line.ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) hasLine(productID int64) bool {
	for _, line := range s.items {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

func (s *Store) persistCart() {
	s.storage.Save(s.cartKey, persistedCart{Version: storageVersion, Items: s.items})
}

func (s *Store) persistFavorites() {
	s.storage.Save(s.favKey, persistedFavorites{Version: storageVersion, IDs: s.favorites})
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
