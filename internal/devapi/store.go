// Package devapi is a local stand-in for the marketplace backend: the same
// wire surface served from an in-memory store. It backs integration tests
// and local development; it is not a production server.
package devapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
)

type userRecord struct {
	domain.User
	passwordHash string
}

type sellerRecord struct {
	domain.SellerProfile
}

type driverRecord struct {
	ID            int
	UserID        int
	LicenseNumber string
	VehicleType   string
	VehicleNumber string
}

type buyerRecord struct {
	ID      int
	UserID  int
	Address string
}

// Store holds all backend state behind one mutex. The devapi serves a single
// developer or test run; contention is not a concern.
type Store struct {
	mu sync.Mutex

	nextID     int
	users      map[string]*userRecord // keyed by username
	buyers     map[int]*buyerRecord   // keyed by user id
	sellers    map[int]*sellerRecord  // keyed by seller id
	drivers    map[int]*driverRecord  // keyed by driver id
	categories []domain.FoodCategory
	foods      map[int]*domain.Food
	orders     map[int]*domain.Order
	payments   map[int]*domain.Payment
}

func NewStore() *Store {
	return &Store{
		nextID:   1,
		users:    make(map[string]*userRecord),
		buyers:   make(map[int]*buyerRecord),
		sellers:  make(map[int]*sellerRecord),
		drivers:  make(map[int]*driverRecord),
		foods:    make(map[int]*domain.Food),
		orders:   make(map[int]*domain.Order),
		payments: make(map[int]*domain.Payment),
	}
}

func (s *Store) id() int {
	id := s.nextID
	s.nextID++
	return id
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// Seed populates the store with a buyer, a seller with a small catalog, and
// the standard categories, so a freshly started devapi is usable at once.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{"Pizza", "Burgers", "Drinks", "Desserts"} {
		s.categories = append(s.categories, domain.FoodCategory{
			ID:        s.id(),
			Name:      name,
			CreatedAt: now(),
		})
	}

	buyer := s.addUser("alice", "alice@example.com", "secret1", "Alice Nguyen", "0123456789", domain.RoleBuyer)
	s.buyers[buyer.ID] = &buyerRecord{ID: s.id(), UserID: buyer.ID, Address: "1 Main St"}

	seller := s.addUser("bob", "bob@example.com", "secret2", "Bob Tran", "0987654321", domain.RoleSeller)
	sellerID := s.id()
	s.sellers[sellerID] = &sellerRecord{SellerProfile: domain.SellerProfile{
		ID:           sellerID,
		UserID:       seller.ID,
		StoreName:    "Pizza Palace",
		StoreAddress: "42 Food Court",
		Rating:       4.5,
		User: &domain.SellerUser{
			ID:          seller.ID,
			FullName:    seller.FullName,
			PhoneNumber: seller.PhoneNumber,
		},
	}}

	pizzaCat := s.categories[0].ID
	for _, f := range []struct {
		name  string
		price string
		stock int
	}{
		{"Margherita", "9.90", 20},
		{"Pepperoni", "11.50", 15},
		{"Quattro Formaggi", "12.75", 10},
	} {
		price, _ := decimal.NewFromString(f.price)
		cat := pizzaCat
		id := s.id()
		s.foods[id] = &domain.Food{
			ID:            id,
			SellerID:      sellerID,
			CategoryID:    &cat,
			Name:          f.name,
			Price:         price,
			IsAvailable:   true,
			StockQuantity: f.stock,
			CreatedAt:     now(),
		}
	}
}

// addUser creates a user record with a bcrypt-hashed password. Callers must
// hold s.mu.
func (s *Store) addUser(username, email, password, fullName, phone string, role domain.Role) *userRecord {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &userRecord{
		User: domain.User{
			ID:          s.id(),
			Email:       email,
			Username:    username,
			FullName:    fullName,
			PhoneNumber: phone,
			Role:        string(role),
			IsActive:    true,
			CreatedAt:   now(),
		},
		passwordHash: string(hash),
	}
	s.users[username] = u
	return u
}

func (s *Store) authenticate(username, password string) (*userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) != nil {
		return nil, false
	}
	return u, true
}

func (s *Store) userByName(username string) (*userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	return u, ok
}

func (s *Store) hasAccount(username, email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}

func (s *Store) sellerByUser(userID int) (*sellerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sel := range s.sellers {
		if sel.UserID == userID {
			return sel, true
		}
	}
	return nil, false
}

func (s *Store) buyerByUser(userID int) (*buyerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buyers {
		if b.UserID == userID {
			return b, true
		}
	}
	return nil, false
}

func (s *Store) listCategories() []domain.FoodCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FoodCategory, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) listFoods(filter domain.FoodFilter) []domain.Food {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.foods))
	for id := range s.foods {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]domain.Food, 0, len(ids))
	for _, id := range ids {
		f := s.foods[id]
		if filter.SellerID != nil && f.SellerID != *filter.SellerID {
			continue
		}
		if filter.CategoryID != nil && (f.CategoryID == nil || *f.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.IsAvailable != nil && f.IsAvailable != *filter.IsAvailable {
			continue
		}
		out = append(out, *f)
	}
	return paginate(out, filter.Skip, filter.Limit)
}

func (s *Store) listSellers(filter domain.SellerFilter) []domain.SellerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SellerProfile, 0, len(s.sellers))
	for _, sel := range s.sellers {
		if filter.Search != "" && !strings.Contains(strings.ToLower(sel.StoreName), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.MinRating != nil && sel.Rating < *filter.MinRating {
			continue
		}
		out = append(out, sel.SellerProfile)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].TotalOrders > out[j].TotalOrders
	})
	return paginate(out, filter.Skip, filter.Limit)
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
