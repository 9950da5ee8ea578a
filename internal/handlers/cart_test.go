package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/demomarket/marketplace/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Repo ---

type MockCartRepo struct {
	Products  map[uint]*models.Product
	Lines     []models.CartLine
	AddErr    error
	DeleteErr error

	AddedItems  []*models.CartItem
	LastDeleted struct {
		UserID uint
		CartID uint
	}
}

func (m *MockCartRepo) GetProductByID(id uint) (*models.Product, error) {
	if p, ok := m.Products[id]; ok {
		return p, nil
	}
	return nil, models.ErrProductNotFound
}

func (m *MockCartRepo) AddCartItem(item *models.CartItem) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	m.AddedItems = append(m.AddedItems, item)
	return nil
}

func (m *MockCartRepo) DeleteCartItem(userID, cartID uint) error {
	m.LastDeleted.UserID = userID
	m.LastDeleted.CartID = cartID
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return nil
}

func (m *MockCartRepo) GetCartLines(userID uint) ([]models.CartLine, error) {
	return m.Lines, nil
}

func repoWithProduct(id uint, name string, price float64) *MockCartRepo {
	return &MockCartRepo{
		Products: map[uint]*models.Product{
			id: {ID: id, Name: name, Price: decimal.NewFromFloat(price)},
		},
	}
}

// --- Tests ---

func TestAddToCart(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		repoSetup          func() *MockCartRepo
		expectedStatusCode int
		checkRepo          func(t *testing.T, repo *MockCartRepo)
	}{
		{
			name:               "Shopper adds an existing product",
			body:               `{"product_id": 5, "quantity": 2}`,
			repoSetup:          func() *MockCartRepo { return repoWithProduct(5, "Mug", 7.50) },
			expectedStatusCode: http.StatusOK,
			checkRepo: func(t *testing.T, repo *MockCartRepo) {
				require.Len(t, repo.AddedItems, 1)
				assert.Equal(t, uint(42), repo.AddedItems[0].UserID)
				assert.Equal(t, uint(5), repo.AddedItems[0].ProductID)
				assert.Equal(t, 2, repo.AddedItems[0].Quantity)
			},
		},
		{
			name:      "Duplicate adds accumulate as separate rows",
			body:      `{"product_id": 5, "quantity": 1}`,
			repoSetup: func() *MockCartRepo { return repoWithProduct(5, "Mug", 7.50) },
			// Second add asserted below via two sequential calls
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Unknown product is 404",
			body:               `{"product_id": 99, "quantity": 1}`,
			repoSetup:          func() *MockCartRepo { return repoWithProduct(5, "Mug", 7.50) },
			expectedStatusCode: http.StatusNotFound,
			checkRepo: func(t *testing.T, repo *MockCartRepo) {
				assert.Empty(t, repo.AddedItems)
			},
		},
		{
			name:               "Zero quantity rejected",
			body:               `{"product_id": 5, "quantity": 0}`,
			repoSetup:          func() *MockCartRepo { return repoWithProduct(5, "Mug", 7.50) },
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Negative quantity rejected",
			body:               `{"product_id": 5, "quantity": -3}`,
			repoSetup:          func() *MockCartRepo { return repoWithProduct(5, "Mug", 7.50) },
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Missing product_id rejected",
			body:               `{"quantity": 1}`,
			repoSetup:          func() *MockCartRepo { return repoWithProduct(5, "Mug", 7.50) },
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := tc.repoSetup()
			h := &CartHandler{Store: repo}

			req := authedRequest(http.MethodPost, "/add_to_cart", tc.body, newShopper(42))
			rec := httptest.NewRecorder()
			h.AddToCart(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkRepo != nil {
				tc.checkRepo(t, repo)
			}
		})
	}
}

func TestAddToCartDuplicatesAccumulate(t *testing.T) {
	repo := repoWithProduct(5, "Mug", 7.50)
	h := &CartHandler{Store: repo}

	for i := 0; i < 2; i++ {
		req := authedRequest(http.MethodPost, "/add_to_cart", `{"product_id": 5, "quantity": 1}`, newShopper(42))
		rec := httptest.NewRecorder()
		h.AddToCart(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Len(t, repo.AddedItems, 2, "same product added twice should produce two rows")
}

func TestRemoveFromCart(t *testing.T) {
	testCases := []struct {
		name               string
		cartID             string
		repoSetup          func() *MockCartRepo
		expectedStatusCode int
	}{
		{
			name:               "Owned row removed",
			cartID:             "11",
			repoSetup:          func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusOK,
		},
		{
			name:   "Missing or foreign row is 404",
			cartID: "99",
			repoSetup: func() *MockCartRepo {
				return &MockCartRepo{DeleteErr: models.ErrCartItemNotFound}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Non-numeric id rejected",
			cartID:             "abc",
			repoSetup:          func() *MockCartRepo { return &MockCartRepo{} },
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := tc.repoSetup()
			h := &CartHandler{Store: repo}

			req := authedRequest(http.MethodPost, "/remove_from_cart/"+tc.cartID, "", newShopper(42))
			req.SetPathValue("cart_id", tc.cartID)
			rec := httptest.NewRecorder()
			h.RemoveFromCart(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode == http.StatusOK {
				assert.Equal(t, uint(42), repo.LastDeleted.UserID, "deletion must be scoped to the caller")
				assert.Equal(t, uint(11), repo.LastDeleted.CartID)
			}
		})
	}
}

func TestGetCart(t *testing.T) {
	repo := &MockCartRepo{
		Lines: []models.CartLine{
			{ID: 1, Name: "Mug", Price: decimal.NewFromFloat(7.50), Quantity: 2},
			{ID: 2, Name: "Keyboard", Price: decimal.NewFromFloat(49.99), Quantity: 1},
		},
	}
	h := &CartHandler{Store: repo}

	req := authedRequest(http.MethodGet, "/cart", "", newShopper(42))
	rec := httptest.NewRecorder()
	h.GetCart(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []cartLine
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Mug", resp[0].Name)
	assert.InDelta(t, 7.50, resp[0].Price, 0.001)
	assert.Equal(t, 2, resp[0].Quantity)
}
