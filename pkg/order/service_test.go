package order_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"motoshop/pkg/cart"
	"motoshop/pkg/order"
	"motoshop/pkg/product"
	"motoshop/pkg/user"
	"motoshop/pkg/userlock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(o *order.Order) error {
	return m.Called(o).Error(0)
}

func (m *mockRepo) Delete(orderID string) error {
	return m.Called(orderID).Error(0)
}

func (m *mockRepo) GetByUser(userID string) ([]*order.Order, error) {
	args := m.Called(userID)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetAll() ([]*order.Order, error) {
	args := m.Called()
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCart struct {
	mock.Mock
}

func (m *mockCart) List(userID string) ([]cart.Line, error) {
	args := m.Called(userID)
	if l := args.Get(0); l != nil {
		return l.([]cart.Line), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCart) Clear(userID string) error {
	return m.Called(userID).Error(0)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetByID(id string) (*product.Product, error) {
	args := m.Called(id)
	if p := args.Get(0); p != nil {
		return p.(*product.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) FindByID(id string) (*user.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService() (*order.Service, *mockRepo, *mockCart, *mockCatalog, *mockAccounts) {
	repo := new(mockRepo)
	cartStore := new(mockCart)
	catalog := new(mockCatalog)
	accounts := new(mockAccounts)
	svc := order.NewService(repo, cartStore, catalog, accounts, userlock.New())
	return svc, repo, cartStore, catalog, accounts
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, repo, cartStore, _, _ := newTestService()

	cartStore.On("List", "user1").Return([]cart.Line{}, nil)

	_, err := svc.Checkout("user1")
	assert.ErrorIs(t, err, order.ErrEmptyCart)

	repo.AssertNotCalled(t, "Create", mock.Anything)
	cartStore.AssertNotCalled(t, "Clear", mock.Anything)
}

func TestCheckoutUnavailableProduct(t *testing.T) {
	svc, repo, cartStore, catalog, _ := newTestService()

	cartStore.On("List", "user1").Return([]cart.Line{
		{ProductID: "prodA", Quantity: 2},
		{ProductID: "prodB", Quantity: 1},
	}, nil)
	catalog.On("GetByID", "prodA").Return(&product.Product{ID: "prodA", Sell: true}, nil)
	catalog.On("GetByID", "prodB").Return(&product.Product{ID: "prodB", Sell: false}, nil)

	_, err := svc.Checkout("user1")
	assert.ErrorIs(t, err, product.ErrUnavailable)

	// all-or-nothing: no order, cart untouched
	repo.AssertNotCalled(t, "Create", mock.Anything)
	cartStore.AssertNotCalled(t, "Clear", mock.Anything)
}

func TestCheckoutMissingProduct(t *testing.T) {
	svc, repo, cartStore, catalog, _ := newTestService()

	cartStore.On("List", "user1").Return([]cart.Line{{ProductID: "gone", Quantity: 1}}, nil)
	catalog.On("GetByID", "gone").Return(nil, product.ErrNotFound)

	_, err := svc.Checkout("user1")
	assert.ErrorIs(t, err, product.ErrUnavailable)

	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCheckoutSuccess(t *testing.T) {
	svc, repo, cartStore, catalog, _ := newTestService()

	lines := []cart.Line{
		{ProductID: "prodA", Quantity: 2},
		{ProductID: "prodB", Quantity: 3},
	}
	cartStore.On("List", "user1").Return(lines, nil)
	catalog.On("GetByID", mock.Anything).Return(&product.Product{Sell: true}, nil)

	var created *order.Order
	repo.On("Create", mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*order.Order)
		created.ID = "ord1"
	}).Return(nil)
	cartStore.On("Clear", "user1").Return(nil)

	orderID, err := svc.Checkout("user1")
	assert.NoError(t, err)
	assert.Equal(t, "ord1", orderID)

	// the snapshot equals the cart exactly, item count conserved
	assert.Equal(t, []order.Item{
		{ProductID: "prodA", Quantity: 2},
		{ProductID: "prodB", Quantity: 3},
	}, created.Items)
	assert.Equal(t, "user1", created.UserID)

	cartStore.AssertCalled(t, "Clear", "user1")
}

func TestCheckoutCompensatesFailedClear(t *testing.T) {
	svc, repo, cartStore, catalog, _ := newTestService()

	cartStore.On("List", "user1").Return([]cart.Line{{ProductID: "prodA", Quantity: 2}}, nil)
	catalog.On("GetByID", "prodA").Return(&product.Product{ID: "prodA", Sell: true}, nil)

	repo.On("Create", mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		args.Get(0).(*order.Order).ID = "ord1"
	}).Return(nil)
	cartStore.On("Clear", "user1").Return(errors.New("connection reset"))
	repo.On("Delete", "ord1").Return(nil)

	_, err := svc.Checkout("user1")
	assert.Error(t, err)

	// the half-applied order was rolled back
	repo.AssertCalled(t, "Delete", "ord1")
}

func TestListForUser(t *testing.T) {
	svc, repo, _, catalog, _ := newTestService()

	repo.On("GetByUser", "user1").Return([]*order.Order{
		{
			ID:      "ord1",
			UserID:  "user1",
			Created: time.Now(),
			Items:   []order.Item{{ProductID: "prodA", Quantity: 2}},
		},
	}, nil)
	catalog.On("GetByID", "prodA").Return(&product.Product{ID: "prodA", Name: "CB650R"}, nil)

	views, err := svc.ListForUser("user1")
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Empty(t, views[0].Account)
	assert.Equal(t, "CB650R", views[0].Items[0].Product.Name)
	assert.Equal(t, 2, views[0].Items[0].Quantity)
}

func TestListForUserStorageError(t *testing.T) {
	svc, repo, _, _, _ := newTestService()

	repo.On("GetByUser", "user1").Return(nil, errors.New("connection reset"))

	// an outage must not look like a user with no orders
	views, err := svc.ListForUser("user1")
	assert.Error(t, err)
	assert.Nil(t, views)
}

func TestListAllJoinsAccounts(t *testing.T) {
	svc, repo, _, catalog, accounts := newTestService()

	repo.On("GetAll").Return([]*order.Order{
		{
			ID:      "ord1",
			UserID:  "user1",
			Created: time.Now(),
			Items:   []order.Item{{ProductID: "deleted", Quantity: 1}},
		},
	}, nil)
	// the product has vanished from the catalog since the order was cut
	catalog.On("GetByID", "deleted").Return(nil, product.ErrNotFound)
	accounts.On("FindByID", "user1").Return(&user.User{ID: "user1", Account: "rider42"}, nil)

	views, err := svc.ListAll()
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "rider42", views[0].Account)
	// snapshot quantity survives even without a live product document
	assert.Equal(t, 1, views[0].Items[0].Quantity)
	assert.Equal(t, "deleted", views[0].Items[0].Product.ID)
}
