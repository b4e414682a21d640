package order

import (
	"errors"
	"fmt"
	"time"

	"motoshop/pkg/product"
	"motoshop/pkg/retry"
	"motoshop/pkg/userlock"
)

type ServiceInterface interface {
	Checkout(userID string) (string, error)
	ListForUser(userID string) ([]*View, error)
	ListAll() ([]*View, error)
}

// Service turns a live cart into an immutable order snapshot. The same
// lock set as the cart service keeps checkout and concurrent cart edits
// of one user from interleaving.
type Service struct {
	Repo    Repository
	Cart    CartStore
	Catalog Catalog
	Users   Accounts
	Locks   *userlock.Set
}

func NewService(repo Repository, cartStore CartStore, catalog Catalog, users Accounts, locks *userlock.Set) *Service {
	return &Service{Repo: repo, Cart: cartStore, Catalog: catalog, Users: users, Locks: locks}
}

// Checkout is all-or-nothing: every carted product must still be on
// sale, the order stores a value copy of the lines, and the cart ends
// up empty. If clearing the cart fails after the order was written, the
// order is deleted again so no half-applied state stays visible.
func (s *Service) Checkout(userID string) (string, error) {
	unlock := s.Locks.Lock(userID)
	defer unlock()

	lines, err := s.Cart.List(userID)
	if err != nil {
		return "", fmt.Errorf("load cart: %w", err)
	}
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		p, err := s.lookupProduct(line.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return "", product.ErrUnavailable
			}
			return "", fmt.Errorf("catalog lookup: %w", err)
		}
		if !p.Sell {
			return "", product.ErrUnavailable
		}
		items = append(items, Item{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	order := &Order{
		UserID:  userID,
		Created: time.Now(),
		Items:   items,
	}
	if err := retry.Do(func() error { return s.Repo.Create(order) }); err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	if err := retry.Do(func() error { return s.Cart.Clear(userID) }); err != nil {
		/* компенсация: заказ без очищенной корзины не должен остаться */
		if delErr := s.Repo.Delete(order.ID); delErr != nil {
			return "", errors.Join(fmt.Errorf("clear cart: %w", err), delErr)
		}
		return "", fmt.Errorf("clear cart: %w", err)
	}

	return order.ID, nil
}

func (s *Service) ListForUser(userID string) ([]*View, error) {
	orders, err := s.Repo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return s.views(orders, false)
}

func (s *Service) ListAll() ([]*View, error) {
	orders, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return s.views(orders, true)
}

func (s *Service) views(orders []*Order, withAccount bool) ([]*View, error) {
	views := make([]*View, 0, len(orders))
	for _, o := range orders {
		v := &View{ID: o.ID, Created: o.Created}

		if withAccount {
			u, err := s.Users.FindByID(o.UserID)
			if err != nil {
				v.Account = o.UserID
			} else {
				v.Account = u.Account
			}
		}

		for _, item := range o.Items {
			p, err := s.lookupProduct(item.ProductID)
			if err != nil {
				if !errors.Is(err, product.ErrNotFound) {
					return nil, fmt.Errorf("catalog lookup: %w", err)
				}
				p = &product.Product{ID: item.ProductID}
			}
			v.Items = append(v.Items, ItemView{Product: p, Quantity: item.Quantity})
		}

		views = append(views, v)
	}

	return views, nil
}

func (s *Service) lookupProduct(id string) (*product.Product, error) {
	var p *product.Product
	err := retry.Do(func() error {
		var err error
		p, err = s.Catalog.GetByID(id)
		if errors.Is(err, product.ErrNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
	return p, err
}
