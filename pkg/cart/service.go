package cart

import (
	"errors"
	"fmt"

	"motoshop/pkg/product"
	"motoshop/pkg/retry"
	"motoshop/pkg/userlock"
)

type ServiceInterface interface {
	AddOrAdjust(userID, productID string, delta int) (int, error)
	Remove(userID, productID string) error
	List(userID string) ([]LineView, error)
	Total(userID string) (int, error)
}

type Service struct {
	Repo    Repository
	Catalog Catalog
	Locks   *userlock.Set
}

func NewService(repo Repository, catalog Catalog, locks *userlock.Set) *Service {
	return &Service{Repo: repo, Catalog: catalog, Locks: locks}
}

// AddOrAdjust merges delta into the user's line for productID and
// returns the cart's aggregate quantity afterwards (the badge count).
//
// An existing line is adjusted without consulting the catalog, so a
// carted product stays adjustable after being taken off sale; it is
// re-checked at checkout. A new line requires the product to exist and
// be on sale, and a positive delta.
func (s *Service) AddOrAdjust(userID, productID string, delta int) (int, error) {
	unlock := s.Locks.Lock(userID)
	defer unlock()

	var existed bool
	err := retry.Do(func() error {
		var err error
		_, existed, err = s.Repo.Adjust(userID, productID, delta)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("adjust cart line: %w", err)
	}

	if !existed {
		p, err := s.lookupProduct(productID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return 0, product.ErrUnavailable
			}
			return 0, fmt.Errorf("catalog lookup: %w", err)
		}
		if !p.Sell {
			return 0, product.ErrUnavailable
		}
		if delta <= 0 {
			return 0, ErrLineNotFound
		}
		if err := retry.Do(func() error { return s.Repo.Insert(userID, productID, delta) }); err != nil {
			return 0, fmt.Errorf("insert cart line: %w", err)
		}
	}

	total, err := s.total(userID)
	if err != nil {
		return 0, fmt.Errorf("cart total: %w", err)
	}
	return total, nil
}

func (s *Service) Remove(userID, productID string) error {
	unlock := s.Locks.Lock(userID)
	defer unlock()

	var removed bool
	err := retry.Do(func() error {
		var err error
		removed, err = s.Repo.Delete(userID, productID)
		return err
	})
	if err != nil {
		return err
	}
	if !removed {
		return ErrLineNotFound
	}
	return nil
}

func (s *Service) List(userID string) ([]LineView, error) {
	var lines []Line
	err := retry.Do(func() error {
		var err error
		lines, err = s.Repo.List(userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		p, err := s.lookupProduct(line.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				/* товар удалён из каталога, строку всё равно показываем */
				p = &product.Product{ID: line.ProductID}
			} else {
				return nil, fmt.Errorf("catalog lookup: %w", err)
			}
		}
		views = append(views, LineView{Product: p, Quantity: line.Quantity})
	}

	return views, nil
}

func (s *Service) Total(userID string) (int, error) {
	return s.total(userID)
}

func (s *Service) total(userID string) (int, error) {
	var total int
	err := retry.Do(func() error {
		var err error
		total, err = s.Repo.Total(userID)
		return err
	})
	return total, err
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
