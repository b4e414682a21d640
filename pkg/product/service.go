package product

type ServiceInterface interface {
	Create(product *Product) error
	Update(id string, product *Product) (*Product, error)
	GetByID(id string) (*Product, error)
	GetAll() []*Product
	GetOnSale() []*Product
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(product *Product) error {
	return s.Repo.Create(product)
}

func (s *Service) Update(id string, product *Product) (*Product, error) {
	return s.Repo.Update(id, product)
}

func (s *Service) GetByID(id string) (*Product, error) {
	return s.Repo.GetByID(id)
}

func (s *Service) GetAll() []*Product {
	return s.Repo.GetAll()
}

func (s *Service) GetOnSale() []*Product {
	return s.Repo.GetOnSale()
}
