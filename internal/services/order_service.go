package services

import (
	"context"

	"catering_manager/internal/metrics"
	"catering_manager/internal/models"
	"catering_manager/internal/repository"

	"github.com/sirupsen/logrus"
)

type OrderService interface {
	UpdateDraft(form models.OrderForm) *models.Order
	ConfirmOrder(ctx context.Context) (*models.Order, error)
	ClearForm()
	LoadOrderForViewing(id string) (*models.Order, error)
	Draft() *models.Order
	Form() models.OrderForm
	ExportsEnabled() bool
	ListOrders() []models.Order
	GetOrder(id string) (*models.Order, error)
}

type orderService struct {
	state     *State
	orderRepo repository.OrderRepository
	log       *logrus.Entry
}

func NewOrderService(state *State, orderRepo repository.OrderRepository, logger *logrus.Logger) OrderService {
	return &orderService{
		state:     state,
		orderRepo: orderRepo,
		log:       componentLogger(logger, "orders"),
	}
}

// UpdateDraft stores the form and recomputes the draft. It returns nil when
// the form does not describe an order yet.
func (s *orderService) UpdateDraft(form models.OrderForm) *models.Order {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.form = form
	s.state.recomputeDraft()
	return s.draftCopy()
}

func (s *orderService) ConfirmOrder(ctx context.Context) (*models.Order, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.recomputeDraft()
	if s.state.draft == nil {
		return nil, NewValidationError("please select a menu and quantity")
	}

	order := copyOrder(*s.state.draft)
	s.state.orders = append(s.state.orders, order)
	s.state.exportsEnabled = true
	metrics.RecordOrderConfirmed(order.TotalAmount)
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"menu_id":  order.MenuID,
		"total":    order.TotalAmount,
	}).Info("order confirmed")

	err := persist(ctx, s.log, "orders", func(ctx context.Context) error {
		return s.orderRepo.SaveAll(ctx, s.state.orders)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderService) ClearForm() {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.form = models.DefaultOrderForm()
	s.state.draft = nil
	s.state.exportsEnabled = false
}

// LoadOrderForViewing copies a past order back into the form. The menu is
// matched by the stored menu id first, then by the first menu with the same name.
func (s *orderService) LoadOrderForViewing(id string) (*models.Order, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	_, order := s.state.findOrder(id)
	if order == nil {
		return nil, notFound("order", id)
	}

	menuID := ""
	if _, m := s.state.findMenu(order.MenuID); order.MenuID != "" && m != nil {
		menuID = m.ID
	} else {
		for _, m := range s.state.menus {
			if m.Name == order.MenuName {
				menuID = m.ID
				break
			}
		}
	}

	s.state.form = models.OrderForm{
		MenuID:        menuID,
		Quantity:      order.Quantity,
		ClientName:    order.ClientName,
		ClientPhone:   order.ClientPhone,
		ClientAddress: order.ClientAddress,
	}
	s.state.recomputeDraft()
	s.log.WithFields(logrus.Fields{"order_id": id, "menu_id": menuID}).Debug("order loaded into form")
	return s.draftCopy(), nil
}

func (s *orderService) Draft() *models.Order {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.draftCopy()
}

func (s *orderService) Form() models.OrderForm {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.form
}

func (s *orderService) ExportsEnabled() bool {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.exportsEnabled
}

func (s *orderService) ListOrders() []models.Order {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.snapshot().Orders
}

func (s *orderService) GetOrder(id string) (*models.Order, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	_, order := s.state.findOrder(id)
	if order == nil {
		return nil, notFound("order", id)
	}
	found := copyOrder(*order)
	return &found, nil
}

func (s *orderService) draftCopy() *models.Order {
	if s.state.draft == nil {
		return nil
	}
	d := copyOrder(*s.state.draft)
	return &d
}
