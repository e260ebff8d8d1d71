package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type OrderService struct {
	orderRepo  repository.OrderRepository
	flowerRepo repository.FlowerRepository
	userRepo   repository.UserRepository
}

func NewOrderService(orderRepo repository.OrderRepository, flowerRepo repository.FlowerRepository, userRepo repository.UserRepository) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		flowerRepo: flowerRepo,
		userRepo:   userRepo,
	}
}

type OrderItemInput struct {
	FlowerID uint
	Quantity int
}

type OrderLineItem struct {
	FlowerID uint `json:"flowerId"`
	Quantity int  `json:"quantity"`
}

// OrderDetail is the reconstructed view of an order aggregate.
// SellerID is the first attribution found while iterating items and
// is nil when no item's flower has a seller.
type OrderDetail struct {
	OrderID   uint            `json:"orderId"`
	BuyerID   uint            `json:"buyerId"`
	OrderDate time.Time       `json:"orderDate"`
	Closed    bool            `json:"closed"`
	SellerID  *uint           `json:"sellerId"`
	Items     []OrderLineItem `json:"items"`
}

// PlaceOrder validates the whole request before any write: the buyer
// must exist and every referenced flower must exist. Only then the
// order and its line items are committed in one transaction. Input
// order is preserved and duplicate flower ids stay separate rows.
func (s *OrderService) PlaceOrder(ctx context.Context, buyerID uint, items []OrderItemInput) error {
	if _, err := s.userRepo.GetByID(ctx, buyerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBuyerNotFound
		}
		return err
	}

	if len(items) == 0 {
		return domain.ErrEmptyOrder
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if _, err := s.flowerRepo.GetByID(ctx, item.FlowerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("flower %d: %w", item.FlowerID, domain.ErrFlowerNotFound)
			}
			return err
		}
	}

	order := &domain.Order{
		BuyerID:   buyerID,
		OrderDate: time.Now().Truncate(24 * time.Hour),
	}
	lineItems := make([]*domain.OrderItem, len(items))
	for i, item := range items {
		lineItems[i] = &domain.OrderItem{
			FlowerID: item.FlowerID,
			Quantity: item.Quantity,
		}
	}

	if err := s.orderRepo.Create(ctx, order, lineItems); err != nil {
		return err
	}

	log.Info().Uint("orderID", order.ID).Uint("buyerID", buyerID).Int("items", len(items)).Msg("order placed")
	return nil
}

// GetOrderDetail reconstructs one order for the caller. An order that
// does not exist, has no line items, or is not visible to the caller
// all surface as ErrOrderNotFound: the detail endpoint deliberately
// does not reveal whether a foreign order id exists.
func (s *OrderService) GetOrderDetail(ctx context.Context, orderID uint, caller *domain.User) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if order.BuyerID != caller.ID && !caller.CanManageCatalog() {
		return nil, domain.ErrOrderNotFound
	}

	detail, err := s.buildDetail(ctx, order)
	if err != nil {
		return nil, err
	}
	if len(detail.Items) == 0 {
		// An aggregate without items is incomplete and stays invisible.
		return nil, domain.ErrOrderNotFound
	}
	return detail, nil
}

// ListForBuyer returns the caller's own orders.
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID uint) ([]*OrderDetail, error) {
	orders, err := s.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(ctx, orders)
}

// ListForSeller returns orders containing at least one line item whose
// flower is attributed to the seller, deduplicated by order id.
func (s *OrderService) ListForSeller(ctx context.Context, sellerID uint) ([]*OrderDetail, error) {
	orders, err := s.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(ctx, orders)
}

// ListAll returns every order in the system, for admin use.
func (s *OrderService) ListAll(ctx context.Context) ([]*OrderDetail, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(ctx, orders)
}

// ToggleStatus flips the order's closed flag. Capability checks happen
// at the API boundary; this only cares that the order exists.
func (s *OrderService) ToggleStatus(ctx context.Context, orderID uint) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}

	order.Closed = !order.Closed
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return err
	}

	log.Info().Uint("orderID", orderID).Bool("closed", order.Closed).Msg("order status toggled")
	return nil
}

func (s *OrderService) buildDetails(ctx context.Context, orders []*domain.Order) ([]*OrderDetail, error) {
	details := make([]*OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail, err := s.buildDetail(ctx, order)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// buildDetail joins line items back to seller attribution. The seller
// shown is the first attribution found while iterating items; when a
// flower has several sellers this is an acknowledged simplification,
// not a correctness guarantee.
func (s *OrderService) buildDetail(ctx context.Context, order *domain.Order) (*OrderDetail, error) {
	items, err := s.orderRepo.ItemsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{
		OrderID:   order.ID,
		BuyerID:   order.BuyerID,
		OrderDate: order.OrderDate,
		Closed:    order.Closed,
		Items:     make([]OrderLineItem, 0, len(items)),
	}

	for _, item := range items {
		detail.Items = append(detail.Items, OrderLineItem{
			FlowerID: item.FlowerID,
			Quantity: item.Quantity,
		})
		if detail.SellerID == nil {
			sellerID, err := s.flowerRepo.FirstSellerID(ctx, item.FlowerID)
			if err != nil {
				return nil, err
			}
			detail.SellerID = sellerID
		}
	}

	return detail, nil
}
