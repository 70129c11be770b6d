package service

import (
	"context"
	"math"
	"strings"
	"time"

	"perfume-boutique-ws/internal/metrics"
	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/pricing"
	"perfume-boutique-ws/internal/repository"
	"perfume-boutique-ws/internal/ws"
	"perfume-boutique-ws/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionService turns carts into orders and sales and applies their side effects:
// stock decrements, loyalty points and clerk sales totals. It is the only writer of those fields.
type TransactionService interface {
	ComposeCart(ctx context.Context, items []CartItemRequest) ([]model.CartLine, error)
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*model.Order, error)
	RecordSale(ctx context.Context, in RecordSaleInput) (*model.Sale, error)
	AdvanceOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
	GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	ListSales(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error)
}

// CartItemRequest is what a client sends when adding a product size to its cart.
type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Size      string    `json:"size" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1,lte=1000"`
}

type PlaceOrderInput struct {
	CustomerID   uuid.UUID        `validate:"uuid_required"`
	CustomerName string           // defaults to the customer's name
	BoutiqueID   uuid.UUID        `validate:"uuid_required"`
	BoutiqueName string           // defaults to the boutique's name
	Lines        []model.CartLine `validate:"min=1,dive"`
}

type RecordSaleInput struct {
	BoutiqueID    uuid.UUID           // defaults to the clerk's boutique
	ClerkID       uuid.UUID           `validate:"uuid_required"`
	CustomerID    *uuid.UUID          // nil for walk-in buyers
	CustomerName  string              `validate:"required"`
	Lines         []model.CartLine    `validate:"min=1,dive"`
	PaymentMethod model.PaymentMethod `validate:"payment_method"`
}

type TransactionOptions struct {
	// AllowOversell skips the stock sufficiency check; stock may then go negative.
	AllowOversell bool
	Now           func() time.Time
}

type transactionService struct {
	store     repository.Store
	publisher ws.Publisher
	logger    *zap.Logger
	opts      TransactionOptions
}

func NewTransactionService(store repository.Store, publisher ws.Publisher, logger *zap.Logger, opts TransactionOptions) TransactionService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &transactionService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
	}
}

// ComposeCart resolves each requested size against the catalog and captures its current price.
func (s *transactionService) ComposeCart(ctx context.Context, items []CartItemRequest) ([]model.CartLine, error) {
	if len(items) == 0 {
		return nil, &model.ValidationError{Field: "items", Reason: "cart is empty"}
	}
	products := s.store.Repos().Products
	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		if err := validator.Validate(&item); err != nil {
			return nil, err
		}
		product, err := products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, notFound("product", item.ProductID, err)
		}
		variant := product.Size(item.Size)
		if variant == nil {
			return nil, &model.NotFoundError{Entity: "size", ID: product.Name + " " + item.Size}
		}
		lines = append(lines, model.CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        variant.Label,
			UnitPrice:   variant.Price,
			Quantity:    item.Quantity,
		})
	}
	return lines, nil
}

func (s *transactionService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*model.Order, error) {
	order, err := s.placeOrder(ctx, in)
	if err != nil {
		metrics.TransactionsRejected.WithLabelValues("place_order", reason(err)).Inc()
		return nil, err
	}

	metrics.OrdersPlaced.WithLabelValues(order.BoutiqueName).Inc()
	metrics.LoyaltyPointsAwarded.Add(float64(order.PointsEarned))
	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
		zap.String("boutique_id", order.BoutiqueID.String()),
		zap.Int64("total", order.Total),
		zap.Int64("points", order.PointsEarned),
	)
	s.publish("order_placed", map[string]interface{}{
		"order":   order,
		"message": order.CustomerName + " placed an order at " + order.BoutiqueName,
	})
	return order, nil
}

func (s *transactionService) placeOrder(ctx context.Context, in PlaceOrderInput) (*model.Order, error) {
	// 1. Validasi input
	if len(in.Lines) == 0 {
		return nil, &model.ValidationError{Field: "lines", Reason: "cart is empty"}
	}
	if in.BoutiqueID == uuid.Nil {
		return nil, &model.ValidationError{Field: "boutique_id", Reason: "a boutique must be selected"}
	}
	if err := validator.Validate(&in); err != nil {
		return nil, err
	}

	total, err := pricing.ComputeTotal(in.Lines)
	if err != nil {
		return nil, &model.ValidationError{Field: "lines", Reason: "total exceeds the supported amount"}
	}
	points := pricing.ComputePoints(total)

	var order *model.Order
	err = s.store.Transaction(ctx, func(r repository.Repositories) error {
		customer, err := r.Users.FindByID(ctx, in.CustomerID)
		if err != nil {
			return notFound("customer", in.CustomerID, err)
		}
		if customer.Role != model.RoleCustomer {
			return &model.ValidationError{Field: "customer_id", Reason: "must reference a customer account"}
		}
		boutique, err := r.Boutiques.FindByID(ctx, in.BoutiqueID)
		if err != nil {
			return notFound("boutique", in.BoutiqueID, err)
		}

		// Products must exist; prices stay as captured in the cart.
		lines, err := resolveNames(ctx, r.Products, in.Lines)
		if err != nil {
			return err
		}

		customerName := strings.TrimSpace(in.CustomerName)
		if customerName == "" {
			customerName = customer.Name
		}
		boutiqueName := strings.TrimSpace(in.BoutiqueName)
		if boutiqueName == "" {
			boutiqueName = boutique.Name
		}

		order = model.NewOrder(customer.ID, customerName, boutique.ID, boutiqueName, lines, total, points, s.opts.Now())
		if err := r.Orders.Append(ctx, order); err != nil {
			return err
		}

		// Points are granted at placement and never revoked. Stock is untouched.
		return r.Users.AdjustLoyaltyPoints(ctx, customer.ID, points)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// stockChange is the net decrement of one product size within a sale.
type stockChange struct {
	productID uuid.UUID
	size      string
	quantity  int
	newStock  int
	name      string
}

// combineLines merges lines with the same product and size, keeping first-seen order.
func combineLines(lines []model.CartLine) ([]stockChange, error) {
	type key struct {
		id   uuid.UUID
		size string
	}
	index := make(map[key]int, len(lines))
	var changes []stockChange
	for _, l := range lines {
		k := key{l.ProductID, l.Size}
		if i, ok := index[k]; ok {
			if l.Quantity > math.MaxInt-changes[i].quantity {
				return nil, &model.ValidationError{Field: "lines", Reason: "combined quantity is too large"}
			}
			changes[i].quantity += l.Quantity
			continue
		}
		index[k] = len(changes)
		changes = append(changes, stockChange{productID: l.ProductID, size: l.Size, quantity: l.Quantity})
	}
	return changes, nil
}

func (s *transactionService) RecordSale(ctx context.Context, in RecordSaleInput) (*model.Sale, error) {
	sale, changes, err := s.recordSale(ctx, in)
	if err != nil {
		metrics.TransactionsRejected.WithLabelValues("record_sale", reason(err)).Inc()
		return nil, err
	}

	metrics.SalesRecorded.WithLabelValues(string(sale.PaymentMethod)).Inc()
	metrics.SalesRevenue.Add(float64(sale.Total))
	metrics.LoyaltyPointsAwarded.Add(float64(sale.PointsAwarded))
	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("clerk_id", sale.ClerkID.String()),
		zap.String("boutique_id", sale.BoutiqueID.String()),
		zap.Bool("registered_customer", sale.CustomerID != nil),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.Int64("total", sale.Total),
		zap.Int64("points", sale.PointsAwarded),
	)

	stock := make([]map[string]interface{}, 0, len(changes))
	for _, c := range changes {
		stock = append(stock, map[string]interface{}{
			"product_id": c.productID,
			"name":       c.name,
			"size":       c.size,
			"sold":       c.quantity,
			"new_stock":  c.newStock,
		})
	}
	s.publish("sale_recorded", map[string]interface{}{
		"sale":    sale,
		"stock":   stock,
		"message": "sale to " + sale.CustomerName + " recorded",
	})
	return sale, nil
}

func (s *transactionService) recordSale(ctx context.Context, in RecordSaleInput) (*model.Sale, []stockChange, error) {
	// 1. Validasi input
	if len(in.Lines) == 0 {
		return nil, nil, &model.ValidationError{Field: "lines", Reason: "cart is empty"}
	}
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if in.CustomerName == "" {
		return nil, nil, &model.ValidationError{Field: "customer_name", Reason: "is required"}
	}
	if in.CustomerID != nil && *in.CustomerID == uuid.Nil {
		in.CustomerID = nil
	}
	if err := validator.Validate(&in); err != nil {
		return nil, nil, err
	}

	total, err := pricing.ComputeTotal(in.Lines)
	if err != nil {
		return nil, nil, &model.ValidationError{Field: "lines", Reason: "total exceeds the supported amount"}
	}
	points := pricing.ComputePoints(total)
	changes, err := combineLines(in.Lines)
	if err != nil {
		return nil, nil, err
	}

	var sale *model.Sale
	err = s.store.Transaction(ctx, func(r repository.Repositories) error {
		clerk, err := r.Users.FindByID(ctx, in.ClerkID)
		if err != nil {
			return notFound("clerk", in.ClerkID, err)
		}
		if !clerk.Role.IsStaff() {
			return &model.ValidationError{Field: "clerk_id", Reason: "must reference a staff member"}
		}

		boutiqueID := in.BoutiqueID
		if boutiqueID == uuid.Nil && clerk.BoutiqueID != nil {
			boutiqueID = *clerk.BoutiqueID
		}
		// Staff without an assigned boutique must name one.
		if boutiqueID == uuid.Nil {
			return &model.ValidationError{Field: "boutique_id", Reason: "a boutique must be selected"}
		}
		if _, err := r.Boutiques.FindByID(ctx, boutiqueID); err != nil {
			return notFound("boutique", boutiqueID, err)
		}

		if in.CustomerID != nil {
			customer, err := r.Users.FindByID(ctx, *in.CustomerID)
			if err != nil {
				return notFound("customer", *in.CustomerID, err)
			}
			if customer.Role != model.RoleCustomer {
				return &model.ValidationError{Field: "customer_id", Reason: "must reference a customer account"}
			}
		}

		// 2. Hitung stok per product+size (lines are already combined)
		for i := range changes {
			c := &changes[i]
			product, err := r.Products.FindByID(ctx, c.productID)
			if err != nil {
				return notFound("product", c.productID, err)
			}
			variant := product.Size(c.size)
			if variant == nil {
				return &model.NotFoundError{Entity: "size", ID: product.Name + " " + c.size}
			}
			c.name = product.Name
			c.newStock = variant.Stock - c.quantity
			if c.newStock < 0 && !s.opts.AllowOversell {
				return &model.InsufficientStockError{
					ProductID: product.ID.String(),
					Product:   product.Name,
					Size:      c.size,
					Available: variant.Stock,
					Requested: c.quantity,
				}
			}
		}

		// 3. Update stok
		for _, c := range changes {
			if err := r.Products.SetStock(ctx, c.productID, c.size, c.newStock); err != nil {
				return notFound("size", c.productID, err)
			}
		}

		lines, err := resolveNames(ctx, r.Products, in.Lines)
		if err != nil {
			return err
		}

		// 4. Simpan sale
		sale = model.NewSale(boutiqueID, clerk.ID, in.CustomerID, in.CustomerName, lines,
			in.PaymentMethod, total, points, s.opts.Now())
		if err := r.Sales.Append(ctx, sale); err != nil {
			return err
		}

		if in.CustomerID != nil {
			if err := r.Users.AdjustLoyaltyPoints(ctx, *in.CustomerID, points); err != nil {
				return notFound("customer", *in.CustomerID, err)
			}
		}

		// The clerk's running total grows with every sale, identified customer or not.
		return r.Users.AdjustCurrentSales(ctx, clerk.ID, total)
	})
	if err != nil {
		return nil, nil, err
	}
	return sale, changes, nil
}

func (s *transactionService) AdvanceOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, &model.ValidationError{Field: "status", Reason: "is not a known order status"}
	}

	var order *model.Order
	var previous model.OrderStatus
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		var err error
		order, err = r.Orders.FindByID(ctx, orderID)
		if err != nil {
			return notFound("order", orderID, err)
		}
		previous = order.Status
		if err := order.TransitionTo(status); err != nil {
			return err
		}
		order.UpdatedAt = s.opts.Now()
		return r.Orders.UpdateStatus(ctx, order.ID, order.Status)
	})
	if err != nil {
		metrics.TransactionsRejected.WithLabelValues("advance_order_status", reason(err)).Inc()
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(string(status)).Inc()
	s.logger.Info("order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(order.Status)),
	)
	s.publish("order_status_changed", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"boutique_id": order.BoutiqueID,
		"from":        previous,
		"to":          order.Status,
	})
	return order, nil
}

func (s *transactionService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.store.Repos().Orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("order", id, err)
	}
	return order, nil
}

func (s *transactionService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return s.store.Repos().Orders.FindAll(ctx, filter)
}

func (s *transactionService) GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.store.Repos().Sales.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("sale", id, err)
	}
	return sale, nil
}

func (s *transactionService) ListSales(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error) {
	return s.store.Repos().Sales.FindAll(ctx, filter)
}

func (s *transactionService) publish(eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(eventType, payload)
}

// resolveNames checks every product exists and fills in missing display names.
// Prices are never re-read: the cart's captured price is authoritative.
func resolveNames(ctx context.Context, products repository.ProductRepository, lines []model.CartLine) ([]model.CartLine, error) {
	out := make([]model.CartLine, len(lines))
	names := make(map[uuid.UUID]string)
	for i, l := range lines {
		name, ok := names[l.ProductID]
		if !ok {
			product, err := products.FindByID(ctx, l.ProductID)
			if err != nil {
				return nil, notFound("product", l.ProductID, err)
			}
			name = product.Name
			names[l.ProductID] = name
		}
		if l.ProductName == "" {
			l.ProductName = name
		}
		out[i] = l
	}
	return out, nil
}
