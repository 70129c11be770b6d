package service

import (
	"context"
	"sort"
	"time"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/pricing"
	"perfume-boutique-ws/internal/repository"

	"github.com/google/uuid"
)

// DashboardService aggregates orders, sales and stock for the staff dashboards.
// A nil boutiqueIDs scope means every boutique.
type DashboardService interface {
	GetDashboardStats(ctx context.Context, boutiqueIDs []uuid.UUID) (*DashboardStats, error)
	BoutiqueSummary(ctx context.Context, boutiqueIDs []uuid.UUID) ([]BoutiqueStats, error)
	ClerkPerformance(ctx context.Context, boutiqueIDs []uuid.UUID) ([]ClerkStats, error)
	DailyReport(ctx context.Context, day time.Time, boutiqueIDs []uuid.UUID) (*DailyReport, error)
	LoyaltySummary(ctx context.Context, customerID uuid.UUID) (*LoyaltySummary, error)
	GetStockMovement(ctx context.Context, days int, boutiqueIDs []uuid.UUID) ([]StockMovementData, error)
}

type LowStockItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Size      string    `json:"size"`
	Stock     int       `json:"stock"`
}

type DashboardStats struct {
	TotalProducts  int            `json:"total_products"`
	TotalStock     int            `json:"total_stock"`
	InventoryValue int64          `json:"inventory_value"`
	LowStock       []LowStockItem `json:"low_stock"`
	TotalOrders    int            `json:"total_orders"`
	OpenOrders     int            `json:"open_orders"`
	TotalSales     int            `json:"total_sales"`
	Revenue        int64          `json:"revenue"`
}

type BoutiqueStats struct {
	BoutiqueID uuid.UUID `json:"boutique_id"`
	Name       string    `json:"name"`
	City       string    `json:"city"`
	SalesCount int       `json:"sales_count"`
	Revenue    int64     `json:"revenue"`
	Orders     int       `json:"orders"`
	OpenOrders int       `json:"open_orders"`
	Clerks     int       `json:"clerks"`
}

type ClerkStats struct {
	ClerkID      uuid.UUID  `json:"clerk_id"`
	Name         string     `json:"name"`
	BoutiqueID   *uuid.UUID `json:"boutique_id,omitempty"`
	SalesCount   int        `json:"sales_count"`
	CurrentSales int64      `json:"current_sales"`
	SalesTarget  int64      `json:"sales_target"`
	Progress     float64    `json:"progress"` // percent of target, 0 when no target is set
}

type ProductSales struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"` // includes the size
	Quantity  int       `json:"quantity"`
	Revenue   int64     `json:"revenue"`
}

type DailyReport struct {
	Date            string                        `json:"date"`
	From            time.Time                     `json:"from"`
	To              time.Time                     `json:"to"`
	SalesCount      int                           `json:"sales_count"`
	Revenue         int64                         `json:"revenue"`
	RevenueByMethod map[model.PaymentMethod]int64 `json:"revenue_by_method"`
	PointsAwarded   int64                         `json:"points_awarded"`
	OrdersCount     int                           `json:"orders_count"`
	OrdersValue     int64                         `json:"orders_value"`
	TopProducts     []ProductSales                `json:"top_products"`
}

type LoyaltySummary struct {
	CustomerID       uuid.UUID `json:"customer_id"`
	Name             string    `json:"name"`
	Points           int64     `json:"points"`
	NextTier         int64     `json:"next_tier"`
	PointsToNextTier int64     `json:"points_to_next_tier"`
	OrdersCount      int       `json:"orders_count"`
	PurchasesCount   int       `json:"purchases_count"`
	PointsFromOrders int64     `json:"points_from_orders"`
	PointsFromSales  int64     `json:"points_from_sales"`
}

// StockMovementData is one day of the stock chart: units leaving through sales
// and units reserved by new orders.
type StockMovementData struct {
	Date          string `json:"date"`
	UnitsSold     int    `json:"units_sold"`
	UnitsReserved int    `json:"units_reserved"`
	Revenue       int64  `json:"revenue"`
}

const topProductsLimit = 5

type dashboardService struct {
	repos             repository.Repositories
	lowStockThreshold int
	now               func() time.Time
}

func NewDashboardService(repos repository.Repositories, lowStockThreshold int) DashboardService {
	return &dashboardService{repos: repos, lowStockThreshold: lowStockThreshold, now: time.Now}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context, boutiqueIDs []uuid.UUID) (*DashboardStats, error) {
	products, err := s.repos.Products.FindAll(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	orders, err := s.repos.Orders.FindAll(ctx, repository.OrderFilter{BoutiqueIDs: boutiqueIDs})
	if err != nil {
		return nil, err
	}
	sales, err := s.repos.Sales.FindAll(ctx, repository.SaleFilter{BoutiqueIDs: boutiqueIDs})
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalProducts: len(products),
		LowStock:      []LowStockItem{},
		TotalOrders:   len(orders),
		TotalSales:    len(sales),
	}
	for _, p := range products {
		for _, v := range p.Sizes {
			stats.TotalStock += v.Stock
			if v.Stock > 0 {
				stats.InventoryValue += v.Price * int64(v.Stock)
			}
			if v.Stock <= s.lowStockThreshold {
				stats.LowStock = append(stats.LowStock, LowStockItem{
					ProductID: p.ID,
					Name:      p.Name,
					Brand:     p.Brand,
					Size:      v.Label,
					Stock:     v.Stock,
				})
			}
		}
	}
	sort.SliceStable(stats.LowStock, func(i, j int) bool { return stats.LowStock[i].Stock < stats.LowStock[j].Stock })

	for _, o := range orders {
		if !o.Status.IsTerminal() {
			stats.OpenOrders++
		}
	}
	for _, sale := range sales {
		stats.Revenue += sale.Total
	}
	return stats, nil
}

func (s *dashboardService) BoutiqueSummary(ctx context.Context, boutiqueIDs []uuid.UUID) ([]BoutiqueStats, error) {
	boutiques, err := s.repos.Boutiques.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repos.Orders.FindAll(ctx, repository.OrderFilter{BoutiqueIDs: boutiqueIDs})
	if err != nil {
		return nil, err
	}
	sales, err := s.repos.Sales.FindAll(ctx, repository.SaleFilter{BoutiqueIDs: boutiqueIDs})
	if err != nil {
		return nil, err
	}
	clerks, err := s.repos.Users.FindAll(ctx, repository.UserFilter{Role: model.RoleClerk})
	if err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]int)
	summary := make([]BoutiqueStats, 0, len(boutiques))
	for _, b := range boutiques {
		if !inScope(boutiqueIDs, b.ID) {
			continue
		}
		index[b.ID] = len(summary)
		summary = append(summary, BoutiqueStats{BoutiqueID: b.ID, Name: b.Name, City: b.City})
	}
	for _, sale := range sales {
		if i, ok := index[sale.BoutiqueID]; ok {
			summary[i].SalesCount++
			summary[i].Revenue += sale.Total
		}
	}
	for _, o := range orders {
		if i, ok := index[o.BoutiqueID]; ok {
			summary[i].Orders++
			if !o.Status.IsTerminal() {
				summary[i].OpenOrders++
			}
		}
	}
	for _, c := range clerks {
		if c.BoutiqueID == nil {
			continue
		}
		if i, ok := index[*c.BoutiqueID]; ok {
			summary[i].Clerks++
		}
	}
	return summary, nil
}

// ClerkPerformance ranks clerks by their running sales total.
func (s *dashboardService) ClerkPerformance(ctx context.Context, boutiqueIDs []uuid.UUID) ([]ClerkStats, error) {
	clerks, err := s.repos.Users.FindAll(ctx, repository.UserFilter{Role: model.RoleClerk})
	if err != nil {
		return nil, err
	}
	sales, err := s.repos.Sales.FindAll(ctx, repository.SaleFilter{BoutiqueIDs: boutiqueIDs})
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int)
	for _, sale := range sales {
		counts[sale.ClerkID]++
	}

	result := make([]ClerkStats, 0, len(clerks))
	for _, c := range clerks {
		if len(boutiqueIDs) > 0 && (c.BoutiqueID == nil || !inScope(boutiqueIDs, *c.BoutiqueID)) {
			continue
		}
		stats := ClerkStats{
			ClerkID:      c.ID,
			Name:         c.Name,
			BoutiqueID:   c.BoutiqueID,
			SalesCount:   counts[c.ID],
			CurrentSales: c.CurrentSales,
			SalesTarget:  c.SalesTarget,
		}
		if c.SalesTarget > 0 {
			stats.Progress = float64(c.CurrentSales) * 100 / float64(c.SalesTarget)
		}
		result = append(result, stats)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CurrentSales > result[j].CurrentSales })
	return result, nil
}

// DailyReport covers [midnight, next midnight) in the location of day.
func (s *dashboardService) DailyReport(ctx context.Context, day time.Time, boutiqueIDs []uuid.UUID) (*DailyReport, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	sales, err := s.repos.Sales.FindAll(ctx, repository.SaleFilter{BoutiqueIDs: boutiqueIDs, From: from, To: to})
	if err != nil {
		return nil, err
	}
	orders, err := s.repos.Orders.FindAll(ctx, repository.OrderFilter{BoutiqueIDs: boutiqueIDs, From: from, To: to})
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:            from.Format("2006-01-02"),
		From:            from,
		To:              to,
		SalesCount:      len(sales),
		RevenueByMethod: make(map[model.PaymentMethod]int64),
		OrdersCount:     len(orders),
		TopProducts:     []ProductSales{},
	}

	type key struct {
		id   uuid.UUID
		name string
	}
	products := make(map[key]*ProductSales)
	for _, sale := range sales {
		report.Revenue += sale.Total
		report.RevenueByMethod[sale.PaymentMethod] += sale.Total
		report.PointsAwarded += sale.PointsAwarded
		for _, item := range sale.Items {
			k := key{item.ProductID, item.ProductName}
			ps, ok := products[k]
			if !ok {
				ps = &ProductSales{ProductID: item.ProductID, Name: item.ProductName}
				products[k] = ps
			}
			ps.Quantity += item.Quantity
			ps.Revenue += item.Subtotal()
		}
	}
	for _, o := range orders {
		report.OrdersValue += o.Total
		report.PointsAwarded += o.PointsEarned
	}

	for _, ps := range products {
		report.TopProducts = append(report.TopProducts, *ps)
	}
	sort.Slice(report.TopProducts, func(i, j int) bool {
		a, b := report.TopProducts[i], report.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Name < b.Name
	})
	if len(report.TopProducts) > topProductsLimit {
		report.TopProducts = report.TopProducts[:topProductsLimit]
	}
	return report, nil
}

func (s *dashboardService) LoyaltySummary(ctx context.Context, customerID uuid.UUID) (*LoyaltySummary, error) {
	customer, err := s.repos.Users.FindByID(ctx, customerID)
	if err != nil {
		return nil, notFound("customer", customerID, err)
	}
	orders, err := s.repos.Orders.FindAll(ctx, repository.OrderFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}
	sales, err := s.repos.Sales.FindAll(ctx, repository.SaleFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}

	next := pricing.NextTier(customer.LoyaltyPoints)
	summary := &LoyaltySummary{
		CustomerID:       customer.ID,
		Name:             customer.Name,
		Points:           customer.LoyaltyPoints,
		NextTier:         next,
		PointsToNextTier: next - customer.LoyaltyPoints,
		OrdersCount:      len(orders),
		PurchasesCount:   len(sales),
	}
	for _, o := range orders {
		summary.PointsFromOrders += o.PointsEarned
	}
	for _, sale := range sales {
		summary.PointsFromSales += sale.PointsAwarded
	}
	return summary, nil
}

// GetStockMovement returns one entry per day for the last days days, oldest first, today included.
func (s *dashboardService) GetStockMovement(ctx context.Context, days int, boutiqueIDs []uuid.UUID) ([]StockMovementData, error) {
	if days <= 0 {
		return nil, &model.ValidationError{Field: "days", Reason: "must be positive"}
	}
	today := s.now()
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)

	sales, err := s.repos.Sales.FindAll(ctx, repository.SaleFilter{BoutiqueIDs: boutiqueIDs, From: start, To: end})
	if err != nil {
		return nil, err
	}
	orders, err := s.repos.Orders.FindAll(ctx, repository.OrderFilter{BoutiqueIDs: boutiqueIDs, From: start, To: end})
	if err != nil {
		return nil, err
	}

	series := make([]StockMovementData, days)
	index := make(map[string]int, days)
	for i := range series {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		series[i].Date = date
		index[date] = i
	}
	for _, sale := range sales {
		i, ok := index[sale.CreatedAt.In(start.Location()).Format("2006-01-02")]
		if !ok {
			continue
		}
		series[i].Revenue += sale.Total
		for _, item := range sale.Items {
			series[i].UnitsSold += item.Quantity
		}
	}
	for _, o := range orders {
		i, ok := index[o.CreatedAt.In(start.Location()).Format("2006-01-02")]
		if !ok {
			continue
		}
		for _, item := range o.Items {
			series[i].UnitsReserved += item.Quantity
		}
	}
	return series, nil
}

func inScope(ids []uuid.UUID, id uuid.UUID) bool {
	if len(ids) == 0 {
		return true
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
