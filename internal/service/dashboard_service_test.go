package service_test

import (
	"context"
	"testing"
	"time"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardAggregates(t *testing.T) {
	engine, store, _ := newEngine(t, service.TransactionOptions{})
	dash := service.NewDashboardService(store.Repos(), 10)
	ctx := context.Background()
	customer := amina

	sauvage60 := cart(t, engine, service.CartItemRequest{ProductID: sauvage, Size: "60ml", Quantity: 2})
	laVie15 := cart(t, engine, service.CartItemRequest{ProductID: laVieEstBelle, Size: "15ml", Quantity: 1})

	_, err := engine.RecordSale(ctx, service.RecordSaleInput{
		ClerkID: fatima, CustomerID: &customer, CustomerName: "Amina Chakri", Lines: sauvage60, PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)
	_, err = engine.RecordSale(ctx, service.RecordSaleInput{
		ClerkID: karim, CustomerName: "Walk-in", Lines: laVie15, PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)
	_, err = engine.PlaceOrder(ctx, service.PlaceOrderInput{CustomerID: sarah, BoutiqueID: sousse, Lines: laVie15})
	require.NoError(t, err)

	t.Run("stats", func(t *testing.T) {
		stats, err := dash.GetDashboardStats(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 10, stats.TotalProducts)
		assert.Equal(t, 2, stats.TotalSales)
		assert.Equal(t, int64(2100+299), stats.Revenue)
		assert.Equal(t, 1, stats.TotalOrders)
		assert.Equal(t, 1, stats.OpenOrders)
		for _, item := range stats.LowStock {
			assert.LessOrEqual(t, item.Stock, 10)
		}
		require.NotEmpty(t, stats.LowStock, "Bleu de Chanel 150ml starts at 8")
	})

	t.Run("scoped stats", func(t *testing.T) {
		stats, err := dash.GetDashboardStats(ctx, []uuid.UUID{sousse})
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalSales)
		assert.Equal(t, int64(299), stats.Revenue)
	})

	t.Run("boutiques", func(t *testing.T) {
		summary, err := dash.BoutiqueSummary(ctx, []uuid.UUID{tunisCentre, sousse})
		require.NoError(t, err)
		require.Len(t, summary, 2)
		byID := map[uuid.UUID]service.BoutiqueStats{}
		for _, b := range summary {
			byID[b.BoutiqueID] = b
		}
		assert.Equal(t, int64(2100), byID[tunisCentre].Revenue)
		assert.Equal(t, 1, byID[tunisCentre].Clerks)
		assert.Equal(t, 1, byID[sousse].Orders)
		assert.Equal(t, 1, byID[sousse].OpenOrders)
	})

	t.Run("clerks", func(t *testing.T) {
		clerks, err := dash.ClerkPerformance(ctx, nil)
		require.NoError(t, err)
		require.Len(t, clerks, 2)
		assert.Equal(t, fatima, clerks[0].ClerkID)
		assert.Equal(t, int64(2100), clerks[0].CurrentSales)
		assert.InDelta(t, 14.0, clerks[0].Progress, 0.001)
		assert.Equal(t, 1, clerks[1].SalesCount)

		scoped, err := dash.ClerkPerformance(ctx, []uuid.UUID{sousse})
		require.NoError(t, err)
		require.Len(t, scoped, 1)
		assert.Equal(t, karim, scoped[0].ClerkID)
	})

	t.Run("daily", func(t *testing.T) {
		report, err := dash.DailyReport(ctx, fixedNow, nil)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-14", report.Date)
		assert.Equal(t, 2, report.SalesCount)
		assert.Equal(t, int64(2100), report.RevenueByMethod[model.PaymentCard])
		assert.Equal(t, int64(299), report.RevenueByMethod[model.PaymentCash])
		assert.Equal(t, 1, report.OrdersCount)
		assert.Equal(t, int64(210+29+29), report.PointsAwarded)
		require.NotEmpty(t, report.TopProducts)
		assert.Equal(t, "Sauvage 60ml", report.TopProducts[0].Name)

		empty, err := dash.DailyReport(ctx, fixedNow.Add(24*time.Hour), nil)
		require.NoError(t, err)
		assert.Zero(t, empty.SalesCount)
		assert.Empty(t, empty.TopProducts)
	})

	t.Run("loyalty", func(t *testing.T) {
		summary, err := dash.LoyaltySummary(ctx, amina)
		require.NoError(t, err)
		assert.Equal(t, int64(660), summary.Points)
		assert.Equal(t, int64(1000), summary.NextTier)
		assert.Equal(t, int64(340), summary.PointsToNextTier)
		assert.Equal(t, int64(210), summary.PointsFromSales)
		assert.Equal(t, 1, summary.PurchasesCount)

		_, err = dash.LoyaltySummary(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestStockMovement(t *testing.T) {
	engine, store, _ := newEngine(t, service.TransactionOptions{Now: time.Now})
	dash := service.NewDashboardService(store.Repos(), 10)
	ctx := context.Background()
	lines := cart(t, engine, service.CartItemRequest{ProductID: sauvage, Size: "15ml", Quantity: 2})

	_, err := engine.RecordSale(ctx, service.RecordSaleInput{
		ClerkID: karim, CustomerName: "Walk-in", Lines: lines, PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)
	_, err = engine.PlaceOrder(ctx, service.PlaceOrderInput{CustomerID: amina, BoutiqueID: tunisCentre, Lines: lines[:1]})
	require.NoError(t, err)

	series, err := dash.GetStockMovement(ctx, 7, nil)
	require.NoError(t, err)
	require.Len(t, series, 7)
	today := series[6]
	assert.Equal(t, time.Now().Format("2006-01-02"), today.Date)
	assert.Equal(t, 2, today.UnitsSold)
	assert.Equal(t, 2, today.UnitsReserved)
	assert.Equal(t, int64(700), today.Revenue)
	assert.Zero(t, series[0].UnitsSold)

	scoped, err := dash.GetStockMovement(ctx, 7, []uuid.UUID{tunisCentre})
	require.NoError(t, err)
	assert.Zero(t, scoped[6].UnitsSold)
	assert.Equal(t, 2, scoped[6].UnitsReserved)

	_, err = dash.GetStockMovement(ctx, 0, nil)
	assert.ErrorIs(t, err, model.ErrValidation)
}
