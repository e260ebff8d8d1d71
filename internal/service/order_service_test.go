package service_test

import (
	"context"
	"testing"

	"github.com/florimart/florimart/internal/domain"
	"github.com/florimart/florimart/internal/repository/postgres"
	"github.com/florimart/florimart/internal/service"
	"github.com/florimart/florimart/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_PlaceOrder(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	orderService := service.NewOrderService(repos.Order, repos.Flower, repos.User)
	ctx := context.Background()

	t.Run("valid order with duplicate line items", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		flower := testutil.NewFlowerBuilder().Build(t, testDB.DB)

		err := orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 2},
			{FlowerID: flower.ID, Quantity: 3},
		})
		require.NoError(t, err)

		details, err := orderService.ListForBuyer(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, details, 1)

		// Duplicates stay separate rows in request order
		require.Len(t, details[0].Items, 2)
		assert.Equal(t, 2, details[0].Items[0].Quantity)
		assert.Equal(t, 3, details[0].Items[1].Quantity)
		assert.False(t, details[0].Closed)
	})

	t.Run("unknown flower writes nothing", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		flower := testutil.NewFlowerBuilder().Build(t, testDB.DB)

		err := orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 1},
			{FlowerID: flower.ID + 999, Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrFlowerNotFound)

		var orderCount, itemCount int64
		require.NoError(t, testDB.DB.Model(&domain.Order{}).Count(&orderCount).Error)
		require.NoError(t, testDB.DB.Model(&domain.OrderItem{}).Count(&itemCount).Error)
		assert.Zero(t, orderCount)
		assert.Zero(t, itemCount)
	})

	t.Run("unknown buyer", func(t *testing.T) {
		testDB.Truncate(t)
		flower := testutil.NewFlowerBuilder().Build(t, testDB.DB)

		err := orderService.PlaceOrder(ctx, 12345, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrBuyerNotFound)
	})

	t.Run("empty order", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		err := orderService.PlaceOrder(ctx, buyer.ID, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		flower := testutil.NewFlowerBuilder().Build(t, testDB.DB)

		err := orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 0},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})
}

func TestOrderService_GetOrderDetail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	orderService := service.NewOrderService(repos.Order, repos.Flower, repos.User)
	ctx := context.Background()

	t.Run("buyer sees own order with seller attribution", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		seller, _ := testutil.NewUserBuilder().AsSeller().Build(t, testDB.DB)
		flower := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, testDB.DB)

		require.NoError(t, orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 1},
		}))
		orders, err := orderService.ListForBuyer(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)

		detail, err := orderService.GetOrderDetail(ctx, orders[0].OrderID, buyer)
		require.NoError(t, err)
		assert.Equal(t, buyer.ID, detail.BuyerID)
		require.NotNil(t, detail.SellerID)
		assert.Equal(t, seller.ID, *detail.SellerID)
	})

	t.Run("unattributed flower leaves seller nil", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		flower := testutil.NewFlowerBuilder().Build(t, testDB.DB)

		require.NoError(t, orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 1},
		}))
		orders, err := orderService.ListForBuyer(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)

		detail, err := orderService.GetOrderDetail(ctx, orders[0].OrderID, buyer)
		require.NoError(t, err)
		assert.Nil(t, detail.SellerID)
	})

	t.Run("foreign order is invisible to other buyers", func(t *testing.T) {
		testDB.Truncate(t)
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		flower := testutil.NewFlowerBuilder().Build(t, testDB.DB)

		require.NoError(t, orderService.PlaceOrder(ctx, owner.ID, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 1},
		}))
		orders, err := orderService.ListForBuyer(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)

		_, err = orderService.GetOrderDetail(ctx, orders[0].OrderID, stranger)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})

	t.Run("admin sees any order", func(t *testing.T) {
		testDB.Truncate(t)
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		admin, _ := testutil.NewUserBuilder().AsAdmin().Build(t, testDB.DB)
		flower := testutil.NewFlowerBuilder().Build(t, testDB.DB)

		require.NoError(t, orderService.PlaceOrder(ctx, owner.ID, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 1},
		}))
		orders, err := orderService.ListForBuyer(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)

		detail, err := orderService.GetOrderDetail(ctx, orders[0].OrderID, admin)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, detail.BuyerID)
	})

	t.Run("order without line items is invisible", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		order := &domain.Order{BuyerID: buyer.ID}
		require.NoError(t, testDB.DB.Create(order).Error)

		_, err := orderService.GetOrderDetail(ctx, order.ID, buyer)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})

	t.Run("unknown order", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := orderService.GetOrderDetail(ctx, 99999, buyer)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestOrderService_ListForSeller(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	orderService := service.NewOrderService(repos.Order, repos.Flower, repos.User)
	ctx := context.Background()

	t.Run("order with two of the seller's flowers appears once", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		seller, _ := testutil.NewUserBuilder().AsSeller().Build(t, testDB.DB)
		first := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, testDB.DB)
		second := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, testDB.DB)

		require.NoError(t, orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: first.ID, Quantity: 1},
			{FlowerID: second.ID, Quantity: 2},
		}))

		details, err := orderService.ListForSeller(ctx, seller.ID)
		require.NoError(t, err)
		assert.Len(t, details, 1)
	})

	t.Run("orders of other sellers are excluded", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		seller, _ := testutil.NewUserBuilder().AsSeller().Build(t, testDB.DB)
		other, _ := testutil.NewUserBuilder().AsSeller().Build(t, testDB.DB)
		mine := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, testDB.DB)
		theirs := testutil.NewFlowerBuilder().WithSeller(other).Build(t, testDB.DB)

		require.NoError(t, orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: mine.ID, Quantity: 1},
		}))
		require.NoError(t, orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: theirs.ID, Quantity: 1},
		}))

		details, err := orderService.ListForSeller(ctx, seller.ID)
		require.NoError(t, err)
		require.Len(t, details, 1)
		require.NotNil(t, details[0].SellerID)
		assert.Equal(t, seller.ID, *details[0].SellerID)
	})
}

func TestOrderService_ToggleStatus(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	orderService := service.NewOrderService(repos.Order, repos.Flower, repos.User)
	ctx := context.Background()

	t.Run("toggle flips both ways", func(t *testing.T) {
		testDB.Truncate(t)
		buyer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		flower := testutil.NewFlowerBuilder().Build(t, testDB.DB)

		require.NoError(t, orderService.PlaceOrder(ctx, buyer.ID, []service.OrderItemInput{
			{FlowerID: flower.ID, Quantity: 1},
		}))
		orders, err := orderService.ListForBuyer(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		orderID := orders[0].OrderID

		require.NoError(t, orderService.ToggleStatus(ctx, orderID))
		detail, err := orderService.GetOrderDetail(ctx, orderID, buyer)
		require.NoError(t, err)
		assert.True(t, detail.Closed)

		require.NoError(t, orderService.ToggleStatus(ctx, orderID))
		detail, err = orderService.GetOrderDetail(ctx, orderID, buyer)
		require.NoError(t, err)
		assert.False(t, detail.Closed)
	})

	t.Run("unknown order", func(t *testing.T) {
		testDB.Truncate(t)
		err := orderService.ToggleStatus(ctx, 424242)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}
