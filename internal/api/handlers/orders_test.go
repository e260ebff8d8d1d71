package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/florimart/florimart/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderResponse struct {
	OrderID  uint  `json:"order_id"`
	BuyerID  uint  `json:"buyer_id"`
	IsClosed bool  `json:"is_closed"`
	SellerID *uint `json:"seller_id"`
	Items    []struct {
		FlowerID uint `json:"flower_id"`
		Quantity int  `json:"quantity"`
	} `json:"items"`
}

func TestOrderHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("buyer places an order", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		flower := testutil.NewFlowerBuilder().Build(t, ts.DB.DB)

		resp := testutil.PostJSON(t, ts.APIURL("/orders/"), token, map[string]interface{}{
			"items": []map[string]interface{}{
				{"flower_id": flower.ID, "quantity": 2},
			},
		})
		defer resp.Body.Close()
		testutil.AssertDetail(t, resp, http.StatusOK, "Order accepted")
	})

	t.Run("seller may not place orders", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().AsSeller().BuildAndAuthenticate(t, ts)
		flower := testutil.NewFlowerBuilder().Build(t, ts.DB.DB)

		resp := testutil.PostJSON(t, ts.APIURL("/orders/"), token, map[string]interface{}{
			"items": []map[string]interface{}{
				{"flower_id": flower.ID, "quantity": 1},
			},
		})
		defer resp.Body.Close()
		testutil.AssertDetail(t, resp, http.StatusForbidden, "Only buyers may place orders")
	})

	t.Run("admin may not place orders", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)
		flower := testutil.NewFlowerBuilder().Build(t, ts.DB.DB)

		resp := testutil.PostJSON(t, ts.APIURL("/orders/"), token, map[string]interface{}{
			"items": []map[string]interface{}{
				{"flower_id": flower.ID, "quantity": 1},
			},
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("unknown flower yields 404", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp := testutil.PostJSON(t, ts.APIURL("/orders/"), token, map[string]interface{}{
			"items": []map[string]interface{}{
				{"flower_id": 99999, "quantity": 1},
			},
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("empty order yields 400", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp := testutil.PostJSON(t, ts.APIURL("/orders/"), token, map[string]interface{}{
			"items": []map[string]interface{}{},
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		resp := testutil.PostJSON(t, ts.APIURL("/orders/"), "", map[string]interface{}{})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestOrderHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("buyer reads own order", func(t *testing.T) {
		ts.DB.Truncate(t)
		buyer, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		seller, _ := testutil.NewUserBuilder().AsSeller().Build(t, ts.DB.DB)
		flower := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, ts.DB.DB)

		place := testutil.PostJSON(t, ts.APIURL("/orders/"), token, map[string]interface{}{
			"items": []map[string]interface{}{
				{"flower_id": flower.ID, "quantity": 3},
			},
		})
		place.Body.Close()
		require.Equal(t, http.StatusOK, place.StatusCode)

		list := testutil.Get(t, ts.APIURL("/orders/"), token)
		defer list.Body.Close()
		var orders []orderResponse
		testutil.AssertJSONResponse(t, list, &orders)
		require.Len(t, orders, 1)

		resp := testutil.Get(t, ts.APIURL(fmt.Sprintf("/orders/%d", orders[0].OrderID)), token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var detail orderResponse
		testutil.AssertJSONResponse(t, resp, &detail)
		assert.Equal(t, buyer.ID, detail.BuyerID)
		require.NotNil(t, detail.SellerID)
		assert.Equal(t, seller.ID, *detail.SellerID)
		require.Len(t, detail.Items, 1)
		assert.Equal(t, 3, detail.Items[0].Quantity)
	})

	t.Run("foreign order answers 404", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		flower := testutil.NewFlowerBuilder().Build(t, ts.DB.DB)

		place := testutil.PostJSON(t, ts.APIURL("/orders/"), ownerToken, map[string]interface{}{
			"items": []map[string]interface{}{
				{"flower_id": flower.ID, "quantity": 1},
			},
		})
		place.Body.Close()
		require.Equal(t, http.StatusOK, place.StatusCode)

		list := testutil.Get(t, ts.APIURL("/orders/"), ownerToken)
		defer list.Body.Close()
		var orders []orderResponse
		testutil.AssertJSONResponse(t, list, &orders)
		require.Len(t, orders, 1)

		resp := testutil.Get(t, ts.APIURL(fmt.Sprintf("/orders/%d", orders[0].OrderID)), strangerToken)
		defer resp.Body.Close()
		testutil.AssertDetail(t, resp, http.StatusNotFound, "order not found")
	})

	t.Run("unknown order answers 404", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp := testutil.Get(t, ts.APIURL("/orders/99999"), token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestSellerHandler_ToggleOrderStatus(t *testing.T) {
	ts := testutil.NewTestServer(t)

	placeOrder := func(t *testing.T, token string, flowerID uint) uint {
		t.Helper()
		place := testutil.PostJSON(t, ts.APIURL("/orders/"), token, map[string]interface{}{
			"items": []map[string]interface{}{
				{"flower_id": flowerID, "quantity": 1},
			},
		})
		place.Body.Close()
		require.Equal(t, http.StatusOK, place.StatusCode)

		list := testutil.Get(t, ts.APIURL("/orders/"), token)
		defer list.Body.Close()
		var orders []orderResponse
		testutil.AssertJSONResponse(t, list, &orders)
		require.Len(t, orders, 1)
		return orders[0].OrderID
	}

	t.Run("seller toggles an order closed and open again", func(t *testing.T) {
		ts.DB.Truncate(t)
		seller, sellerToken := testutil.NewUserBuilder().AsSeller().BuildAndAuthenticate(t, ts)
		_, buyerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		flower := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, ts.DB.DB)
		orderID := placeOrder(t, buyerToken, flower.ID)

		toggle := testutil.PutJSON(t, ts.APIURL(fmt.Sprintf("/seller/orders/status?order_id=%d", orderID)), sellerToken, nil)
		defer toggle.Body.Close()
		testutil.AssertDetail(t, toggle, http.StatusOK, "Order status updated")

		detail := testutil.Get(t, ts.APIURL(fmt.Sprintf("/orders/%d", orderID)), buyerToken)
		defer detail.Body.Close()
		var order orderResponse
		testutil.AssertJSONResponse(t, detail, &order)
		assert.True(t, order.IsClosed)

		again := testutil.PutJSON(t, ts.APIURL(fmt.Sprintf("/seller/orders/status?order_id=%d", orderID)), sellerToken, nil)
		again.Body.Close()
		require.Equal(t, http.StatusOK, again.StatusCode)

		detail = testutil.Get(t, ts.APIURL(fmt.Sprintf("/orders/%d", orderID)), buyerToken)
		defer detail.Body.Close()
		testutil.AssertJSONResponse(t, detail, &order)
		assert.False(t, order.IsClosed)
	})

	t.Run("buyer may not toggle", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, buyerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		flower := testutil.NewFlowerBuilder().Build(t, ts.DB.DB)
		orderID := placeOrder(t, buyerToken, flower.ID)

		resp := testutil.PutJSON(t, ts.APIURL(fmt.Sprintf("/seller/orders/status?order_id=%d", orderID)), buyerToken, nil)
		defer resp.Body.Close()
		testutil.AssertDetail(t, resp, http.StatusForbidden, "Sellers and admins only")
	})

	t.Run("unknown order answers 404", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, sellerToken := testutil.NewUserBuilder().AsSeller().BuildAndAuthenticate(t, ts)

		resp := testutil.PutJSON(t, ts.APIURL("/seller/orders/status?order_id=99999"), sellerToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestSellerHandler_Orders(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("seller sees orders containing their flowers once", func(t *testing.T) {
		ts.DB.Truncate(t)
		seller, sellerToken := testutil.NewUserBuilder().AsSeller().BuildAndAuthenticate(t, ts)
		_, buyerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		first := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, ts.DB.DB)
		second := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, ts.DB.DB)

		place := testutil.PostJSON(t, ts.APIURL("/orders/"), buyerToken, map[string]interface{}{
			"items": []map[string]interface{}{
				{"flower_id": first.ID, "quantity": 1},
				{"flower_id": second.ID, "quantity": 2},
			},
		})
		place.Body.Close()
		require.Equal(t, http.StatusOK, place.StatusCode)

		resp := testutil.Get(t, ts.APIURL("/seller/orders"), sellerToken)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var orders []orderResponse
		testutil.AssertJSONResponse(t, resp, &orders)
		assert.Len(t, orders, 1)
	})
}
