package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/florimart/florimart/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flowerResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	SellerIDs []uint  `json:"seller_ids"`
}

func TestFlowerHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("listing is public", func(t *testing.T) {
		ts.DB.Truncate(t)
		seller, _ := testutil.NewUserBuilder().AsSeller().Build(t, ts.DB.DB)
		testutil.NewFlowerBuilder().WithName("Red Naomi").WithSeller(seller).Build(t, ts.DB.DB)
		testutil.NewFlowerBuilder().WithName("Avalanche").Build(t, ts.DB.DB)

		resp := testutil.Get(t, ts.APIURL("/flowers/"), "")
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var flowers []flowerResponse
		testutil.AssertJSONResponse(t, resp, &flowers)
		assert.Len(t, flowers, 2)
	})

	t.Run("name filter", func(t *testing.T) {
		ts.DB.Truncate(t)
		testutil.NewFlowerBuilder().WithName("Red Naomi").Build(t, ts.DB.DB)
		testutil.NewFlowerBuilder().WithName("Avalanche").Build(t, ts.DB.DB)

		resp := testutil.Get(t, ts.APIURL("/flowers/?name=naomi"), "")
		defer resp.Body.Close()

		var flowers []flowerResponse
		testutil.AssertJSONResponse(t, resp, &flowers)
		require.Len(t, flowers, 1)
		assert.Equal(t, "Red Naomi", flowers[0].Name)
	})

	t.Run("price range filter", func(t *testing.T) {
		ts.DB.Truncate(t)
		testutil.NewFlowerBuilder().WithName("Cheap").WithPrice(1.00).Build(t, ts.DB.DB)
		testutil.NewFlowerBuilder().WithName("Mid").WithPrice(5.00).Build(t, ts.DB.DB)
		testutil.NewFlowerBuilder().WithName("Premium").WithPrice(20.00).Build(t, ts.DB.DB)

		resp := testutil.Get(t, ts.APIURL("/flowers/?min_price=2&max_price=10"), "")
		defer resp.Body.Close()

		var flowers []flowerResponse
		testutil.AssertJSONResponse(t, resp, &flowers)
		require.Len(t, flowers, 1)
		assert.Equal(t, "Mid", flowers[0].Name)
	})

	t.Run("seller filter includes attributions", func(t *testing.T) {
		ts.DB.Truncate(t)
		seller, _ := testutil.NewUserBuilder().AsSeller().Build(t, ts.DB.DB)
		other, _ := testutil.NewUserBuilder().AsSeller().Build(t, ts.DB.DB)
		mine := testutil.NewFlowerBuilder().WithSeller(seller).Build(t, ts.DB.DB)
		testutil.NewFlowerBuilder().WithSeller(other).Build(t, ts.DB.DB)

		resp := testutil.Get(t, ts.APIURL(fmt.Sprintf("/flowers/?seller_id=%d", seller.ID)), "")
		defer resp.Body.Close()

		var flowers []flowerResponse
		testutil.AssertJSONResponse(t, resp, &flowers)
		require.Len(t, flowers, 1)
		assert.Equal(t, mine.ID, flowers[0].ID)
		assert.Equal(t, []uint{seller.ID}, flowers[0].SellerIDs)
	})
}

func TestFlowerHandler_Lookups(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("seller manages lookup tables", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().AsSeller().BuildAndAuthenticate(t, ts)

		create := testutil.PostJSON(t, ts.APIURL("/flowers/types"), token, map[string]string{
			"name":        "Rose",
			"description": "Woody perennial",
		})
		defer create.Body.Close()
		testutil.AssertStatusCode(t, create, http.StatusOK)

		list := testutil.Get(t, ts.APIURL("/flowers/types"), "")
		defer list.Body.Close()
		var types []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		}
		testutil.AssertJSONResponse(t, list, &types)
		require.Len(t, types, 1)

		del := testutil.Delete(t, ts.APIURL(fmt.Sprintf("/flowers/types/%d", types[0].ID)), token)
		defer del.Body.Close()
		testutil.AssertDetail(t, del, http.StatusOK, "Flower type deleted")
	})

	t.Run("buyer may not mutate lookups", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp := testutil.PostJSON(t, ts.APIURL("/flowers/countries"), token, map[string]string{
			"name": "Netherlands",
			"code": "NL",
		})
		defer resp.Body.Close()
		testutil.AssertDetail(t, resp, http.StatusForbidden, "Sellers and admins only")
	})

	t.Run("deleting a missing lookup answers 404", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)

		resp := testutil.Delete(t, ts.APIURL("/flowers/seasons/99999"), token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestSellerHandler_Flowers(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("seller creates, updates and deletes a flower", func(t *testing.T) {
		ts.DB.Truncate(t)
		seller, token := testutil.NewUserBuilder().AsSeller().BuildAndAuthenticate(t, ts)

		create := testutil.PostJSON(t, ts.APIURL("/seller/flowers"), token, map[string]interface{}{
			"name":    "Red Naomi",
			"variety": "Rose",
			"price":   2.50,
		})
		defer create.Body.Close()
		testutil.AssertStatusCode(t, create, http.StatusOK)

		var created flowerResponse
		testutil.AssertJSONResponse(t, create, &created)
		assert.Equal(t, []uint{seller.ID}, created.SellerIDs)

		update := testutil.PutJSON(t, ts.APIURL(fmt.Sprintf("/seller/flowers/%d", created.ID)), token, map[string]interface{}{
			"price": 3.75,
		})
		defer update.Body.Close()
		testutil.AssertStatusCode(t, update, http.StatusOK)

		var updated flowerResponse
		testutil.AssertJSONResponse(t, update, &updated)
		assert.Equal(t, 3.75, updated.Price)
		assert.Equal(t, "Red Naomi", updated.Name)

		del := testutil.Delete(t, ts.APIURL(fmt.Sprintf("/seller/flowers/%d", created.ID)), token)
		defer del.Body.Close()
		testutil.AssertDetail(t, del, http.StatusOK, "Flower deleted")
	})

	t.Run("non-positive price is rejected", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().AsSeller().BuildAndAuthenticate(t, ts)

		resp := testutil.PostJSON(t, ts.APIURL("/seller/flowers"), token, map[string]interface{}{
			"name":  "Freebie",
			"price": 0,
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("buyer may not create flowers", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp := testutil.PostJSON(t, ts.APIURL("/seller/flowers"), token, map[string]interface{}{
			"name":  "Sneaky",
			"price": 1.00,
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})
}
