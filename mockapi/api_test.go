package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiTester struct {
	t   *testing.T
	api *API
}

func newAPITester(t *testing.T) *apiTester {
	return &apiTester{t: t, api: New()}
}

func (a *apiTester) do(method, path, body string) (int, map[string]interface{}) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api"+path, nil)
	} else {
		req = httptest.NewRequest(method, "/api"+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.api.ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func (a *apiTester) createClient(name, email string) int {
	status, out := a.do("POST", "/clients", `{"name":"`+name+`","email":"`+email+`","address":"Kyiv"}`)
	require.Equal(a.t, http.StatusCreated, status)
	return int(out["id"].(float64))
}

func TestCreateClient(t *testing.T) {
	a := newAPITester(t)
	status, out := a.do("POST", "/clients", `{"name":" Supplier A ","email":"suppA@test.io","address":"Kyiv"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(1), out["id"])
	assert.Equal(t, "Supplier A", out["name"])
	assert.Equal(t, true, out["active"])
}

func TestCreateClientRejectsDuplicateEmail(t *testing.T) {
	a := newAPITester(t)
	a.createClient("Supplier A", "suppA@test.io")

	status, out := a.do("POST", "/clients", `{"name":"Other","email":"SUPPA@test.io"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Conflict", out["error"])
	assert.Equal(t, "/api/clients", out["path"])
}

func TestCreateClientRequiresNameAndEmail(t *testing.T) {
	a := newAPITester(t)
	status, out := a.do("POST", "/clients", `{"name":"  ","email":"x@test.io"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Client name must not be blank", out["message"])

	status, _ = a.do("POST", "/clients", `{"name":"Name"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMalformedBody(t *testing.T) {
	a := newAPITester(t)
	status, _ := a.do("POST", "/clients", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateOrderRules(t *testing.T) {
	a := newAPITester(t)
	supplier := a.createClient("Supplier A", "suppA@test.io")
	consumer := a.createClient("Consumer B", "consB@test.io")

	order := func(title string, supplierID, consumerID int, price string) (int, map[string]interface{}) {
		body, _ := json.Marshal(map[string]interface{}{
			"title": title, "supplierId": supplierID, "consumerId": consumerID, "price": json.RawMessage(price),
		})
		return a.do("POST", "/orders", string(body))
	}

	status, out := order("order-1", supplier, consumer, "100")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "order-1", out["title"])

	status, _ = order("ORDER-1", supplier, consumer, "100")
	assert.Equal(t, http.StatusConflict, status, "duplicate title is case-insensitive")

	status, out = order("bad-price", supplier, consumer, "0")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, out["message"], "price")

	status, _ = order("fractional", supplier, consumer, "0.5")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = order("same-party", supplier, supplier, "10")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = order("unknown", supplier, 99, "10")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = order("ab", supplier, consumer, "10")
	assert.Equal(t, http.StatusBadRequest, status)

	status, out = order("too-expensive", supplier, consumer, "901")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Consumer profit would drop below -1000", out["message"])

	status, _ = order("max-allowed", supplier, consumer, "900")
	assert.Equal(t, http.StatusCreated, status)
}

func TestProfit(t *testing.T) {
	a := newAPITester(t)
	supplier := a.createClient("Supplier A", "suppA@test.io")
	consumer := a.createClient("Consumer B", "consB@test.io")
	a.do("POST", "/orders", `{"title":"order-1","supplierId":1,"consumerId":2,"price":100}`)
	a.do("POST", "/orders", `{"title":"order-2","supplierId":1,"consumerId":2,"price":50}`)

	status, out := a.do("GET", "/clients/1/profit", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(supplier), out["clientId"])
	assert.Equal(t, float64(150), out["profit"])

	_, out = a.do("GET", "/clients/2/profit", "")
	assert.Equal(t, float64(consumer), out["clientId"])
	assert.Equal(t, float64(-150), out["profit"])

	status, _ = a.do("GET", "/clients/3/profit", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = a.do("GET", "/clients/abc/profit", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDeactivatedClientCannotTrade(t *testing.T) {
	a := newAPITester(t)
	a.createClient("Supplier A", "suppA@test.io")
	a.createClient("Consumer B", "consB@test.io")

	status, out := a.do("PATCH", "/clients/2/status", `{"active":false}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, out["active"])
	assert.NotNil(t, out["deactivatedAt"])

	status, out = a.do("POST", "/orders", `{"title":"after-deactivate","supplierId":1,"consumerId":2,"price":50}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Consumer is inactive: id=2", out["message"])

	status, out = a.do("PATCH", "/clients/2/status", `{"active":true}`)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, out["deactivatedAt"])

	status, _ = a.do("POST", "/orders", `{"title":"after-reactivate","supplierId":1,"consumerId":2,"price":50}`)
	assert.Equal(t, http.StatusCreated, status)
}

func TestStatusRequiresActiveField(t *testing.T) {
	a := newAPITester(t)
	a.createClient("Supplier A", "suppA@test.io")
	status, _ := a.do("PATCH", "/clients/1/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListOrders(t *testing.T) {
	a := newAPITester(t)
	a.createClient("A", "a@test.io")
	a.createClient("B", "b@test.io")
	a.createClient("C", "c@test.io")
	a.do("POST", "/orders", `{"title":"first","supplierId":1,"consumerId":2,"price":10}`)
	a.do("POST", "/orders", `{"title":"second","supplierId":2,"consumerId":3,"price":10}`)

	rec := httptest.NewRecorder()
	a.api.ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders?clientId=3", nil))
	var orders []Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "second", orders[0].Title)

	rec = httptest.NewRecorder()
	a.api.ServeHTTP(rec, httptest.NewRequest("GET", "/api/clients/1/orders", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "first", orders[0].Title)

	status, out := a.do("GET", "/orders/2", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "second", out["title"])
}

func TestNonASCIINamesAreEchoedVerbatim(t *testing.T) {
	a := newAPITester(t)
	req := httptest.NewRequest("POST", "/api/clients", strings.NewReader(`{"name":"Постачальник","email":"p@test.io"}`))
	rec := httptest.NewRecorder()
	a.api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Постачальник"`)
}
