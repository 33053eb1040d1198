package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldoc/fiscaldoc/internal/gateway"
	"github.com/fiscaldoc/fiscaldoc/internal/model"
)

func testReceipt(t *testing.T) *model.Receipt {
	t.Helper()
	it, err := model.NewItem("widget", decimal.RequireFromString("10.00"), decimal.NewFromInt(2))
	require.NoError(t, err)
	items, err := model.NewItems(it)
	require.NoError(t, err)
	pay, err := model.NewPayment(model.PaymentTypeElectron, decimal.RequireFromString("20.00"))
	require.NoError(t, err)
	payments, err := model.NewPayments(pay)
	require.NoError(t, err)
	company, err := model.NewCompany("shop@example.com", model.SnoOsn, "1234567890", "https://shop.example.com")
	require.NoError(t, err)

	r, err := model.NewReceipt(&model.Client{}, company, items, payments)
	require.NoError(t, err)
	return r
}

func newTestServer(t *testing.T, registered *map[string]interface{}, reportStatuses []string) *httptest.Server {
	t.Helper()
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/getToken", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["login"] != "user" || creds["pass"] != "secret" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"code": 12, "text": "wrong credentials"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("/grp-1/sell", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok-1", r.Header.Get("Token"))
		var env map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
		if registered != nil {
			*registered = env
		}
		json.NewEncoder(w).Encode(map[string]string{"uuid": "doc-42", "status": "wait"})
	})
	mux.HandleFunc("/grp-1/report/doc-42", func(w http.ResponseWriter, r *http.Request) {
		status := "done"
		if calls < len(reportStatuses) {
			status = reportStatuses[calls]
		}
		calls++
		json.NewEncoder(w).Encode(map[string]string{"uuid": "doc-42", "status": status})
	})
	return httptest.NewServer(mux)
}

func TestClient_RegisterEnvelope(t *testing.T) {
	var registered map[string]interface{}
	srv := newTestServer(t, &registered, nil)
	defer srv.Close()

	c := gateway.NewClient(srv.URL, "user", "secret", "grp-1",
		gateway.WithCallbackURL("https://merchant.example.com/hook"))

	resp, err := c.Register(context.Background(), gateway.OperationSell, testReceipt(t), "ext-7")
	require.NoError(t, err)
	assert.Equal(t, "doc-42", resp.UUID)

	assert.Equal(t, "ext-7", registered["external_id"])
	assert.Contains(t, registered, "receipt")
	assert.NotContains(t, registered, "correction")
	service := registered["service"].(map[string]interface{})
	assert.Equal(t, "https://merchant.example.com/hook", service["callback_url"])

	// Registration timestamp in operator format
	_, err = time.Parse("02.01.2006 15:04:05", registered["timestamp"].(string))
	assert.NoError(t, err)
}

func TestClient_RegisterGeneratesExternalID(t *testing.T) {
	var registered map[string]interface{}
	srv := newTestServer(t, &registered, nil)
	defer srv.Close()

	c := gateway.NewClient(srv.URL, "user", "secret", "grp-1")
	_, err := c.Register(context.Background(), gateway.OperationSell, testReceipt(t), "")
	require.NoError(t, err)
	assert.NotEmpty(t, registered["external_id"])
}

func TestClient_RegisterRejectsUnknownOperation(t *testing.T) {
	c := gateway.NewClient("http://unused", "user", "secret", "grp-1")

	// A mistyped operation must fail locally, not reach the operator.
	_, err := c.Register(context.Background(), gateway.Operation("sel"), testReceipt(t), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")

	_, err = c.Register(context.Background(), gateway.Operation(""), testReceipt(t), "")
	require.Error(t, err)
}

func TestOperation_Valid(t *testing.T) {
	for _, op := range []gateway.Operation{
		gateway.OperationSell, gateway.OperationSellRefund,
		gateway.OperationBuy, gateway.OperationBuyRefund,
		gateway.OperationSellCorrection, gateway.OperationBuyCorrection,
	} {
		assert.True(t, op.Valid(), "operation %s", op)
	}
	assert.False(t, gateway.Operation("sell ").Valid())
	assert.False(t, gateway.Operation("refund").Valid())
}

func TestClient_RegisterRejectsKindMismatch(t *testing.T) {
	c := gateway.NewClient("http://unused", "user", "secret", "grp-1")
	_, err := c.Register(context.Background(), gateway.OperationSellCorrection, testReceipt(t), "")
	require.Error(t, err)
}

func TestClient_AuthenticateFailure(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	defer srv.Close()

	c := gateway.NewClient(srv.URL, "user", "wrong", "grp-1")
	err := c.Authenticate(context.Background())

	var remote *gateway.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, 12, remote.Code)
}

func TestClient_WaitReportPollsUntilDone(t *testing.T) {
	srv := newTestServer(t, nil, []string{"wait", "wait", "done"})
	defer srv.Close()

	c := gateway.NewClient(srv.URL, "user", "secret", "grp-1")
	report, err := c.WaitReport(context.Background(), "doc-42", 5, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, report.Done())
}

func TestClient_WaitReportExhaustsAttempts(t *testing.T) {
	srv := newTestServer(t, nil, []string{"wait", "wait", "wait", "wait", "wait"})
	defer srv.Close()

	c := gateway.NewClient(srv.URL, "user", "secret", "grp-1")
	report, err := c.WaitReport(context.Background(), "doc-42", 3, time.Millisecond)
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, "wait", report.Status)
}
