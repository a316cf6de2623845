package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamid-2027/seatMeCombine/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestGateway(endpoint string) *JazzCashGateway {
	gw := NewJazzCashGateway(&config.PaymentConfig{
		Gateway:             "jazzcash",
		JazzCashEnvironment: "sandbox",
		JazzCashMerchantID:  "MC12345",
		JazzCashPassword:    "secret",
		JazzCashHashKey:     "salt123",
		JazzCashReturnURL:   "https://example.com/payment-status",
	}, testLogger())
	if endpoint != "" {
		gw.endpoint = endpoint
	}
	gw.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	}
	return gw
}

func TestSecureHash(t *testing.T) {
	payload := map[string]string{
		"pp_Version":    "1.1",
		"pp_MerchantID": "MC12345",
		"pp_Amount":     "150000",
		"pp_SubMerchID": "",
		"pp_SecureHash": "must-be-ignored",
		"ppmpf_1":       "923001234567",
	}

	// Non-empty values of the pp_ fields in sorted key order, salt
	// prepended, HMAC'd under the salt
	data := "salt123&" + strings.Join([]string{"150000", "MC12345", "1.1"}, "&")
	mac := hmac.New(sha256.New, []byte("salt123"))
	mac.Write([]byte(data))
	expected := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, secureHash(payload, "salt123"))
}

func TestNormalizeMobileNumber(t *testing.T) {
	assert.Equal(t, "923001234567", normalizeMobileNumber("03001234567"))
	assert.Equal(t, "923001234567", normalizeMobileNumber("3001234567"))
	assert.Equal(t, "923001234567", normalizeMobileNumber("923001234567"))
	assert.Equal(t, "923001234567", normalizeMobileNumber("0300-1234567"))
}

func TestJazzCashCharge(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var received map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			json.NewEncoder(w).Encode(map[string]string{
				"pp_ResponseCode":    "000",
				"pp_ResponseMessage": "Transaction successful",
				"pp_TxnRefNo":        received["pp_TxnRefNo"],
			})
		}))
		defer server.Close()

		gw := newTestGateway(server.URL)
		result, err := gw.Charge(context.Background(), &ChargeRequest{
			BookingID:    "booking1",
			Amount:       1500,
			Currency:     "PKR",
			Description:  "Bus Booking Payment",
			MobileNumber: "03001234567",
			CNIC:         "345678",
		})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Reference)

		assert.Equal(t, "MWALLET", received["pp_TxnType"])
		assert.Equal(t, "MC12345", received["pp_MerchantID"])
		assert.Equal(t, "150000", received["pp_Amount"])
		assert.Equal(t, "923001234567", received["ppmpf_1"])
		assert.Equal(t, "booking1", received["pp_BillReference"])
		assert.Equal(t, "20250601123000", received["pp_TxnDateTime"])

		// The hash must verify against the payload the gateway sent
		assert.Equal(t, secureHash(received, "salt123"), received["pp_SecureHash"])
	})

	t.Run("Declined", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{
				"pp_ResponseCode":    "124",
				"pp_ResponseMessage": "Insufficient balance",
			})
		}))
		defer server.Close()

		gw := newTestGateway(server.URL)
		result, err := gw.Charge(context.Background(), &ChargeRequest{
			BookingID:    "booking1",
			Amount:       1500,
			Currency:     "PKR",
			MobileNumber: "03001234567",
			CNIC:         "345678",
		})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Insufficient balance", result.Message)
	})

	t.Run("Transport Error", func(t *testing.T) {
		gw := newTestGateway("http://127.0.0.1:0")
		_, err := gw.Charge(context.Background(), &ChargeRequest{
			BookingID: "booking1",
			Amount:    1500,
			Currency:  "PKR",
		})
		assert.Error(t, err)
	})
}
