package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Hamid-2027/seatMeCombine/internal/config"
)

// JazzCashEnvironmentURLs maps environment names to DoTransaction endpoints
var JazzCashEnvironmentURLs = map[string]string{
	"sandbox":    "https://sandbox.jazzcash.com.pk/ApplicationAPI/API/Payment/DoTransaction",
	"production": "https://payments.jazzcash.com.pk/ApplicationAPI/API/Payment/DoTransaction",
}

// jazzCashDateFormat is the wire timestamp layout (yyyyMMddHHmmss)
const jazzCashDateFormat = "20060102150405"

// JazzCashGateway charges mobile wallets through the JazzCash MWALLET API
type JazzCashGateway struct {
	config   *config.PaymentConfig
	logger   *logrus.Logger
	client   *http.Client
	endpoint string
	now      func() time.Time
}

// jazzCashResponse is the subset of the DoTransaction response we act on.
// Response code "000" is the gateway's only success code.
type jazzCashResponse struct {
	ResponseCode    string `json:"pp_ResponseCode"`
	ResponseMessage string `json:"pp_ResponseMessage"`
	TxnRefNo        string `json:"pp_TxnRefNo"`
}

// NewJazzCashGateway creates a JazzCash gateway for the configured environment
func NewJazzCashGateway(cfg *config.PaymentConfig, logger *logrus.Logger) *JazzCashGateway {
	endpoint, ok := JazzCashEnvironmentURLs[cfg.JazzCashEnvironment]
	if !ok {
		endpoint = JazzCashEnvironmentURLs["sandbox"]
	}
	return &JazzCashGateway{
		config:   cfg,
		logger:   logger,
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: endpoint,
		now:      time.Now,
	}
}

// Name identifies the gateway in audit records
func (g *JazzCashGateway) Name() string {
	return "jazzcash"
}

// Charge posts an MWALLET transaction. A non-"000" response code is a
// declined result, not an error.
func (g *JazzCashGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	now := g.now()
	payload := map[string]string{
		"pp_Version":           "1.1",
		"pp_TxnType":           "MWALLET",
		"pp_Language":          "EN",
		"pp_MerchantID":        g.config.JazzCashMerchantID,
		"pp_SubMerchantID":     "",
		"pp_Password":          g.config.JazzCashPassword,
		"pp_BankID":            "TBANK",
		"pp_ProductID":         "RETL",
		"pp_TxnRefNo":          fmt.Sprintf("TXN%d", now.UnixMilli()),
		"pp_Amount":            fmt.Sprintf("%.0f", req.Amount*100),
		"pp_TxnCurrency":       req.Currency,
		"pp_TxnDateTime":       now.Format(jazzCashDateFormat),
		"pp_BillReference":     req.BookingID,
		"pp_Description":       req.Description,
		"pp_TxnExpiryDateTime": now.Add(time.Hour).Format(jazzCashDateFormat),
		"pp_ReturnURL":         g.config.JazzCashReturnURL,
		"ppmpf_1":              normalizeMobileNumber(req.MobileNumber),
		"ppmpf_2":              digitsOnly(req.CNIC),
		"ppmpf_3":              "",
		"ppmpf_4":              "",
		"ppmpf_5":              "",
	}
	payload["pp_SecureHash"] = secureHash(payload, g.config.JazzCashHashKey)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jazzcash payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build jazzcash request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("jazzcash request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read jazzcash response: %w", err)
	}

	var result jazzCashResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode jazzcash response: %w", err)
	}

	if result.ResponseCode != "000" {
		g.logger.WithFields(logrus.Fields{
			"booking_id":    req.BookingID,
			"response_code": result.ResponseCode,
		}).Warn("JazzCash payment declined")
		message := result.ResponseMessage
		if message == "" {
			message = "Payment failed. Please try again."
		}
		return &ChargeResult{Success: false, Reference: result.TxnRefNo, Message: message}, nil
	}

	return &ChargeResult{
		Success:   true,
		Reference: result.TxnRefNo,
		Message:   result.ResponseMessage,
	}, nil
}

// secureHash computes the pp_SecureHash: non-empty values sorted by key
// (ppmpf_ fields and the hash field itself excluded), joined with "&",
// prefixed with the integrity salt, HMAC-SHA256 under the same salt.
func secureHash(payload map[string]string, hashKey string) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if strings.HasPrefix(k, "ppmpf_") || k == "pp_SecureHash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		if payload[k] != "" {
			values = append(values, payload[k])
		}
	}
	dataToHash := hashKey + "&" + strings.Join(values, "&")

	mac := hmac.New(sha256.New, []byte(hashKey))
	mac.Write([]byte(dataToHash))
	return hex.EncodeToString(mac.Sum(nil))
}

// normalizeMobileNumber converts local formats to the 923xxxxxxxxx form
// JazzCash requires
func normalizeMobileNumber(number string) string {
	cleaned := digitsOnly(number)
	if strings.HasPrefix(cleaned, "03") {
		return "92" + cleaned[1:]
	}
	if len(cleaned) == 10 && strings.HasPrefix(cleaned, "3") {
		return "92" + cleaned
	}
	return cleaned
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
