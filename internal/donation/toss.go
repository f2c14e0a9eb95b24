package donation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/team-moa/moa-api-server/internal/config"
)

// TossConfirmRequest 토스 결제 승인 요청
type TossConfirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// TossConfirmResult 토스 결제 승인 응답 (필요한 필드만)
type TossConfirmResult struct {
	PaymentKey string     `json:"paymentKey"`
	OrderID    string     `json:"orderId"`
	Status     string     `json:"status"` // DONE이어야 승인 완료
	TotalAmount int64     `json:"totalAmount"`
	ApprovedAt *time.Time `json:"approvedAt"`
	Method     string     `json:"method"`
}

// TossClient confirms payments against the Toss Payments API.
// 테스트에서는 가짜 구현으로 대체한다.
type TossClient interface {
	Confirm(ctx context.Context, request *TossConfirmRequest) (*TossConfirmResult, error)
}

type tossHTTPClient struct {
	cfg        *config.TossConfig
	httpClient *http.Client
}

func NewTossClient(cfg *config.TossConfig) TossClient {
	return &tossHTTPClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Confirm 결제 승인 호출. 시크릿 키를 Basic 인증의 사용자명으로, 비밀번호는 빈 문자열로 보낸다.
func (c *tossHTTPClient) Confirm(ctx context.Context, request *TossConfirmRequest) (*TossConfirmResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("승인 요청 직렬화 실패: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ConfirmURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("승인 요청 생성 실패: %w", err)
	}
	req.SetBasicAuth(c.cfg.SecretKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("승인 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, fmt.Errorf("승인 응답 status=%d code=%s message=%s %w",
			resp.StatusCode, errBody.Code, errBody.Message, ErrPaymentConfirmFail)
	}

	var result TossConfirmResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("승인 응답 파싱 실패: %w", err)
	}
	return &result, nil
}
