package v1

import (
	"net/http"
	"testing"

	"github.com/nexuspump/nexuspump-api/internal/curve"
	"github.com/nexuspump/nexuspump-api/internal/domain"
	"github.com/nexuspump/nexuspump-api/internal/service"
)

func TestMapTradeErr(t *testing.T) {
	const address = "0x00000000000000000000000000000000000000aa"

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"token missing", service.ErrTokenNotFound, http.StatusNotFound},
		{"market missing", service.ErrMarketNotFound, http.StatusNotFound},
		{"pool missing", service.ErrPoolNotFound, http.StatusNotFound},
		{"zero amount", domain.ErrZeroAmount, http.StatusBadRequest},
		{"invalid address", domain.ErrInvalidAddress, http.StatusBadRequest},
		{"graduated market", domain.ErrMarketGraduated, http.StatusConflict},
		{"not graduated", domain.ErrNotGraduated, http.StatusConflict},
		{"stale market", service.ErrStaleMarket, http.StatusConflict},
		{"slippage", domain.ErrInsufficientOutput, http.StatusUnprocessableEntity},
		{"supply exhausted", domain.ErrSupplyExhausted, http.StatusConflict},
		{"overflow", curve.ErrOverflow, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapTradeErr("test", address, tt.err)
			if got.StatusCode != tt.wantStatus {
				t.Errorf("mapTradeErr(%v) status = %d, want %d", tt.err, got.StatusCode, tt.wantStatus)
			}
		})
	}
}
