package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountentity "budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/ledger/domain/entity"
	jwtmw "budget_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockLedgerUsecase はテスト用のLedgerUsecaseモック実装です。
type mockLedgerUsecase struct {
	listFn       func(ctx context.Context, p *accountentity.Principal) ([]entity.Transaction, error)
	addFn        func(ctx context.Context, p *accountentity.Principal, tx entity.Transaction) ([]entity.Transaction, error)
	deleteFn     func(ctx context.Context, p *accountentity.Principal, id string) ([]entity.Transaction, error)
	replaceAllFn func(ctx context.Context, p *accountentity.Principal, txs []entity.Transaction) ([]entity.Transaction, error)
	summaryFn    func(ctx context.Context, p *accountentity.Principal) (*entity.Summary, error)
}

func (m *mockLedgerUsecase) List(ctx context.Context, p *accountentity.Principal) ([]entity.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(ctx, p)
	}
	return []entity.Transaction{}, nil
}

func (m *mockLedgerUsecase) Add(ctx context.Context, p *accountentity.Principal, tx entity.Transaction) ([]entity.Transaction, error) {
	return m.addFn(ctx, p, tx)
}

func (m *mockLedgerUsecase) Delete(ctx context.Context, p *accountentity.Principal, id string) ([]entity.Transaction, error) {
	return m.deleteFn(ctx, p, id)
}

func (m *mockLedgerUsecase) ReplaceAll(ctx context.Context, p *accountentity.Principal, txs []entity.Transaction) ([]entity.Transaction, error) {
	return m.replaceAllFn(ctx, p, txs)
}

func (m *mockLedgerUsecase) Summary(ctx context.Context, p *accountentity.Principal) (*entity.Summary, error) {
	return m.summaryFn(ctx, p)
}

// setupLedgerRouter は固定のPrincipalを注入するテスト用ルータを生成します。
func setupLedgerRouter(mock *mockLedgerUsecase) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextPrincipal, accountentity.OrdinaryPrincipal(accountentity.User{ID: "u1"}))
	})
	h := NewLedgerHandler(mock)
	r.GET("/transactions", h.List)
	r.POST("/transactions", h.Add)
	r.DELETE("/transactions/:id", h.Delete)
	r.POST("/transactions/import", h.Import)
	r.GET("/transactions/export", h.Export)
	return r
}

func TestAddHandler(t *testing.T) {
	var added entity.Transaction
	mock := &mockLedgerUsecase{
		addFn: func(ctx context.Context, p *accountentity.Principal, tx entity.Transaction) ([]entity.Transaction, error) {
			added = tx
			return []entity.Transaction{tx}, nil
		},
	}
	router := setupLedgerRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions",
		strings.NewReader(`{"date":"2025-03-01","amount":42.5,"type":"expense","category":"Food/Dining"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, entity.TypeExpense, added.Type)
	assert.Equal(t, "42.5", added.Amount.String())
}

func TestAddHandler_RejectsUnknownType(t *testing.T) {
	mock := &mockLedgerUsecase{
		addFn: func(ctx context.Context, p *accountentity.Principal, tx entity.Transaction) ([]entity.Transaction, error) {
			t.Fatal("usecase must not be called for invalid payloads")
			return nil, nil
		},
	}
	router := setupLedgerRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions",
		strings.NewReader(`{"date":"2025-03-01","amount":42.5,"type":"transfer"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteHandler_PassesID(t *testing.T) {
	var deleted string
	mock := &mockLedgerUsecase{
		deleteFn: func(ctx context.Context, p *accountentity.Principal, id string) ([]entity.Transaction, error) {
			deleted = id
			return []entity.Transaction{}, nil
		},
	}
	router := setupLedgerRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/transactions/tx-42", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tx-42", deleted)
}

func TestImportHandler(t *testing.T) {
	var replaced []entity.Transaction
	mock := &mockLedgerUsecase{
		replaceAllFn: func(ctx context.Context, p *accountentity.Principal, txs []entity.Transaction) ([]entity.Transaction, error) {
			replaced = txs
			return txs, nil
		},
	}
	router := setupLedgerRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions/import",
		strings.NewReader(`[{"id":"tx-1","date":"2025-03-01","amount":10,"type":"expense"},{"id":"tx-2","date":"2025-03-02","amount":20,"type":"income"}]`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, replaced, 2)
	assert.Equal(t, "tx-1", replaced[0].ID)
}

// インポートはJSON配列以外を全面拒否し、ストアを変更しない。
func TestImportHandler_RejectsNonArray(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "object payload", body: `{"id":"tx-1"}`},
		{name: "garbage payload", body: `not json`},
		{name: "string payload", body: `"[]"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockLedgerUsecase{
				replaceAllFn: func(ctx context.Context, p *accountentity.Principal, txs []entity.Transaction) ([]entity.Transaction, error) {
					t.Fatal("store must not be touched for invalid payloads")
					return nil, nil
				},
			}
			router := setupLedgerRouter(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/transactions/import", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestExportHandler_SetsAttachmentHeader(t *testing.T) {
	mock := &mockLedgerUsecase{
		listFn: func(ctx context.Context, p *accountentity.Principal) ([]entity.Transaction, error) {
			return []entity.Transaction{{ID: "tx-1"}}, nil
		},
	}
	router := setupLedgerRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="transactions.json"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "tx-1")
}
