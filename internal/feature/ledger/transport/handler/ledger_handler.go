// Package handler はledgerフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	accountentity "budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/ledger/domain/entity"
	"budget_backend/internal/feature/ledger/transport/http/dto"
	jwtmw "budget_backend/internal/platform/jwt"
)

// LedgerUsecase は取引・集計操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type LedgerUsecase interface {
	List(ctx context.Context, p *accountentity.Principal) ([]entity.Transaction, error)
	Add(ctx context.Context, p *accountentity.Principal, tx entity.Transaction) ([]entity.Transaction, error)
	Delete(ctx context.Context, p *accountentity.Principal, id string) ([]entity.Transaction, error)
	ReplaceAll(ctx context.Context, p *accountentity.Principal, txs []entity.Transaction) ([]entity.Transaction, error)
	Summary(ctx context.Context, p *accountentity.Principal) (*entity.Summary, error)
}

// LedgerHandler は取引操作のHTTPリクエストを処理します。
type LedgerHandler struct {
	ledger LedgerUsecase
}

// NewLedgerHandler はLedgerHandlerの新しいインスタンスを生成します。
func NewLedgerHandler(ledger LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// List は取引コレクション全体を返します。
func (h *LedgerHandler) List(c *gin.Context) {
	p := jwtmw.PrincipalFromContext(c)
	txs, err := h.ledger.List(c.Request.Context(), p)
	if err != nil {
		slog.Error("failed to list transactions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, txs)
}

// Add は取引を追加し、更新後のコレクション全体を返します。
func (h *LedgerHandler) Add(c *gin.Context) {
	var req dto.TransactionItem
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("transaction validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction"})
		return
	}
	p := jwtmw.PrincipalFromContext(c)
	txs, err := h.ledger.Add(c.Request.Context(), p, req.ToEntity())
	if err != nil {
		slog.Error("failed to add transaction", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save transaction"})
		return
	}
	c.JSON(http.StatusCreated, txs)
}

// Delete はIDで取引を削除し、更新後のコレクション全体を返します。
func (h *LedgerHandler) Delete(c *gin.Context) {
	p := jwtmw.PrincipalFromContext(c)
	txs, err := h.ledger.Delete(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		slog.Error("failed to delete transaction", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete transaction"})
		return
	}
	c.JSON(http.StatusOK, txs)
}

// Import はJSON配列で取引コレクション全体を置き換えます。
// 入力がJSON配列でない場合、ストアを一切変更せず400を返します。
func (h *LedgerHandler) Import(c *gin.Context) {
	var req []dto.TransactionItem
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("import payload rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "import payload must be a JSON array of transactions"})
		return
	}
	txs := make([]entity.Transaction, 0, len(req))
	for _, item := range req {
		txs = append(txs, item.ToEntity())
	}
	p := jwtmw.PrincipalFromContext(c)
	updated, err := h.ledger.ReplaceAll(c.Request.Context(), p, txs)
	if err != nil {
		slog.Error("failed to import transactions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}
	slog.Info("transactions imported", "count", len(updated))
	c.JSON(http.StatusOK, updated)
}

// Export は取引コレクション全体をJSONファイルとして返します。
func (h *LedgerHandler) Export(c *gin.Context) {
	p := jwtmw.PrincipalFromContext(c)
	txs, err := h.ledger.List(c.Request.Context(), p)
	if err != nil {
		slog.Error("failed to export transactions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="transactions.json"`)
	c.JSON(http.StatusOK, txs)
}

// Summary は当月スコープの財務集計を返します。
func (h *LedgerHandler) Summary(c *gin.Context) {
	p := jwtmw.PrincipalFromContext(c)
	summary, err := h.ledger.Summary(c.Request.Context(), p)
	if err != nil {
		slog.Error("failed to compute summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
