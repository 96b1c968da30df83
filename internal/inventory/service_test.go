package inventory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/stockroom/internal/alert"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

func newTestService() (*Service, *repo.InMemoryOperationRepository, *alert.Registry) {
	catalog := repo.NewInMemoryCatalogRepository()
	stock := repo.NewInMemoryStockRepository()
	history := repo.NewInMemoryOperationRepository()
	alerts := alert.NewRegistry()
	return NewService(catalog, stock, history, alerts), history, alerts
}

func seedProduct(t *testing.T, s *Service, id, name string) models.Product {
	t.Helper()
	p, err := s.AddProduct(models.Product{
		ID:           id,
		Name:         name,
		Category:     "beverages",
		Supplier:     "ACME",
		CostPrice:    2.0,
		SellingPrice: 3.5,
	})
	require.NoError(t, err)
	return p
}

func TestAddProduct_Duplicate(t *testing.T) {
	s, _, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	_, err := s.AddProduct(models.Product{ID: "ITM001", Name: "Cola again", SellingPrice: 1})
	assert.ErrorIs(t, err, repo.ErrDuplicateProduct)
}

func TestAddProduct_LogsAddItemOperation(t *testing.T) {
	s, history, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	ops, total, err := history.GetByProductID("ITM001", repo.OperationFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, models.OpAddItem, ops[0].Kind)
	assert.Equal(t, 0, ops[0].Delta)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	s, _, _ := newTestService()

	_, err := s.AdjustStock("STORE001", "NOPE", 10)
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestAdjustStock_AndQuantityAt(t *testing.T) {
	s, _, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	qty, err := s.AdjustStock("STORE001", "ITM001", 100)
	require.NoError(t, err)
	assert.Equal(t, 100, qty)

	got, err := s.QuantityAt("STORE001", "ITM001")
	require.NoError(t, err)
	assert.Equal(t, 100, got)
}

func TestAdjustStock_NegativeBeyondStockFailsAndLeavesLedgerUnchanged(t *testing.T) {
	s, _, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	_, err := s.AdjustStock("STORE001", "ITM001", 70)
	require.NoError(t, err)

	_, err = s.AdjustStock("STORE001", "ITM001", -200)
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)

	qty, _ := s.QuantityAt("STORE001", "ITM001")
	assert.Equal(t, 70, qty)
}

func TestQuantityAt_AbsentEntryReadsAsZero(t *testing.T) {
	s, _, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	qty, err := s.QuantityAt("STORE042", "ITM001")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
}

func TestTotalStock_SumsAllCommittedDeltas(t *testing.T) {
	s, _, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	deltas := []struct {
		location string
		delta    int
	}{
		{"STORE001", 40},
		{"STORE002", 25},
		{"STORE001", -15},
		{"STORE003", 10},
	}
	sum := 0
	for _, d := range deltas {
		_, err := s.AdjustStock(d.location, "ITM001", d.delta)
		require.NoError(t, err)
		sum += d.delta
	}

	total, err := s.TotalStock("ITM001")
	require.NoError(t, err)
	assert.Equal(t, sum, total)
}

func TestTransfer_MovesStockAndLogsOneOperation(t *testing.T) {
	s, history, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	_, err := s.AdjustStock("STORE001", "ITM001", 100)
	require.NoError(t, err)

	require.NoError(t, s.Transfer("STORE001", "STORE002", "ITM001", 30))

	from, _ := s.QuantityAt("STORE001", "ITM001")
	to, _ := s.QuantityAt("STORE002", "ITM001")
	assert.Equal(t, 70, from)
	assert.Equal(t, 30, to)

	ops, _, err := history.GetByProductID("ITM001", repo.OperationFilter{Kind: models.OpTransfer})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, 30, ops[0].Delta)
	assert.Contains(t, ops[0].Note, "STORE001")
	assert.Contains(t, ops[0].Note, "STORE002")
}

func TestTransfer_InvalidQuantity(t *testing.T) {
	s, _, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	assert.ErrorIs(t, s.Transfer("STORE001", "STORE002", "ITM001", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, s.Transfer("STORE001", "STORE002", "ITM001", -5), ErrInvalidQuantity)
}

func TestTransfer_UnknownProduct(t *testing.T) {
	s, _, _ := newTestService()

	assert.ErrorIs(t, s.Transfer("STORE001", "STORE002", "NOPE", 1), repo.ErrProductNotFound)
}

func TestTransfer_AllOrNothing(t *testing.T) {
	s, history, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	_, err := s.AdjustStock("STORE001", "ITM001", 10)
	require.NoError(t, err)
	_, err = s.AdjustStock("STORE002", "ITM001", 5)
	require.NoError(t, err)

	err = s.Transfer("STORE001", "STORE002", "ITM001", 30)
	assert.ErrorIs(t, err, repo.ErrInsufficientStock)

	from, _ := s.QuantityAt("STORE001", "ITM001")
	to, _ := s.QuantityAt("STORE002", "ITM001")
	assert.Equal(t, 10, from, "source must be unchanged after a failed transfer")
	assert.Equal(t, 5, to, "destination must be unchanged after a failed transfer")

	ops, _, err := history.GetByProductID("ITM001", repo.OperationFilter{Kind: models.OpTransfer})
	require.NoError(t, err)
	assert.Empty(t, ops, "failed transfer must not be logged")
}

func TestTransfer_ConcurrentTransfersNeverGoNegative(t *testing.T) {
	s, _, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	_, err := s.AdjustStock("STORE001", "ITM001", 50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Transfer("STORE001", "STORE002", "ITM001", 1)
		}()
	}
	wg.Wait()

	from, _ := s.QuantityAt("STORE001", "ITM001")
	to, _ := s.QuantityAt("STORE002", "ITM001")
	assert.GreaterOrEqual(t, from, 0)
	assert.Equal(t, 50, from+to, "transfers must preserve total stock")
}

func TestCheckLowStock_FiresOnlyBelowThresholdAndRefires(t *testing.T) {
	s, _, alerts := newTestService()
	seedProduct(t, s, "ITM001", "Cola")
	seedProduct(t, s, "ITM002", "Chips")

	_, err := s.AdjustStock("STORE001", "ITM001", 3)
	require.NoError(t, err)
	_, err = s.AdjustStock("STORE001", "ITM002", 50)
	require.NoError(t, err)

	var messages []string
	alerts.Register(func(msg string) { messages = append(messages, msg) })

	require.NoError(t, s.CheckLowStock(10))
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "ITM001")
	assert.Contains(t, messages[0], "Cola")
	assert.Contains(t, messages[0], "3")

	// Alerts are not deduplicated: a second check fires again.
	require.NoError(t, s.CheckLowStock(10))
	assert.Len(t, messages, 2)
}

func TestHistoryFor_InsertionOrder(t *testing.T) {
	s, _, _ := newTestService()
	seedProduct(t, s, "ITM001", "Cola")

	_, err := s.AdjustStock("STORE001", "ITM001", 100)
	require.NoError(t, err)
	require.NoError(t, s.Transfer("STORE001", "STORE002", "ITM001", 30))
	_, err = s.AdjustStock("STORE002", "ITM001", -5)
	require.NoError(t, err)

	ops, total, err := s.HistoryFor("ITM001", repo.OperationFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	kinds := make([]models.OperationKind, len(ops))
	for i, op := range ops {
		kinds[i] = op.Kind
	}
	assert.Equal(t, []models.OperationKind{
		models.OpAddItem,
		models.OpUpdateStock,
		models.OpTransfer,
		models.OpUpdateStock,
	}, kinds)
}

func TestHistoryFor_UnknownProduct(t *testing.T) {
	s, _, _ := newTestService()

	_, _, err := s.HistoryFor("NOPE", repo.OperationFilter{})
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}
