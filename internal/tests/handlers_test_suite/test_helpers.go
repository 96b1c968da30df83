package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/stockroom/internal/alert"
	api "github.com/rogerio-castellano/stockroom/internal/http"
	handler "github.com/rogerio-castellano/stockroom/internal/http/handlers"
	rl "github.com/rogerio-castellano/stockroom/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stockroom/internal/inventory"
	"github.com/rogerio-castellano/stockroom/internal/models"
	"github.com/rogerio-castellano/stockroom/internal/repo"
)

var (
	token         string
	catalogRepo   *repo.InMemoryCatalogRepository
	stockRepo     *repo.InMemoryStockRepository
	operationRepo *repo.InMemoryOperationRepository
	alerts        *alert.Registry
)

func init() {
	setupTestRepos("secret-password")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin", "secret-password")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	catalogRepo = repo.NewInMemoryCatalogRepository()
	stockRepo = repo.NewInMemoryStockRepository()
	operationRepo = repo.NewInMemoryOperationRepository()
	alerts = alert.NewRegistry()

	svc := inventory.NewService(catalogRepo, stockRepo, operationRepo, alerts)
	handler.SetInventoryService(svc)
	handler.SetCatalogRepo(catalogRepo)
	handler.SetOperationRepo(operationRepo)

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(catalogRepo, stockRepo, operationRepo)
}

func clearAllInventory() {
	catalogRepo.Clear()
	stockRepo.Clear()
	operationRepo.Clear()
	rl.CleanupAllVisitors()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	rl.CleanupAllVisitors()
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p)
}

func adjustStock(r http.Handler, productID string, adj handler.StockAdjustmentRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, fmt.Sprintf("/products/%s/adjust", productID), adj)
}

func transfer(r http.Handler, req handler.TransferRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/transfers", req)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
