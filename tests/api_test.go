package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"testing"

	"github.com/stretchr/testify/assert"
)

const baseURL = "http://localhost:8080"

// LoginResponse — структура ответа при входе
type LoginResponse struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CheckoutResponse — подтверждение заказа
type CheckoutResponse struct {
	OrderID string `json:"order_id"`
	Total   int    `json:"total"`
}

// newClient возвращает клиент с cookie jar: сессия живёт в cookie
func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	assert.NoError(t, err, "cookie jar should be created")
	return &http.Client{Jar: jar}
}

func loginAdmin(t *testing.T, client *http.Client) {
	reqBody := []byte(`{"login": "admin@silkbloom.uz", "password": "admin123"}`)
	resp, err := client.Post(baseURL+"/auth/login", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err, "Login request should not error")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Expected 200 OK for valid login")

	var loginResp LoginResponse
	err = json.NewDecoder(resp.Body).Decode(&loginResp)
	assert.NoError(t, err, "Decoding login response should succeed")
	assert.Equal(t, "admin", loginResp.Role, "Seed account should be admin")
}

// сценарий с успешным входом администратора
func TestLogin(t *testing.T) {
	loginAdmin(t, newClient(t))
}

// сценарий с неверным паролем
func TestLoginInvalid(t *testing.T) {
	reqBody := []byte(`{"login": "admin@silkbloom.uz", "password": "wrong"}`)
	resp, err := http.Post(baseURL+"/auth/login", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "Expected 401 for wrong password")
}

// полный сценарий покупки: товар в корзину, оформление заказа
func TestCheckoutFlow(t *testing.T) {
	client := newClient(t)

	// добавляем товар из стартового каталога дважды
	for i := 0; i < 2; i++ {
		resp, err := client.Post(baseURL+"/cart/items/p1", "text/html", nil)
		assert.NoError(t, err, "Add to cart should not error")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	reqBody := []byte(`{"customer": "Mijoz", "phone": "+998901234567"}`)
	resp, err := client.Post(baseURL+"/checkout", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err, "Checkout should not error")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Expected 201 for checkout")

	var checkoutResp CheckoutResponse
	err = json.NewDecoder(resp.Body).Decode(&checkoutResp)
	assert.NoError(t, err)
	assert.NotEmpty(t, checkoutResp.OrderID)
	assert.Equal(t, 2*45000, checkoutResp.Total, "Total should be two seed roses")
}

// добавление несуществующего товара — типизированная ошибка, а не тихий пропуск
func TestCartAddUnknownProduct(t *testing.T) {
	resp, err := http.Post(baseURL+"/cart/items/does-not-exist", "text/html", nil)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// админ-маршруты закрыты без сессии администратора
func TestAdminForbiddenWithoutLogin(t *testing.T) {
	resp, err := http.Get(baseURL + "/admin/products")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// сценарий админа: вход, добавление и удаление товара
func TestAdminCatalogFlow(t *testing.T) {
	client := newClient(t)
	loginAdmin(t, client)

	reqBody := []byte(`{"name": "Gortenziya", "price": 60000, "icon": "💮", "desc": "Oq gortenziya"}`)
	resp, err := client.Post(baseURL+"/admin/products", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var product struct {
		ID string `json:"id"`
	}
	err = json.NewDecoder(resp.Body).Decode(&product)
	resp.Body.Close()
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)

	req, err := http.NewRequest(http.MethodDelete, baseURL+"/admin/products/"+product.ID, nil)
	assert.NoError(t, err)
	delResp, err := client.Do(req)
	assert.NoError(t, err)
	defer delResp.Body.Close()

	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
}
