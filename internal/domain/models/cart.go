package models

// CartLine — строка корзины: снимок товара и количество.
// Количество всегда не меньше единицы, строки с нулём удаляются целиком.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
