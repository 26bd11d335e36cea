package models

import "time"

// Order представляет оформленный заказ. После создания заказ неизменяем,
// коллекция заказов — только на добавление.
type Order struct {
	ID       string      `json:"id"`
	Date     time.Time   `json:"date"`
	Customer string      `json:"customer"`
	Phone    string      `json:"phone"`
	Items    []OrderItem `json:"items"`
	Total    int         `json:"total"` // сумма по строкам на момент оформления
}

// OrderItem — строка заказа. Цена фиксируется на момент оформления,
// чтобы последующие правки каталога не меняли исторические заказы.
type OrderItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"qty"`
	UnitPrice int    `json:"price"`
}
