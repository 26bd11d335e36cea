package models

// Product представляет товар каталога.
// JSON-теги совпадают с форматом записей в локальном хранилище.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"` // цена в сумах (UZS)
	Icon        string `json:"icon"`  // глиф для карточки товара
	Description string `json:"desc"`
}
