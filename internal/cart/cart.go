package cart

import (
	"sync"

	"github.com/linemk/silkbloom/internal/domain/models"
)

// Cart — корзина текущей страницы: упорядоченный список строк
// (снимок товара, количество). Живёт только в памяти процесса и
// не переживает перезапуск. Мьютекс нужен, потому что http-обработчики
// могут выполняться параллельно.
type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
}

// New создаёт пустую корзину.
func New() *Cart {
	return &Cart{}
}

// Add добавляет товар в корзину. Повторное добавление того же товара
// увеличивает количество существующей строки, дублей не возникает.
func (c *Cart) Add(product models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{Product: product, Quantity: 1})
}

// SetQuantity выставляет количество строки; ноль (или меньше) удаляет
// строку целиком, нулевые строки в корзине не хранятся.
// Возвращает false, если строки с таким товаром нет.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Total возвращает сумму цена×количество по всем строкам.
func (c *Cart) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Product.Price * line.Quantity
	}
	return total
}

// ItemCount возвращает суммарное количество единиц товара в корзине.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Empty сообщает, пуста ли корзина.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Clear опустошает корзину, вызывается после успешного оформления заказа.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines возвращает копию строк корзины в порядке добавления.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}
