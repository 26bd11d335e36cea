// Package render содержит чистые функции отрисовки состояния магазина
// в HTML-фрагменты. Функции детерминированы и не меняют состояние:
// одна и та же коллекция всегда даёт один и тот же фрагмент.
package render

import (
	"html/template"
	"sort"
	"strings"

	"github.com/linemk/silkbloom/internal/domain/models"
	"github.com/linemk/silkbloom/internal/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// принтер с группировкой разрядов по узбекской локали
var uzs = message.NewPrinter(language.Uzbek)

// FormatPrice форматирует цену вида "45 000 UZS".
func FormatPrice(price int) string {
	return uzs.Sprintf("%d UZS", price)
}

var funcs = template.FuncMap{
	"price": FormatPrice,
	"items": formatOrderItems,
	"date": func(o *models.Order) string {
		return o.Date.Format("02.01.2006 15:04")
	},
}

// формат строк заказа в таблице: "Название (кол-во), ..."
func formatOrderItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, uzs.Sprintf("%s (%d)", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

var productGridTmpl = template.Must(template.New("productGrid").Funcs(funcs).Parse(`{{range .}}<div class="product-card glass">
    <div class="product-img" id="{{.ID}}">{{.Icon}}</div>
    <div class="product-info">
        <h3>{{.Name}}</h3>
        <p>{{.Description}}</p>
        <div class="price-row">
            <span class="price">{{price .Price}}</span>
            <button class="add-to-cart" data-id="{{.ID}}">+</button>
        </div>
    </div>
</div>
{{end}}`))

var cartDrawerTmpl = template.Must(template.New("cartDrawer").Funcs(funcs).Parse(`<span class="cart-count">{{.ItemCount}}</span>
<div id="cart-items">
{{- if .Lines}}{{range .Lines}}
    <div class="cart-item">
        <div class="item-img">{{.Product.Icon}}</div>
        <div class="item-details">
            <h4>{{.Product.Name}}</h4>
            <p>{{price .Product.Price}} x {{.Quantity}}</p>
        </div>
    </div>
{{- end}}
{{else}}
    <p class="empty-msg">Savat bo'sh</p>
{{- end}}
</div>
<div id="cart-total">{{price .Total}}</div>`))

var adminProductsTmpl = template.Must(template.New("adminProducts").Funcs(funcs).Parse(`{{range .}}<tr>
    <td style="font-size: 2rem;">{{.Icon}}</td>
    <td>{{.Name}}</td>
    <td>{{price .Price}}</td>
    <td class="action-btns">
        <button class="btn-delete" data-id="{{.ID}}">O'chirish</button>
    </td>
</tr>
{{end}}`))

var adminOrdersTmpl = template.Must(template.New("adminOrders").Funcs(funcs).Parse(`{{range .}}<tr>
    <td>{{date .}}</td>
    <td>{{.Customer}}</td>
    <td>{{.Phone}}</td>
    <td style="font-size: 0.8rem;">{{items .Items}}</td>
    <td><b>{{price .Total}}</b></td>
</tr>
{{end}}`))

var adminStatsTmpl = template.Must(template.New("adminStats").Parse(`<div class="stats">
    <span id="stat-products">{{.Products}}</span>
    <span id="stat-orders">{{.Orders}}</span>
    <span id="stat-users">{{.Users}}</span>
</div>`))

// ProductGrid отрисовывает сетку карточек товаров.
func ProductGrid(products []*models.Product) (string, error) {
	var sb strings.Builder
	if err := productGridTmpl.Execute(&sb, products); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// CartDrawer отрисовывает выдвижную корзину: счётчик-бейдж, строки и итог.
func CartDrawer(view service.CartView) (string, error) {
	var sb strings.Builder
	if err := cartDrawerTmpl.Execute(&sb, view); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// AdminProducts отрисовывает таблицу каталога для админ-панели.
func AdminProducts(products []*models.Product) (string, error) {
	var sb strings.Builder
	if err := adminProductsTmpl.Execute(&sb, products); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// AdminOrders отрисовывает таблицу заказов, свежие сверху.
// Входная коллекция не меняется, сортируется копия.
func AdminOrders(orders []*models.Order) (string, error) {
	sorted := make([]*models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	var sb strings.Builder
	if err := adminOrdersTmpl.Execute(&sb, sorted); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// AdminStats отрисовывает счётчики админ-панели.
func AdminStats(stats *service.Stats) (string, error) {
	var sb strings.Builder
	if err := adminStatsTmpl.Execute(&sb, stats); err != nil {
		return "", err
	}
	return sb.String(), nil
}
