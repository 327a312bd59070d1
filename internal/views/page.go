// Package views defines the closed set of pages the storefront can
// show. Each variant carries exactly the data its template needs, so a
// view never reaches into ambient state, and the template mapping can be
// checked exhaustively.
package views

import (
	"shopfront/internal/models"
	"shopfront/internal/services"
)

// Page is a sealed tagged variant; only the types in this package
// implement it.
type Page interface {
	page()
}

// Frame is the chrome shared by every page: who is signed in and how
// many items the cart badge shows.
type Frame struct {
	Title     string
	User      *models.User
	CartCount int
}

type Home struct {
	Frame
	Featured   []models.Product
	Categories []models.Category
	Error      string
}

type Catalog struct {
	Frame
	View services.CatalogView
}

type ProductDetail struct {
	Frame
	Product models.Product
	Reviews []models.Review
	InCart  int
	Error   string
}

type CartPage struct {
	Frame
	Cart   models.Cart
	Totals models.CartTotals
}

type Checkout struct {
	Frame
	State  models.CheckoutState
	Cart   models.Cart
	Totals models.CartTotals
	Error  string
}

type OrderSuccess struct {
	Frame
	Order models.Order
}

type Login struct {
	Frame
	Email string
	Error string
}

type Register struct {
	Frame
	Form  models.RegisterData
	Error string
}

type Orders struct {
	Frame
	Orders []models.Order
	Error  string
}

type About struct {
	Frame
}

type Contact struct {
	Frame
	Sent bool
}

func (Home) page()          {}
func (Catalog) page()       {}
func (ProductDetail) page() {}
func (CartPage) page()      {}
func (Checkout) page()      {}
func (OrderSuccess) page()  {}
func (Login) page()         {}
func (Register) page()      {}
func (Orders) page()        {}
func (About) page()         {}
func (Contact) page()       {}

// TemplateName maps a page variant to its template. The default arm
// panics so a new variant without a template fails loudly in tests.
func TemplateName(p Page) string {
	switch p.(type) {
	case Home:
		return "home.html"
	case Catalog:
		return "products.html"
	case ProductDetail:
		return "product_detail.html"
	case CartPage:
		return "cart.html"
	case Checkout:
		return "checkout.html"
	case OrderSuccess:
		return "order_success.html"
	case Login:
		return "login.html"
	case Register:
		return "register.html"
	case Orders:
		return "orders.html"
	case About:
		return "about.html"
	case Contact:
		return "contact.html"
	default:
		panic("views: unmapped page variant")
	}
}

// All returns one zero value per variant, for exhaustiveness checks.
func All() []Page {
	return []Page{
		Home{}, Catalog{}, ProductDetail{}, CartPage{}, Checkout{},
		OrderSuccess{}, Login{}, Register{}, Orders{}, About{}, Contact{},
	}
}
