// Package whatsapp builds wa.me handoff links. The storefront redirects
// customers to WhatsApp after an order is stored; the dashboard links
// admins to a chat with the customer.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sandrine-beauty/kika-shop/internal/database"
)

const baseURL = "https://wa.me/"

// BuildOrderMessage renders the customer-facing confirmation text for a
// stored order, using the order's product snapshot.
func BuildOrderMessage(order database.Order) string {
	price := database.NumericToDecimal(order.ProductPrice)

	var b strings.Builder
	b.WriteString("مرحباً، تم تسجيل طلبي بنجاح:\n\n")
	fmt.Fprintf(&b, "🌟 المنتج: %s\n", order.ProductName)
	fmt.Fprintf(&b, "💰 السعر: %s جنيه (شحن مجاني)\n\n", price.StringFixed(0))
	b.WriteString("📋 بيانات الطلب:\n")
	fmt.Fprintf(&b, "الاسم: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "الهاتف: %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "العنوان: %s\n", order.CustomerAddress)
	if order.CustomerNotes.Valid && order.CustomerNotes.String != "" {
		fmt.Fprintf(&b, "ملاحظات: %s\n", order.CustomerNotes.String)
	}
	b.WriteString("\nشكراً لثقتكم في منتجاتنا! 💕")
	return b.String()
}

// OrderURL builds the wa.me link that opens a chat with the shop number,
// pre-filled with the order confirmation message.
func OrderURL(shopNumber string, order database.Order) string {
	return baseURL + shopNumber + "?text=" + url.QueryEscape(BuildOrderMessage(order))
}

// CustomerURL builds the wa.me link for contacting an order's customer.
// Local numbers (leading 0) get the Egyptian country prefix.
func CustomerURL(phone string) string {
	number := phone
	if strings.HasPrefix(number, "0") {
		number = "2" + number
	}
	return baseURL + number
}
