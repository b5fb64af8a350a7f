package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"costumes_back_end/internal/models"
)

const DefaultWhatsAppNumber = "212610284374"

// WhatsAppLink construit le lien wa.me pré-rempli avec le récapitulatif de la commande
func WhatsAppLink(number string, order models.Order) string {
	if number == "" {
		number = DefaultWhatsAppNumber
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(orderSummary(order)))
}

func orderSummary(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Commande %s - %s\n", order.ID, order.CustomerName)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%s x %d - %s - %.2f MAD\n",
			item.Product.Name, item.Quantity, variantLabel(item), item.LineTotal())
	}
	fmt.Fprintf(&b, "Total: %.2f MAD", order.Total)
	return b.String()
}

// OrderQRCode encode le lien WhatsApp de la commande en PNG
func OrderQRCode(number string, order models.Order, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(WhatsAppLink(number, order), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("génération QR: %w", err)
	}
	return png, nil
}
