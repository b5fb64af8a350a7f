package handlers

import (
	"encoding/base64"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"costumes_back_end/internal/models"
	"costumes_back_end/internal/services"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

type CheckoutInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Notes   string `json:"notes"`
}

// Validate retourne le premier message d'erreur du formulaire, "" si tout est valide
func (in *CheckoutInput) Validate() string {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.Zip = strings.TrimSpace(in.Zip)

	switch {
	case in.Name == "":
		return "Le nom est requis"
	case in.Email == "":
		return "L'email est requis"
	case !emailPattern.MatchString(in.Email):
		return "Adresse email invalide"
	case in.Address == "":
		return "L'adresse est requise"
	case in.City == "":
		return "Veuillez sélectionner une ville"
	case !models.IsDeliveryCity(in.City):
		return "Ville de livraison invalide"
	case in.Zip == "":
		return "Le code postal est requis"
	}
	return ""
}

// 💳 POST /api/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abort(c, http.StatusBadRequest, "Données invalides")
		return
	}
	if msg := input.Validate(); msg != "" {
		abort(c, http.StatusBadRequest, msg)
		return
	}

	order, ok := h.Store.SubmitOrder(input.Name, input.Email, input.City)
	if !ok {
		abort(c, http.StatusBadRequest, "Votre panier est vide")
		return
	}

	if h.Mailer.NotifiesShop() {
		delivery := services.Delivery{Address: input.Address, Zip: input.Zip, Notes: input.Notes}
		go h.Mailer.SendNewOrderToShop(order, delivery)
	}

	resp := gin.H{
		"order":    order,
		"whatsapp": services.WhatsAppLink(h.WhatsAppNumber, order),
	}
	// Le QR code n'est remis qu'à l'auteur de la commande
	if png, err := services.OrderQRCode(h.WhatsAppNumber, order, 256); err != nil {
		log.Printf("❌ Erreur génération QR code %s: %v", order.ID, err)
	} else {
		resp["qrcode"] = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	}
	c.JSON(http.StatusCreated, resp)
}

// 📱 GET /api/admin/orders/:id/whatsapp.png
func (h *Handler) OrderWhatsAppQR(c *gin.Context) {
	order, ok := h.Store.Order(c.Param("id"))
	if !ok {
		abort(c, http.StatusNotFound, "Commande introuvable")
		return
	}

	png, err := services.OrderQRCode(h.WhatsAppNumber, order, 256)
	if err != nil {
		abort(c, http.StatusInternalServerError, "Erreur génération QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
