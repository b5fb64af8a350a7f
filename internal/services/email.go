package services

import (
	"errors"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/wneessen/go-mail"

	"costumes_back_end/internal/config"
	"costumes_back_end/internal/models"
)

var ErrMailDisabled = errors.New("envoi d'e-mails désactivé (SMTP_HOST non configuré)")

// Mailer envoie les e-mails de commande via SMTP
type Mailer struct {
	cfg  config.SMTPSettings
	send func(*mail.Msg) error
}

// NewMailer retourne nil quand aucun serveur SMTP n'est configuré
func NewMailer(cfg config.SMTPSettings) *Mailer {
	if cfg.Host == "" {
		log.Println("⚠️ SMTP non configuré, e-mails désactivés")
		return nil
	}
	m := &Mailer{cfg: cfg}
	m.send = m.dialAndSend
	return m
}

func (m *Mailer) dialAndSend(msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("client SMTP: %w", err)
	}
	return client.DialAndSend(msg)
}

// SendOrderConfirmation confirme la commande au client
func (m *Mailer) SendOrderConfirmation(order models.Order) error {
	subject := fmt.Sprintf("Confirmation de votre commande %s", order.ID)
	return m.deliver(order.CustomerEmail, subject, OrderConfirmationHTML(order))
}

// Delivery regroupe les champs du formulaire de commande qui ne sont pas gardés dans Order
type Delivery struct {
	Address string
	Zip     string
	Notes   string
}

// NotifiesShop indique si une copie des nouvelles commandes part vers la boutique
func (m *Mailer) NotifiesShop() bool {
	return m != nil && m.cfg.AdminTo != ""
}

// SendNewOrderToShop envoie le détail d'une nouvelle commande à SMTP_ADMIN_TO
func (m *Mailer) SendNewOrderToShop(order models.Order, d Delivery) error {
	if !m.NotifiesShop() {
		return ErrMailDisabled
	}
	subject := fmt.Sprintf("Nouvelle commande #%s", order.ID)
	return m.deliver(m.cfg.AdminTo, subject, NewOrderShopHTML(order, d))
}

// SendOrderStatus informe le client du statut actuel de sa commande
func (m *Mailer) SendOrderStatus(order models.Order) error {
	return m.deliver(order.CustomerEmail, statusSubject(order.Status), OrderStatusHTML(order))
}

func (m *Mailer) deliver(to, subject, body string) error {
	if m == nil {
		return ErrMailDisabled
	}
	msg, err := m.buildMessage(to, subject, body)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	if err := m.send(msg); err != nil {
		log.Printf("❌ Erreur envoi e-mail à %s: %v", to, err)
		return fmt.Errorf("envoi e-mail: %w", err)
	}
	log.Printf("📧 E-mail envoyé: %s → %s", subject, to)
	return nil
}

func (m *Mailer) buildMessage(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("expéditeur invalide: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("destinataire invalide: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

func statusSubject(status models.OrderStatus) string {
	switch status {
	case models.OrderCompleted:
		return "✅ Votre commande est terminée"
	case models.OrderCancelled:
		return "❌ Commande annulée"
	default:
		return "📋 Votre commande est en cours de traitement"
	}
}

func statusMessage(status models.OrderStatus) string {
	switch status {
	case models.OrderCompleted:
		return "Votre commande a été traitée avec succès. Merci pour votre confiance !"
	case models.OrderCancelled:
		return "Votre commande a été annulée. Contactez-nous pour toute question."
	default:
		return "Votre commande a bien été reçue et est en cours de traitement."
	}
}

// OrderConfirmationHTML génère le récapitulatif envoyé après la commande
func OrderConfirmationHTML(order models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, `
			<tr>
				<td>%s</td>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f MAD</td>
			</tr>`,
			html.EscapeString(item.Product.Name),
			html.EscapeString(variantLabel(item)),
			item.Quantity,
			item.LineTotal())
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Commande %s confirmée</h2>
		<p>Bonjour %s,</p>
		<p>Nous avons bien reçu votre commande du %s.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th>Produit</th>
					<th>Taille / Couleur</th>
					<th>Quantité</th>
					<th>Total</th>
				</tr>
			</thead>
			<tbody>%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="text-align: right; font-weight: bold;">Total:</td>
					<td style="font-weight: bold;">%.2f MAD</td>
				</tr>
			</tfoot>
		</table>
		<p style="margin-top: 30px; color: #555;">Cordialement,<br><strong>L'équipe Costumes</strong></p>
	</div>
</body>
</html>`,
		html.EscapeString(order.ID),
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.Date),
		rows.String(),
		order.Total)
}

// NewOrderShopHTML génère la fiche de commande destinée à la boutique
func NewOrderShopHTML(order models.Order, d Delivery) string {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "\n\t\t\t<li>%s (%s) x%d : %.2f MAD</li>",
			html.EscapeString(item.Product.Name),
			html.EscapeString(variantLabel(item)),
			item.Quantity,
			item.LineTotal())
	}
	notes := strings.TrimSpace(d.Notes)
	if notes == "" {
		notes = "Aucune"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Nouvelle commande</title>
</head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Nouvelle commande #%s</h2>
	<p><strong>Client:</strong> %s<br>
	<strong>Email:</strong> %s<br>
	<strong>Adresse:</strong> %s, %s, %s</p>
	<h3>Produits commandés</h3>
	<ul>%s
	</ul>
	<p><strong>Total:</strong> %.2f MAD</p>
	<h3>Notes supplémentaires</h3>
	<p>%s</p>
</body>
</html>`,
		html.EscapeString(order.ID),
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.CustomerEmail),
		html.EscapeString(d.Address),
		html.EscapeString(order.City),
		html.EscapeString(d.Zip),
		items.String(),
		order.Total,
		html.EscapeString(notes))
}

// OrderStatusHTML génère l'e-mail de suivi envoyé depuis le tableau de bord
func OrderStatusHTML(order models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Mise à jour de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Commande #%s</h2>
		<p>Bonjour %s,</p>
		<p>%s</p>
		<p><strong>Statut:</strong> %s<br><strong>Montant total:</strong> %.2f MAD</p>
		<p style="margin-top: 30px; color: #555;">Cordialement,<br><strong>L'équipe Costumes</strong></p>
	</div>
</body>
</html>`,
		html.EscapeString(order.ID),
		html.EscapeString(order.CustomerName),
		statusMessage(order.Status),
		order.Status,
		order.Total)
}

func variantLabel(item models.CartItem) string {
	size, color := item.SelectedSize, item.SelectedColor
	if size == "" {
		size = "N/A"
	}
	if color == "" {
		color = "N/A"
	}
	return size + " / " + color
}
