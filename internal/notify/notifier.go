package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	"storefront/internal/invoice"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const sendTimeout = 30 * time.Second

// Notifier turns domain events into email. Sends run in the background and
// never report back to the caller; failures are logged.
type Notifier struct {
	mailer  Mailer
	logger  *log.Logger
	pending sync.WaitGroup
}

func New(mailer Mailer, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if mailer == nil {
		mailer = LogMailer{Logger: logger}
	}
	return &Notifier{mailer: mailer, logger: logger}
}

type welcomeView struct {
	StoreName    string
	Name         string
	Email        string
	ContactEmail string
	Color        string
}

// Welcome greets a newly registered user.
func (n *Notifier) Welcome(u domain.User, s domain.Settings) {
	if u.Email == "" {
		n.logger.Printf("notify: welcome skipped user=%s: no email", u.ID)
		return
	}
	html, err := render("welcome.html", welcomeView{
		StoreName:    storeName(s),
		Name:         u.Name,
		Email:        u.Email,
		ContactEmail: s.ContactEmail,
		Color:        color(s),
	})
	if err != nil {
		n.logger.Printf("notify: welcome user=%s: %v", u.ID, err)
		return
	}
	n.send(Message{
		To:      u.Email,
		Subject: "Welcome to " + storeName(s),
		HTML:    html,
	})
}

type orderLine struct {
	Name     string
	Quantity int
	Total    string
}

type orderView struct {
	Name         string
	OrderID      string
	Status       string
	Lines        []orderLine
	Subtotal     string
	Tax          string
	Shipping     string
	Total        string
	ContactEmail string
	Color        string
}

// OrderPlaced mails the order confirmation with its invoice attached.
func (n *Notifier) OrderPlaced(o domain.Order, s domain.Settings) {
	if o.CustomerEmail == "" {
		n.logger.Printf("notify: order mail skipped id=%s: no customer email", o.ID)
		return
	}
	pdf, err := invoice.RenderBytes(o, s)
	if err != nil {
		n.logger.Printf("notify: order mail id=%s: %v", o.ID, err)
		return
	}
	money := func(d decimal.Decimal) string { return formatMoney(d, s.Currency) }
	view := orderView{
		Name:         o.CustomerName,
		OrderID:      o.ID,
		Status:       string(o.Status),
		Subtotal:     money(o.Subtotal),
		Tax:          money(o.Tax),
		Shipping:     money(o.Shipping),
		Total:        money(o.Total),
		ContactEmail: s.ContactEmail,
		Color:        color(s),
	}
	for _, it := range o.Items {
		name := it.Name
		if label := it.SelectionLabel(); label != "" {
			name += " (" + label + ")"
		}
		view.Lines = append(view.Lines, orderLine{Name: name, Quantity: it.Quantity, Total: money(it.LineTotal())})
	}
	html, err := render("order.html", view)
	if err != nil {
		n.logger.Printf("notify: order mail id=%s: %v", o.ID, err)
		return
	}
	n.send(Message{
		To:      o.CustomerEmail,
		Subject: fmt.Sprintf("%s order %s", storeName(s), o.ID),
		HTML:    html,
		Attachments: []Attachment{{
			Filename:    invoice.Filename(o),
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	})
}

// Wait blocks until all background sends have finished.
func (n *Notifier) Wait() {
	n.pending.Wait()
}

func (n *Notifier) send(m Message) {
	n.pending.Add(1)
	go func() {
		defer n.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := n.mailer.Send(ctx, m); err != nil {
			n.logger.Printf("notify: send to=%s subject=%q: %v", m.To, m.Subject, err)
		}
	}()
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func storeName(s domain.Settings) string {
	if s.StoreName == "" {
		return "our store"
	}
	return s.StoreName
}

func color(s domain.Settings) string {
	if s.PrimaryColor == "" {
		return "#111827"
	}
	return s.PrimaryColor
}

func formatMoney(d decimal.Decimal, currency string) string {
	switch currency {
	case "USD":
		return "$" + d.StringFixed(2)
	case "EUR":
		return "€" + d.StringFixed(2)
	case "GBP":
		return "£" + d.StringFixed(2)
	case "":
		return d.StringFixed(2)
	}
	return currency + " " + d.StringFixed(2)
}

