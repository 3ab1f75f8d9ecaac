package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/internal/domain"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *recordingMailer) messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

var settings = domain.Settings{
	StoreName:    "Northwind Outfitters",
	Currency:     "USD",
	ContactEmail: "help@northwind.example",
	TaxRate:      decimal.RequireFromString("0.08"),
	ShippingCost: decimal.RequireFromString("5.99"),
}

func TestWelcome(t *testing.T) {
	m := &recordingMailer{}
	n := New(m, nil)

	n.Welcome(domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}, settings)
	n.Wait()

	sent := m.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].To)
	assert.Equal(t, "Welcome to Northwind Outfitters", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Ada")
	assert.Contains(t, sent[0].HTML, "help@northwind.example")
	assert.Empty(t, sent[0].Attachments)
}

func TestWelcomeWithoutEmailIsSkipped(t *testing.T) {
	m := &recordingMailer{}
	n := New(m, nil)
	n.Welcome(domain.User{ID: "u1"}, settings)
	n.Wait()
	assert.Empty(t, m.messages())
}

func TestOrderPlacedAttachesInvoice(t *testing.T) {
	m := &recordingMailer{}
	n := New(m, nil)
	o := domain.Order{
		ID:            "ord-7",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Items: []domain.CartItem{{
			Product:       domain.Product{ID: "1", Name: "Scarf", Price: decimal.RequireFromString("12.00")},
			Quantity:      2,
			SelectedColor: "Red",
		}},
		Subtotal:  decimal.RequireFromString("24"),
		Tax:       decimal.RequireFromString("1.92"),
		Shipping:  decimal.RequireFromString("5.99"),
		Total:     decimal.RequireFromString("31.91"),
		Status:    domain.StatusProcessing,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	n.OrderPlaced(o, settings)
	n.Wait()

	sent := m.messages()
	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, "Northwind Outfitters order ord-7", msg.Subject)
	assert.Contains(t, msg.HTML, "Scarf (Red)")
	assert.Contains(t, msg.HTML, "$31.91")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "invoice-ord-7.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
	assert.True(t, bytes.HasPrefix(msg.Attachments[0].Data, []byte("%PDF")))
}

func TestSendFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	m := &recordingMailer{err: errors.New("relay refused")}
	n := New(m, log.New(&logs, "", 0))

	n.Welcome(domain.User{ID: "u1", Email: "ada@example.com"}, settings)
	n.Wait()
	assert.Contains(t, logs.String(), "relay refused")
}

func TestNilMailerFallsBackToLog(t *testing.T) {
	var logs bytes.Buffer
	n := New(nil, log.New(&logs, "", 0))
	n.Welcome(domain.User{ID: "u1", Email: "ada@example.com"}, settings)
	n.Wait()
	assert.Contains(t, logs.String(), "mail: to=ada@example.com")
}

func TestSMTPMessageLayout(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 587, "", "", "shop@example.com")
	m.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	pdf := bytes.Repeat([]byte("%PDF-1.3 body "), 20)

	raw, err := m.build(Message{
		To:          "ada@example.com",
		Subject:     "Order ord-7",
		HTML:        "<p>hello</p>",
		Attachments: []Attachment{{Filename: "invoice-ord-7.pdf", ContentType: "application/pdf", Data: pdf}},
	})
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", parsed.Header.Get("To"))
	assert.Equal(t, "shop@example.com", parsed.Header.Get("From"))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	html, err := mr.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html.Header.Get("Content-Type"), "text/html"))
	assert.Equal(t, "<p>hello</p>", decodePart(t, html))

	att, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "invoice-ord-7.pdf", att.FileName())
	assert.Equal(t, pdf, []byte(decodePart(t, att)))

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSMTPRejectsEmptyRecipient(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "", "", "shop@example.com")
	assert.Error(t, m.Send(context.Background(), Message{Subject: "x"}))
}

func decodePart(t *testing.T, p *multipart.Part) string {
	t.Helper()
	raw, err := io.ReadAll(p)
	require.NoError(t, err)
	out, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(raw), "\r\n", ""))
	require.NoError(t, err)
	return string(out)
}
