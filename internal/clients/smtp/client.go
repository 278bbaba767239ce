// Package smtp delivers report emails over SMTP, with retries, or simulates
// delivery when sending is disabled.
package smtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Default delivery settings.
const (
	DefaultPort          = 587
	DefaultTimeout       = 15 * time.Second
	DefaultMaxAttempts   = 3
	DefaultRetryInterval = 500 * time.Millisecond
)

// Config holds SMTP connection and delivery settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Enabled false means messages are built and logged but never sent.
	Enabled       bool
	Timeout       time.Duration
	MaxAttempts   uint
	RetryInterval time.Duration
}

// Attachment is a file attached to a message.
type Attachment struct {
	Name string
	Data []byte
}

// Message is one outgoing email.
type Message struct {
	ID          string
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Delivery describes the outcome of a successful Send.
type Delivery struct {
	MessageID string
	Simulated bool
	Attempts  int
	Bytes     int64
}

// sender is the part of *mail.Client used for delivery.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Client sends messages through one SMTP relay.
type Client struct {
	cfg    Config
	sender sender
	log    zerolog.Logger
}

// NewClient creates an SMTP client. With delivery disabled no connection
// settings are required.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.Port <= 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	if cfg.From == "" {
		return nil, errors.New("smtp: sender address is required")
	}

	c := &Client{
		cfg: cfg,
		log: log.With().Str("client", "smtp").Logger(),
	}

	if !cfg.Enabled {
		return c, nil
	}
	if cfg.Host == "" {
		return nil, errors.New("smtp: host is required when delivery is enabled")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	mc, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: failed to create client: %w", err)
	}
	c.sender = mc
	return c, nil
}

// From returns the sender address.
func (c *Client) From() string {
	return c.cfg.From
}

// Simulated reports whether the client only pretends to deliver.
func (c *Client) Simulated() bool {
	return c.sender == nil
}

// Send builds msg and delivers it, retrying transient failures with
// exponential backoff. Invalid addresses fail immediately.
func (c *Client) Send(ctx context.Context, msg Message) (Delivery, error) {
	m, err := c.build(msg)
	if err != nil {
		return Delivery{}, err
	}

	size, err := m.WriteTo(io.Discard)
	if err != nil {
		return Delivery{}, fmt.Errorf("smtp: failed to render message: %w", err)
	}

	delivery := Delivery{MessageID: msg.ID, Simulated: c.Simulated(), Bytes: size}

	if c.Simulated() {
		c.log.Info().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Str("message_id", msg.ID).
			Int64("bytes", size).
			Msg("Email delivery disabled, message not sent")
		return delivery, nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.cfg.RetryInterval
	policy.MaxInterval = c.cfg.RetryInterval * 8

	notify := func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Dur("backoff", wait).Str("to", msg.To).Msg("Email delivery failed, retrying")
	}

	attempts := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		return struct{}{}, c.sender.DialAndSendWithContext(ctx, m)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.cfg.MaxAttempts),
		backoff.WithNotify(notify))
	delivery.Attempts = attempts
	if err != nil {
		return delivery, fmt.Errorf("smtp: delivery to %s failed after %d attempts: %w", msg.To, attempts, err)
	}

	c.log.Info().
		Str("to", msg.To).
		Str("message_id", msg.ID).
		Int("attempts", attempts).
		Msg("Email delivered")
	return delivery, nil
}

func (c *Client) build(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(c.cfg.From); err != nil {
		return nil, fmt.Errorf("smtp: invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("smtp: invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	if msg.ID != "" {
		m.SetMessageIDWithValue(msg.ID)
	} else {
		m.SetMessageID()
	}

	switch {
	case msg.HTML != "" && msg.Text != "":
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
	}

	for _, a := range msg.Attachments {
		m.AttachReadSeeker(a.Name, bytes.NewReader(a.Data))
	}
	return m, nil
}
