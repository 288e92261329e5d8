package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"gestion_comercial/internal/usecase/interfaces"

	gomail "github.com/wneessen/go-mail"
)

var ErrMissingSMTPHost = errors.New("missing SMTP_HOST")
var ErrMissingSMTPFrom = errors.New("missing SMTP_FROM")
var ErrSMTPGatewayNotConfigured = errors.New("smtp gateway not configured")

const (
	defaultSMTPPort    = 587
	defaultSMTPTimeout = 30 * time.Second
)

// SMTPSettings configures the outgoing mail relay.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Timeout bounds one whole delivery, dial included.
	Timeout   time.Duration
	TLSPolicy gomail.TLSPolicy
	MockMode  bool
}

// SMTPSettingsFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USERNAME,
// SMTP_PASSWORD, SMTP_FROM, SMTP_TLS_POLICY, NOTIFICATION_TIMEOUT_SECONDS and
// NOTIFICATION_GATEWAY_MOCK.
func SMTPSettingsFromEnv() SMTPSettings {
	s := SMTPSettings{
		Host:      strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:      defaultSMTPPort,
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		From:      strings.TrimSpace(os.Getenv("SMTP_FROM")),
		Timeout:   defaultSMTPTimeout,
		TLSPolicy: parseTLSPolicy(os.Getenv("SMTP_TLS_POLICY")),
		MockMode:  isNotificationMockEnabled(),
	}
	if v, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && v > 0 {
		s.Port = v
	}
	if v, err := strconv.Atoi(os.Getenv("NOTIFICATION_TIMEOUT_SECONDS")); err == nil && v > 0 {
		s.Timeout = time.Duration(v) * time.Second
	}
	return s
}

// parseTLSPolicy accepts "mandatory", "none" and "opportunistic" (default).
func parseTLSPolicy(v string) gomail.TLSPolicy {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "mandatory":
		return gomail.TLSMandatory
	case "none", "off":
		return gomail.NoTLS
	default:
		return gomail.TLSOpportunistic
	}
}

// SMTPGateway delivers quotation emails through an SMTP relay.
//
// Every delivery dials a fresh connection whose lifetime is tied to the send
// context: the connection deadline is the context deadline and the
// connection is closed as soon as Send returns.
type SMTPGateway struct {
	settings SMTPSettings
	dialer   *net.Dialer
	mockMode bool
}

var _ interfaces.INotificationGateway = (*SMTPGateway)(nil)

func NewSMTPGateway(s SMTPSettings) (*SMTPGateway, error) {
	if s.MockMode {
		log.Printf("[notification][gateway] mock mode enabled")
		return &SMTPGateway{settings: s, mockMode: true}, nil
	}
	if s.Host == "" {
		log.Printf("[notification][gateway] missing SMTP_HOST")
		return nil, ErrMissingSMTPHost
	}
	if _, err := mail.ParseAddress(s.From); err != nil {
		log.Printf("[notification][gateway] invalid SMTP_FROM value=%q", s.From)
		return nil, ErrMissingSMTPFrom
	}
	if s.Port <= 0 {
		s.Port = defaultSMTPPort
	}
	if s.Timeout <= 0 {
		s.Timeout = defaultSMTPTimeout
	}

	log.Printf("[notification][gateway] SMTP relay configured host=%s port=%d timeout=%s", s.Host, s.Port, s.Timeout)
	return &SMTPGateway{settings: s, dialer: &net.Dialer{}}, nil
}

func (g *SMTPGateway) Send(ctx context.Context, msg interfaces.EmailMessage) error {
	if g != nil && g.mockMode {
		log.Printf("[notification][gateway] mock send to=%s subject=%q body_len=%d", msg.To, msg.Subject, len(msg.Body))
		return nil
	}
	if g == nil || g.dialer == nil {
		log.Printf("[notification][gateway] gateway not configured")
		return ErrSMTPGatewayNotConfigured
	}

	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	m, err := BuildMessage(g.settings.From, to.Address, msg.Subject, msg.Body, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.settings.Timeout)
	defer cancel()

	client, err := g.newClient(ctx)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	log.Printf("[notification][gateway] send start to=%s subject=%q", to.Address, msg.Subject)
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		log.Printf("[notification][gateway] send failed to=%s err=%v", to.Address, err)
		return err
	}
	log.Printf("[notification][gateway] send success to=%s", to.Address)
	return nil
}

func (g *SMTPGateway) newClient(sendCtx context.Context) (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(g.settings.Port),
		gomail.WithTimeout(g.settings.Timeout),
		gomail.WithTLSPolicy(g.settings.TLSPolicy),
		gomail.WithDialContextFunc(g.dialFunc(sendCtx)),
	}
	if g.settings.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(g.settings.Username),
			gomail.WithPassword(g.settings.Password),
		)
	}
	return gomail.NewClient(g.settings.Host, opts...)
}

// dialFunc binds each connection to sendCtx. A relay that accepts and then
// stays silent fails at the deadline, and the connection is closed once the
// send ends or is cancelled.
func (g *SMTPGateway) dialFunc(sendCtx context.Context) gomail.DialContextFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		conn, err := g.dialer.DialContext(ctx, network, address)
		if err != nil {
			return nil, err
		}
		if deadline, ok := sendCtx.Deadline(); ok {
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		context.AfterFunc(sendCtx, func() { _ = conn.Close() })
		return conn, nil
	}
}

// BuildMessage renders a plain-text message. Headers are encoded by go-mail,
// so accented subjects survive.
func BuildMessage(from, to, subject, body string, date time.Time) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	m.Subject(subject)
	m.SetDateWithValue(date)
	m.SetBodyString(gomail.TypeTextPlain, body)
	return m, nil
}

func isNotificationMockEnabled() bool {
	for _, key := range []string{"NOTIFICATION_GATEWAY_MOCK", "SMTP_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
