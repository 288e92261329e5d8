package notification

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/textproto"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"gestion_comercial/internal/usecase/interfaces"

	gomail "github.com/wneessen/go-mail"
)

// testRelay is a minimal SMTP server. With silent set it accepts connections
// and never greets.
type testRelay struct {
	ln     net.Listener
	silent bool

	mu    sync.Mutex
	conns []net.Conn
	from  string
	rcpt  []string
	data  string
}

func startRelay(t *testing.T, silent bool) *testRelay {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	r := &testRelay{ln: ln, silent: silent}
	go r.serve()
	t.Cleanup(func() {
		_ = ln.Close()
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, c := range r.conns {
			_ = c.Close()
		}
	})
	return r
}

func (r *testRelay) port() int {
	return r.ln.Addr().(*net.TCPAddr).Port
}

func (r *testRelay) serve() {
	for {
		conn, err := r.ln.Accept()
		if err != nil {
			return
		}
		r.mu.Lock()
		r.conns = append(r.conns, conn)
		r.mu.Unlock()
		if !r.silent {
			r.handle(conn)
		}
	}
}

func (r *testRelay) handle(conn net.Conn) {
	defer conn.Close()
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 relay.test ESMTP")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			_ = tp.PrintfLine("250 relay.test")
		case "MAIL":
			r.mu.Lock()
			r.from = line
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "RCPT":
			r.mu.Lock()
			r.rcpt = append(r.rcpt, line)
			r.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 end with <CRLF>.<CRLF>")
			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			r.mu.Lock()
			r.data = string(data)
			r.mu.Unlock()
			_ = tp.PrintfLine("250 queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("250 OK")
		}
	}
}

func relaySettings(port int, timeout time.Duration) SMTPSettings {
	return SMTPSettings{
		Host:      "127.0.0.1",
		Port:      port,
		From:      "ventas@example.com",
		Timeout:   timeout,
		TLSPolicy: gomail.TLSOpportunistic,
	}
}

func TestNewSMTPGateway(t *testing.T) {
	t.Run("mock mode needs no relay", func(t *testing.T) {
		g, err := NewSMTPGateway(SMTPSettings{MockMode: true})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if err := g.Send(context.Background(), interfaces.EmailMessage{To: "a@b.co"}); err != nil {
			t.Fatalf("mock send failed: %v", err)
		}
	})

	t.Run("missing host", func(t *testing.T) {
		if _, err := NewSMTPGateway(SMTPSettings{From: "ventas@example.com"}); !errors.Is(err, ErrMissingSMTPHost) {
			t.Fatalf("expected ErrMissingSMTPHost, got %v", err)
		}
	})

	t.Run("bad from", func(t *testing.T) {
		if _, err := NewSMTPGateway(SMTPSettings{Host: "smtp.example.com", From: "nope"}); !errors.Is(err, ErrMissingSMTPFrom) {
			t.Fatalf("expected ErrMissingSMTPFrom, got %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		g, err := NewSMTPGateway(SMTPSettings{Host: "smtp.example.com", From: "ventas@example.com"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if g.settings.Port != defaultSMTPPort || g.settings.Timeout != defaultSMTPTimeout {
			t.Fatalf("unexpected settings %+v", g.settings)
		}
	})

	t.Run("nil gateway", func(t *testing.T) {
		var g *SMTPGateway
		if err := g.Send(context.Background(), interfaces.EmailMessage{To: "a@b.co"}); !errors.Is(err, ErrSMTPGatewayNotConfigured) {
			t.Fatalf("expected ErrSMTPGatewayNotConfigured, got %v", err)
		}
	})
}

func TestSMTPGatewaySend(t *testing.T) {
	msg := interfaces.EmailMessage{To: "Compras <compras@tornillo.example>", Subject: "Cotización COT-000045", Body: "hola\nmundo"}

	t.Run("delivers to relay", func(t *testing.T) {
		relay := startRelay(t, false)
		g, err := NewSMTPGateway(relaySettings(relay.port(), 5*time.Second))
		if err != nil {
			t.Fatalf("gateway: %v", err)
		}

		if err := g.Send(context.Background(), msg); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}

		relay.mu.Lock()
		defer relay.mu.Unlock()
		if !strings.Contains(relay.from, "ventas@example.com") {
			t.Fatalf("unexpected envelope sender %q", relay.from)
		}
		if len(relay.rcpt) != 1 || !strings.Contains(relay.rcpt[0], "compras@tornillo.example") {
			t.Fatalf("unexpected recipients %v", relay.rcpt)
		}
		if !strings.Contains(relay.data, "hola") || !strings.Contains(relay.data, "mundo") {
			t.Fatalf("body missing from data: %q", relay.data)
		}
	})

	t.Run("silent relay releases everything", func(t *testing.T) {
		relay := startRelay(t, true)
		g, err := NewSMTPGateway(relaySettings(relay.port(), 150*time.Millisecond))
		if err != nil {
			t.Fatalf("gateway: %v", err)
		}

		before := runtime.NumGoroutine()
		for i := 0; i < 5; i++ {
			start := time.Now()
			if err := g.Send(context.Background(), msg); err == nil {
				t.Fatal("expected timeout error")
			}
			if elapsed := time.Since(start); elapsed > 2*time.Second {
				t.Fatalf("send took %s, timeout not honoured", elapsed)
			}
		}

		deadline := time.Now().Add(2 * time.Second)
		for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
			time.Sleep(20 * time.Millisecond)
		}
		if after := runtime.NumGoroutine(); after > before {
			t.Fatalf("goroutines still running after send: before=%d after=%d", before, after)
		}
	})

	t.Run("caller cancellation", func(t *testing.T) {
		relay := startRelay(t, true)
		g, err := NewSMTPGateway(relaySettings(relay.port(), 10*time.Second))
		if err != nil {
			t.Fatalf("gateway: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		start := time.Now()
		err = g.Send(ctx, msg)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Fatalf("send took %s, caller deadline not honoured", elapsed)
		}
	})

	t.Run("invalid recipient", func(t *testing.T) {
		g, err := NewSMTPGateway(relaySettings(1, time.Second))
		if err != nil {
			t.Fatalf("gateway: %v", err)
		}
		if err := g.Send(context.Background(), interfaces.EmailMessage{To: "not an address"}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestBuildMessage(t *testing.T) {
	date := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	m, err := BuildMessage("ventas@example.com", "compras@tornillo.example", "Cotización COT-000045", "línea 1\nlínea 2", date)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw := strings.ToLower(buf.String())
	for _, want := range []string{
		"subject: =?utf-8?q?",
		"date: tue, 10 mar 2026 15:00:00 +0000",
		"compras@tornillo.example",
		"ventas@example.com",
		"text/plain",
	} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q:\n%s", want, buf.String())
		}
	}

	if _, err := BuildMessage("ventas@example.com", "not an address", "s", "b", date); err == nil {
		t.Fatal("expected invalid recipient error")
	}
}

func TestSMTPSettingsFromEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", " smtp.example.com ")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_FROM", "ventas@example.com")
	t.Setenv("SMTP_TLS_POLICY", "mandatory")
	t.Setenv("NOTIFICATION_TIMEOUT_SECONDS", "5")
	t.Setenv("NOTIFICATION_GATEWAY_MOCK", "")
	t.Setenv("SMTP_MOCK", "true")

	s := SMTPSettingsFromEnv()
	if s.Host != "smtp.example.com" || s.Port != 465 || s.Timeout != 5*time.Second || !s.MockMode {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.TLSPolicy != gomail.TLSMandatory {
		t.Fatalf("unexpected TLS policy %v", s.TLSPolicy)
	}

	t.Setenv("NOTIFICATION_TIMEOUT_SECONDS", "")
	t.Setenv("SMTP_TLS_POLICY", "")
	s = SMTPSettingsFromEnv()
	if s.Timeout != defaultSMTPTimeout || s.TLSPolicy != gomail.TLSOpportunistic {
		t.Fatalf("unexpected defaults %+v", s)
	}
}
