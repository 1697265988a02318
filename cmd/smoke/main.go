// Command smoke runs one create, read and update round trip against the
// configured booking service in both representations.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/client"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/config"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/equivalence"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/fixture"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "booking-smoke", cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.New(cfg.BaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, log, client.WithRateLimit(cfg.RateLimit, 1))
	if err != nil {
		log.Fatal("failed to create client", zap.Error(err))
	}

	r := &runner{client: c, gen: fixture.NewGenerator(), creds: client.Credentials{Username: cfg.Username, Password: cfg.Password}, log: log}
	if err := r.run(ctx); err != nil {
		log.Error("smoke run failed", zap.String("base_url", cfg.BaseURL), zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("smoke run passed", zap.String("base_url", cfg.BaseURL))
}

type runner struct {
	client *client.BookerClient
	gen    *fixture.Generator
	creds  client.Credentials
	log    *zap.Logger
}

func (r *runner) run(ctx context.Context) error {
	token, err := r.client.Token(ctx, r.creds)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	for _, format := range []booking.Format{booking.Structured, booking.Markup} {
		if err := r.roundTrip(ctx, format, token); err != nil {
			return fmt.Errorf("%s round trip: %w", format, err)
		}
		r.log.Info("round trip passed", zap.Stringer("format", format))
	}
	return nil
}

// roundTrip creates a booking, reads it back in both representations and
// replaces it, checking every answer against the fixture it came from.
func (r *runner) roundTrip(ctx context.Context, format booking.Format, token string) error {
	created, err := r.gen.StructuredPayload()
	if err != nil {
		return err
	}
	body, err := fixture.Render(created, format)
	if err != nil {
		return err
	}

	res, err := r.client.CreateBooking(ctx, body, client.HeadersFor(format))
	if err != nil {
		return err
	}
	id, stored, err := equivalence.NormalizeCreatedResult(res)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if err := equivalence.AssertFieldEquivalence(created, stored); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	for _, readFormat := range []booking.Format{booking.Structured, booking.Markup} {
		res, err := r.client.GetBooking(ctx, id, client.HeadersFor(readFormat))
		if err != nil {
			return err
		}
		read, err := equivalence.NormalizeResult(res)
		if err != nil {
			return fmt.Errorf("get as %s: %w", readFormat, err)
		}
		if err := equivalence.AssertFieldEquivalence(created, read); err != nil {
			return fmt.Errorf("get as %s: %w", readFormat, err)
		}
	}

	replacement, err := r.gen.StructuredPayload()
	if err != nil {
		return err
	}
	body, err = fixture.Render(replacement, format)
	if err != nil {
		return err
	}
	res, err = r.client.UpdateBooking(ctx, id, body, client.HeadersFor(format).WithToken(token))
	if err != nil {
		return err
	}
	updated, err := equivalence.NormalizeResult(res)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := equivalence.AssertFieldEquivalence(replacement, updated); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	r.log.Debug("booking verified", zap.Int64("booking_id", int64(id)), zap.Stringer("format", format))
	return nil
}
