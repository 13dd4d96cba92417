package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sortid"
)

func newServeCmd(flags *configFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generate/decode/info over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.logLevel)
			gen, err := flags.generator()
			if err != nil {
				logger.Error().Err(err).Msg("failed to build generator")
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(gen, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", addr).Msg("listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func newRouter(gen *sortid.Generator, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/generate", func(w http.ResponseWriter, req *http.Request) {
		count := 1
		if raw := req.URL.Query().Get("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 10000 {
				writeError(w, http.StatusBadRequest, "count must be an integer between 1 and 10000")
				return
			}
			count = n
		}

		ids := make([]string, 0, count)
		for range count {
			id, err := gen.GenerateContext(req.Context())
			if err != nil {
				writeError(w, statusFor(err), err.Error())
				return
			}
			ids = append(ids, id)
		}
		writeJSON(w, http.StatusOK, map[string]any{"ids": ids})
	})

	r.Get("/decode", func(w http.ResponseWriter, req *http.Request) {
		id := req.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing id parameter")
			return
		}
		d, err := gen.Decode(id)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":     id,
			"time":   d.Time.Format(time.RFC3339Nano),
			"chrono": d.Chrono,
			"suffix": d.Suffix,
		})
	})

	r.Get("/info", func(w http.ResponseWriter, _ *http.Request) {
		info := gen.Info()
		writeJSON(w, http.StatusOK, map[string]any{
			"alphabet":         info.Alphabet,
			"total_length":     info.TotalLength,
			"timestamp_length": info.TimestampLength,
			"chrono_length":    info.ChronoLength,
			"suffix_length":    info.SuffixLength,
			"granularity":      string(info.Granularity),
			"rate":             string(info.Rate),
			"start":            info.Start.Format(time.RFC3339),
			"end":              info.End.Format(time.RFC3339),
		})
	})

	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logger.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sortid.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, sortid.ErrRateExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, sortid.ErrTimestampExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
