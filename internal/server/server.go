// internal/server/server.go
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ownthedoge/dogeday/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/acme/autocert"
)

// WithShutdownSignals returns a context that is canceled when the process
// receives SIGINT or SIGTERM. It should be used as the parent context for the
// HTTP server. The returned cancel function also cleans up the signal handler.
func WithShutdownSignals(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			if logger != nil {
				logger.Info("shutdown signal received", zap.Any("signal", sig))
			}
			cancel()
		case <-ctx.Done():
			// Context was cancelled externally (e.g., programmatic shutdown)
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// ListenAndServeWithContext starts an HTTP or HTTPS server (with optional
// Let's Encrypt via the http-01 challenge) and blocks until the context is
// canceled or the server encounters a terminal error.
//
// It does NOT wire any routes itself; callers must provide a fully
// configured http.Handler (e.g., chi.Router).
func ListenAndServeWithContext(
	ctx context.Context,
	cfg *config.CoreConfig,
	handler http.Handler,
	logger *zap.Logger,
) error {
	if cfg == nil {
		return fmt.Errorf("ListenAndServeWithContext: cfg is nil")
	}
	if handler == nil {
		return fmt.Errorf("ListenAndServeWithContext: handler is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	// Route stdlib error logs into zap at Warn level.
	if stdlog, err := zap.NewStdLogAt(logger, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = stdlog
	} else {
		logger.Warn("failed to attach stdlib error logger", zap.Error(err))
	}

	httpAddr := ":" + strconv.Itoa(cfg.HTTP.HTTPPort)
	httpsAddr := ":" + strconv.Itoa(cfg.HTTP.HTTPSPort)

	var (
		auxSrv   *http.Server // :80 ACME/redirect server (HTTPS modes)
		ln       net.Listener // primary listener we Serve() on
		baseLn   net.Listener // underlying TCP listener (for TLS cleanup)
		serveErr = make(chan error, 1)
		auxErr   chan error // nil channels block forever in select
		err      error
	)

	cleanupListener := func() {
		if baseLn != nil {
			_ = baseLn.Close()
		}
	}

	newAuxServer := func(h http.Handler) *http.Server {
		aux := &http.Server{
			Addr:              ":80",
			Handler:           h,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		}
		if stdlog, err := zap.NewStdLogAt(logger, zapcore.WarnLevel); err == nil {
			aux.ErrorLog = stdlog
		}
		return aux
	}

	switch {
	// ----------------------------- HTTP only -------------------------------
	case !cfg.HTTP.UseHTTPS:
		baseLn, err = net.Listen("tcp", httpAddr)
		if err != nil {
			return fmt.Errorf("listen http %s: %w", httpAddr, err)
		}
		ln = baseLn
		logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
		go servePrimary(srv, ln, serveErr)

	// ----------------------- HTTPS via Let's Encrypt -----------------------
	case cfg.TLS.UseLetsEncrypt:
		m := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.TLS.Domain),
			Cache:      autocert.DirCache(cfg.TLS.LetsEncryptCacheDir),
			Email:      cfg.TLS.LetsEncryptEmail,
		}

		// Port 80: ACME challenge + HTTPS redirect for everything else.
		auxSrv = newAuxServer(m.HTTPHandler(httpRedirectHandler()))
		auxErr = make(chan error, 1)
		go serveAuxiliary(auxSrv, auxErr)
		logger.Info("ACME + redirect server listening", zap.String("addr", auxSrv.Addr))

		// Pre-warm before binding :443
		if err := waitForCert(ctx, m, cfg.TLS.Domain, 60*time.Second); err != nil {
			logger.Warn("autocert pre-warm failed; first HTTPS hits may see TLS errors", zap.Error(err))
		}

		tlsCfg := &tls.Config{
			MinVersion:     tls.VersionTLS12,
			GetCertificate: m.GetCertificate,
		}
		srv.TLSConfig = tlsCfg

		baseLn, err = net.Listen("tcp", httpsAddr)
		if err != nil {
			_ = shutdownAux(auxSrv, context.Background())
			return fmt.Errorf("listen https %s: %w", httpsAddr, err)
		}
		ln = tls.NewListener(baseLn, tlsCfg)
		logger.Info("HTTPS server (Let's Encrypt http-01) listening",
			zap.String("addr", httpsAddr),
			zap.String("domain", cfg.TLS.Domain))
		go servePrimary(srv, ln, serveErr)

	// ----------------------- HTTPS via manual certs ------------------------
	default:
		if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
			return fmt.Errorf("manual TLS selected but cert_file / key_file not provided")
		}
		if err := validateTLSFiles(cfg.TLS.CertFile, cfg.TLS.KeyFile); err != nil {
			return err
		}

		// Port 80: redirect everything to HTTPS.
		auxSrv = newAuxServer(httpRedirectHandler())
		auxErr = make(chan error, 1)
		go serveAuxiliary(auxSrv, auxErr)
		logger.Info("HTTP → HTTPS redirect server listening", zap.String("addr", auxSrv.Addr))

		cert, loadErr := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if loadErr != nil {
			_ = shutdownAux(auxSrv, context.Background())
			return fmt.Errorf("load TLS cert/key: %w", loadErr)
		}
		tlsCfg := &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		srv.TLSConfig = tlsCfg

		baseLn, err = net.Listen("tcp", httpsAddr)
		if err != nil {
			_ = shutdownAux(auxSrv, context.Background())
			return fmt.Errorf("listen https %s: %w", httpsAddr, err)
		}
		ln = tls.NewListener(baseLn, tlsCfg)
		logger.Info("HTTPS server (manual TLS) listening",
			zap.String("addr", httpsAddr),
			zap.String("cert_file", cfg.TLS.CertFile))
		go servePrimary(srv, ln, serveErr)
	}

	// ---------- wait for shutdown / errors ----------
	// auxErr is nil in HTTP-only mode; receiving from a nil channel blocks
	// forever, which disables that select case.
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down server…")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			_ = shutdownAux(auxSrv, shutdownCtx)
			if err := srv.Shutdown(shutdownCtx); err != nil {
				cleanupListener()
				return fmt.Errorf("server shutdown: %w", err)
			}
			cleanupListener()
			logger.Info("server stopped gracefully")
			return nil

		case err := <-serveErr:
			if err != nil && err != http.ErrServerClosed {
				_ = shutdownAux(auxSrv, context.Background())
				cleanupListener()
				return fmt.Errorf("primary server error: %w", err)
			}
			_ = shutdownAux(auxSrv, context.Background())
			cleanupListener()
			return nil

		case err := <-auxErr:
			if err != nil && err != http.ErrServerClosed {
				if closeErr := srv.Close(); closeErr != nil {
					logger.Error("failed to close primary server after auxiliary crash", zap.Error(closeErr))
				}
				cleanupListener()
				return fmt.Errorf("auxiliary server error: %w", err)
			}
			// serveAuxiliary sends at most once; disable this case.
			auxSrv = nil
			auxErr = nil
		}
	}
}

// servePrimary runs srv.Serve on the provided listener and reports terminal errors.
func servePrimary(srv *http.Server, ln net.Listener, ch chan<- error) {
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		ch <- err
		return
	}
	ch <- nil
}

// serveAuxiliary runs auxSrv.ListenAndServe and reports terminal errors.
func serveAuxiliary(auxSrv *http.Server, ch chan<- error) {
	if err := auxSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ch <- err
		return
	}
	ch <- nil
}

// shutdownAux gracefully shuts down the auxiliary server (if any).
func shutdownAux(auxSrv *http.Server, ctx context.Context) error {
	if auxSrv == nil {
		return nil
	}
	return auxSrv.Shutdown(ctx)
}

// httpRedirectHandler redirects any HTTP request to HTTPS preserving host + path.
// It validates the Host header and request URI to prevent header injection.
func httpRedirectHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if !isValidHost(host) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		reqURI := r.URL.RequestURI()
		if !isValidRequestURI(reqURI) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		target := "https://" + host + reqURI
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}

// isValidRequestURI rejects URIs containing control characters that could
// enable header injection.
func isValidRequestURI(uri string) bool {
	for _, c := range uri {
		if c < 0x20 && c != '\t' {
			return false
		}
		if c == 0x7f { // DEL
			return false
		}
	}
	return true
}

// isValidHost rejects Host headers containing characters that could enable
// header injection or open redirects.
func isValidHost(host string) bool {
	if host == "" {
		return false
	}

	hostPart, portStr, err := net.SplitHostPort(host)
	if err != nil {
		// No port present, or malformed - treat entire string as hostname.
		hostPart = host
	} else if portStr != "" {
		port, parseErr := strconv.Atoi(portStr)
		if parseErr != nil || port <= 0 || port > 65535 {
			return false
		}
	}

	if hostPart == "" {
		return false
	}

	// Strip brackets from IPv6 addresses for validation.
	if strings.HasPrefix(hostPart, "[") && strings.HasSuffix(hostPart, "]") {
		if len(hostPart) < 3 {
			return false
		}
		ipv6Part := hostPart[1 : len(hostPart)-1]
		if zoneIdx := strings.Index(ipv6Part, "%"); zoneIdx != -1 {
			ipv6Part = ipv6Part[:zoneIdx]
		}
		if net.ParseIP(ipv6Part) == nil {
			return false
		}
		return true
	}

	for _, c := range hostPart {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '.' || c == ':':
		default:
			return false
		}
	}
	return true
}

// validateTLSFiles checks cert/key files exist and are regular files before
// the listener starts, so misconfiguration fails fast with a clear error.
func validateTLSFiles(certFile, keyFile string) error {
	certInfo, err := os.Stat(certFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", certFile)
		}
		return fmt.Errorf("cannot access TLS certificate file %s: %w", certFile, err)
	}
	if certInfo.IsDir() {
		return fmt.Errorf("TLS certificate path is a directory, not a file: %s", certFile)
	}

	keyInfo, err := os.Stat(keyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("TLS key file does not exist: %s", keyFile)
		}
		return fmt.Errorf("cannot access TLS key file %s: %w", keyFile, err)
	}
	if keyInfo.IsDir() {
		return fmt.Errorf("TLS key path is a directory, not a file: %s", keyFile)
	}

	return nil
}

// waitForCert pre-warms the autocert cache so the first HTTPS connection
// doesn't pay the ACME round-trip.
func waitForCert(ctx context.Context, m *autocert.Manager, host string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	var lastErr error
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, err := m.GetCertificate(&tls.ClientHelloInfo{ServerName: host})
		if err == nil {
			return nil // cert is ready and cached
		}
		lastErr = err

		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for cert for %q: %w", host, lastErr)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}
}
