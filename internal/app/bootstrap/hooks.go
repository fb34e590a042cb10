// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/ownthedoge/dogeday/internal/app"
	"github.com/ownthedoge/dogeday/internal/config"
	"github.com/ownthedoge/dogeday/internal/mail"
	"github.com/ownthedoge/dogeday/internal/router"
	"github.com/ownthedoge/dogeday/internal/web"
	"go.uber.org/zap"
)

// appKeys are the signup-specific config keys, loaded with the same
// precedence as core config (flags > env > config files > defaults).
// Env vars take the DOGEDAY_ prefix (e.g. DOGEDAY_SMTP_HOST).
var appKeys = []config.AppKey{
	{Name: "smtp_host", Default: "", Desc: "SMTP server hostname (empty disables dispatch)"},
	{Name: "smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "smtp_user", Default: "", Desc: "SMTP auth username"},
	{Name: "smtp_pass", Default: "", Desc: "SMTP auth password"},
	{Name: "smtp_ssl", Default: false, Desc: "Use implicit SSL instead of STARTTLS"},
	{Name: "smtp_timeout", Default: "30s", Desc: "SMTP operation timeout"},
	{Name: "mail_from", Default: "", Desc: "From address for signup notifications"},
	{Name: "mail_from_name", Default: "Doge Day Signups", Desc: "From display name"},
	{Name: "mail_to", Default: "", Desc: "Default recipient(s), comma-separated"},
	{Name: "mail_cc", Default: "", Desc: "CC list for sponsor-interest submissions, comma-separated"},
	{Name: "mail_vip_to", Default: "", Desc: "Recipient override for VIP-interest submissions"},
}

// LoadConfig loads core config and the signup app config.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	if err := config.RegisterAppFlags(appKeys); err != nil {
		return nil, AppConfig{}, err
	}

	coreCfg, err := config.Load(logger)
	if err != nil {
		return nil, AppConfig{}, err
	}

	vals := config.LoadApp(logger, appKeys)

	appCfg := AppConfig{
		Mail: mail.Config{
			Host:        vals.String("smtp_host"),
			Port:        vals.Int("smtp_port"),
			Username:    vals.String("smtp_user"),
			Password:    vals.String("smtp_pass"),
			UseSSL:      vals.Bool("smtp_ssl"),
			Timeout:     vals.Duration("smtp_timeout", 30*time.Second),
			FromAddress: vals.String("mail_from"),
			FromName:    vals.String("mail_from_name"),
		},
		Routing: mail.Routing{
			To:    vals.String("mail_to"),
			Cc:    vals.String("mail_cc"),
			VIPTo: vals.String("mail_vip_to"),
		},
	}

	return coreCfg, appCfg, nil
}

// BuildHandler constructs the HTTP handler for the service.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (http.Handler, error) {
	dispatcher := mail.NewDispatcher(appCfg.Mail, appCfg.Routing, logger)
	if !appCfg.Mail.Configured() {
		logger.Warn("mail transport not configured; signup notifications will be skipped")
	}

	r := router.New(coreCfg, logger)
	web.MountRoutes(r, coreCfg, dispatcher, logger)
	return r, nil
}

// Hooks wires the service into the app lifecycle.
var Hooks = app.Hooks[AppConfig]{
	Name:         "dogedayd",
	LoadConfig:   LoadConfig,
	BuildHandler: BuildHandler,
}
