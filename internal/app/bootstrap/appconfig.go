// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"github.com/ownthedoge/dogeday/internal/mail"
)

// AppConfig holds the signup-specific configuration for dogedayd: the SMTP
// transport settings and the notification routing addresses.
type AppConfig struct {
	Mail    mail.Config
	Routing mail.Routing
}
