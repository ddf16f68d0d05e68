package config

// SMTPConfig holds outgoing mail settings.  When Host or Username is empty
// the mailer logs messages instead of sending them.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromName   string
	OwnerEmail string // receives contact form messages
	Business   string // name printed on ID cards and emails
}

// LoadSMTPConfig reads SMTP_* variables.
func LoadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:       envStr("SMTP_HOST", ""),
		Port:       envInt("SMTP_PORT", 587),
		Username:   envStr("SMTP_USERNAME", ""),
		Password:   envStr("SMTP_PASSWORD", ""),
		FromName:   envStr("SMTP_FROM_NAME", "Study Room"),
		OwnerEmail: envStr("OWNER_EMAIL", ""),
		Business:   envStr("BUSINESS_NAME", "Study Room"),
	}
}

// Configured reports whether real delivery is possible.
func (c SMTPConfig) Configured() bool { return c.Host != "" && c.Username != "" }

// PaymentConfig holds the hosted checkout credentials.
type PaymentConfig struct {
	BaseURL    string
	AppID      string
	SecretKey  string
	APIVersion string
	ReturnURL  string
	Currency   string
}

// LoadPaymentConfig reads PAYMENT_* variables.  Defaults point at the
// gateway sandbox.
func LoadPaymentConfig() PaymentConfig {
	return PaymentConfig{
		BaseURL:    envStr("PAYMENT_BASE_URL", "https://sandbox.cashfree.com/pg"),
		AppID:      envStr("PAYMENT_APP_ID", ""),
		SecretKey:  envStr("PAYMENT_SECRET_KEY", ""),
		APIVersion: envStr("PAYMENT_API_VERSION", "2023-08-01"),
		ReturnURL:  envStr("PAYMENT_RETURN_URL", ""),
		Currency:   envStr("PAYMENT_CURRENCY", "INR"),
	}
}
