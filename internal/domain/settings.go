package domain

import "time"

const SettingsSchemaVersion = 2

type GeneralSettings struct {
	SiteName        string `json:"siteName" validate:"required,max=120"`
	SiteDescription string `json:"siteDescription" validate:"max=500"`
	ContactEmail    string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone    string `json:"contactPhone"`
	Address         string `json:"address"`
	Timezone        string `json:"timezone"`
	Currency        string `json:"currency" validate:"omitempty,len=3"`
	Language        string `json:"language"`
}

type EmailSettings struct {
	SMTPHost     string `json:"smtpHost"`
	SMTPPort     int    `json:"smtpPort" validate:"gte=0,lte=65535"`
	SMTPUser     string `json:"smtpUser"`
	SMTPPassword string `json:"smtpPassword"`
	FromEmail    string `json:"fromEmail" validate:"omitempty,email"`
	FromName     string `json:"fromName"`
	UseTLS       bool   `json:"useTls"`
}

type PaymentSettings struct {
	StripePublicKey   string `json:"stripePublicKey"`
	StripeSecretKey   string `json:"stripeSecretKey"`
	PaypalClientID    string `json:"paypalClientId"`
	DepositPercentage int    `json:"depositPercentage" validate:"gte=0,lte=100"`
	AcceptCards       bool   `json:"acceptCards"`
	AcceptPaypal      bool   `json:"acceptPaypal"`
	AcceptBankWire    bool   `json:"acceptBankTransfer"`
}

type NotificationSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	SMSNotifications   bool `json:"smsNotifications"`
	BookingAlerts      bool `json:"bookingAlerts"`
	PaymentAlerts      bool `json:"paymentAlerts"`
	ReviewAlerts       bool `json:"reviewAlerts"`
	WeeklyReport       bool `json:"weeklyReport"`
}

type SecuritySettings struct {
	TwoFactorAuth     bool `json:"twoFactorAuth"`
	SessionTimeout    int  `json:"sessionTimeout" validate:"gte=5,lte=1440"`
	PasswordMinLength int  `json:"passwordMinLength" validate:"gte=6,lte=128"`
	MaxLoginAttempts  int  `json:"maxLoginAttempts" validate:"gte=1,lte=100"`
}

// Settings is the admin-wide options document.
type Settings struct {
	Version       int                  `json:"version"`
	General       GeneralSettings      `json:"general"`
	Email         EmailSettings        `json:"email"`
	Payment       PaymentSettings      `json:"payment"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func DefaultSettings() Settings {
	return Settings{
		Version: SettingsSchemaVersion,
		General: GeneralSettings{
			SiteName:        "Travel Addicts",
			SiteDescription: "Discover amazing destinations and create unforgettable memories",
			ContactEmail:    "info@traveladdicts.com",
			ContactPhone:    "+1 (555) 123-4567",
			Address:         "123 Travel Street, Adventure City, AC 12345",
			Timezone:        "UTC",
			Currency:        "USD",
			Language:        "en",
		},
		Email: EmailSettings{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 587,
			FromName: "Travel Addicts",
			UseTLS:   true,
		},
		Payment: PaymentSettings{
			DepositPercentage: 30,
			AcceptCards:       true,
			AcceptPaypal:      true,
			AcceptBankWire:    false,
		},
		Notifications: NotificationSettings{
			EmailNotifications: true,
			BookingAlerts:      true,
			PaymentAlerts:      true,
			ReviewAlerts:       true,
		},
		Security: SecuritySettings{
			SessionTimeout:    30,
			PasswordMinLength: 8,
			MaxLoginAttempts:  5,
		},
	}
}
