package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"traveladdicts/internal/domain"
	"traveladdicts/internal/pkg/validator"
	"traveladdicts/internal/repository"
)

// StoreKey names the one settings document.
const StoreKey = "travelAddicts_settings"

const EventUpdated = "settings.updated"

// maskedSecret stands in for credentials that leave the service. Saving it back keeps
// the stored value.
const maskedSecret = "********"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, int, error)
	Put(ctx context.Context, key string, version int, doc []byte) error
}

type Publisher interface {
	Publish(eventType string, payload any)
}

// Service owns the settings document. Writes replace the whole document and the last
// writer wins; UpdateSetting serialises its read-modify-write within this process.
type Service struct {
	repo   Repository
	events Publisher
	now    func() time.Time

	mu sync.Mutex
}

func NewService(repo Repository, events Publisher) *Service {
	return &Service{repo: repo, events: events, now: time.Now}
}

// Load returns the stored settings, migrated to the current schema, or the defaults
// when nothing has been saved yet.
func (s *Service) Load(ctx context.Context) (domain.Settings, error) {
	doc, _, err := s.repo.Get(ctx, StoreKey)
	if errors.Is(err, repository.ErrSettingsNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return Migrate(doc)
}

func (s *Service) Save(ctx context.Context, st domain.Settings) (domain.Settings, error) {
	if fields := validator.Validate(st); len(fields) > 0 {
		return domain.Settings{}, &ValidationError{Fields: fields}
	}

	if st.Email.SMTPPassword == maskedSecret || st.Payment.StripeSecretKey == maskedSecret {
		cur, err := s.Load(ctx)
		if err != nil {
			return domain.Settings{}, err
		}
		st = keepSecrets(st, cur)
	}

	st.Version = domain.SettingsSchemaVersion
	st.UpdatedAt = s.now().UTC()

	doc, err := json.Marshal(st)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := s.repo.Put(ctx, StoreKey, st.Version, doc); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	slog.Info("settings saved", "version", st.Version)
	if s.events != nil {
		s.events.Publish(EventUpdated, redacted(st))
	}
	return st, nil
}

// UpdateSetting changes one key of one section and writes the document immediately.
// value must have the JSON type of the field it replaces.
func (s *Service) UpdateSetting(ctx context.Context, section, key string, value any) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	doc, err := toMap(cur)
	if err != nil {
		return domain.Settings{}, err
	}
	sec, ok := doc[section].(map[string]any)
	if !ok {
		return domain.Settings{}, ErrUnknownSection
	}
	old, ok := sec[key]
	if !ok {
		return domain.Settings{}, ErrUnknownKey
	}

	// round-trip through JSON so Go ints and decoded float64s compare alike
	var normalized any
	data, err := json.Marshal(value)
	if err != nil {
		return domain.Settings{}, ErrInvalidValue
	}
	if err := json.Unmarshal(data, &normalized); err != nil {
		return domain.Settings{}, ErrInvalidValue
	}
	if !sameKind(old, normalized) {
		return domain.Settings{}, ErrInvalidValue
	}
	sec[key] = normalized

	var next domain.Settings
	if err := fromMap(doc, &next); err != nil {
		return domain.Settings{}, ErrInvalidValue
	}
	return s.Save(ctx, next)
}

func (s *Service) Reset(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Save(ctx, domain.DefaultSettings())
}

// Public is the part of the settings the public site may read.
type Public struct {
	SiteName          string `json:"siteName"`
	SiteDescription   string `json:"siteDescription"`
	ContactEmail      string `json:"contactEmail"`
	ContactPhone      string `json:"contactPhone"`
	Address           string `json:"address"`
	Currency          string `json:"currency"`
	Language          string `json:"language"`
	DepositPercentage int    `json:"depositPercentage"`
}

func (s *Service) Public(ctx context.Context) (Public, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return Public{}, err
	}
	g := st.General
	return Public{
		SiteName:          g.SiteName,
		SiteDescription:   g.SiteDescription,
		ContactEmail:      g.ContactEmail,
		ContactPhone:      g.ContactPhone,
		Address:           g.Address,
		Currency:          g.Currency,
		Language:          g.Language,
		DepositPercentage: st.Payment.DepositPercentage,
	}, nil
}

// redacted hides credentials before settings leave the admin API.
func redacted(st domain.Settings) domain.Settings {
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return maskedSecret
	}
	st.Email.SMTPPassword = mask(st.Email.SMTPPassword)
	st.Payment.StripeSecretKey = mask(st.Payment.StripeSecretKey)
	return st
}

// keepSecrets restores the credentials of cur wherever st carries the mask.
func keepSecrets(st, cur domain.Settings) domain.Settings {
	if st.Email.SMTPPassword == maskedSecret {
		st.Email.SMTPPassword = cur.Email.SMTPPassword
	}
	if st.Payment.StripeSecretKey == maskedSecret {
		st.Payment.StripeSecretKey = cur.Payment.StripeSecretKey
	}
	return st
}
