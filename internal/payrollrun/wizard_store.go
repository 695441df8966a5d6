package payrollrun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	payrollrunerrors "go-payroll/internal/payrollrun/errors"

	"github.com/redis/go-redis/v9"
)

// Wizard sessions are short-lived drafts, so they live in redis rather
// than postgres. An abandoned wizard simply expires.
const wizardTTL = 24 * time.Hour

//go:generate mockgen -source=wizard_store.go -destination=mock/wizard_store_mock.go -package=mock
type WizardRepository interface {
	Save(ctx context.Context, w *Wizard) error
	Get(ctx context.Context, companyID, wizardID string) (*Wizard, error)
	Delete(ctx context.Context, companyID, wizardID string) error
}

type WizardStore struct {
	rdb *redis.Client
}

func NewWizardStore(rdb *redis.Client) WizardRepository {
	return &WizardStore{rdb: rdb}
}

func wizardKey(companyID, wizardID string) string {
	return fmt.Sprintf("payroll:wizard:%s:%s", companyID, wizardID)
}

func (s *WizardStore) Save(ctx context.Context, w *Wizard) error {
	payload, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, wizardKey(w.CompanyID, w.ID), payload, wizardTTL).Err()
}

func (s *WizardStore) Get(ctx context.Context, companyID, wizardID string) (*Wizard, error) {
	payload, err := s.rdb.Get(ctx, wizardKey(companyID, wizardID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, payrollrunerrors.ErrWizardNotFound
	}
	if err != nil {
		return nil, err
	}

	var w Wizard
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WizardStore) Delete(ctx context.Context, companyID, wizardID string) error {
	return s.rdb.Del(ctx, wizardKey(companyID, wizardID)).Err()
}
