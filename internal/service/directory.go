package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/model"
	"github.com/and161185/admin-console/internal/storage"
)

// Directory holds every known account (the built-in administrator excepted) and
// its approval lifecycle. It is the sole writer of the accounts record: every
// mutation persists before the in-memory slice becomes the source of truth.
type Directory struct {
	store    storage.Store
	log      *zap.Logger
	accounts []model.Account
}

// NewDirectory constructs the account directory; call Load before first use.
func NewDirectory(store storage.Store, log *zap.Logger) *Directory {
	return &Directory{store: store, log: log}
}

// Load reads the accounts record. An absent record means an empty directory.
func (d *Directory) Load() error {
	raw, err := d.store.Get(storage.KeyAccounts)
	if errors.Is(err, errs.ErrNotFound) {
		d.accounts = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	var accounts []model.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return fmt.Errorf("decode accounts: %v: %w", err, errs.ErrStorageUnavailable)
	}
	d.accounts = accounts
	return nil
}

func (d *Directory) persist(accounts []model.Account) error {
	b, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %v: %w", err, errs.ErrStorageUnavailable)
	}
	if err := d.store.Set(storage.KeyAccounts, string(b)); err != nil {
		return fmt.Errorf("persist accounts: %w", err)
	}
	return nil
}

// nextID derives a creation-timestamp id, bumped past the newest existing id
// when two creations land on the same millisecond.
func (d *Directory) nextID() int64 {
	id := time.Now().UnixMilli()
	for _, a := range d.accounts {
		if a.ID >= id {
			id = a.ID + 1
		}
	}
	return id
}

// Create appends a new account with the given status after enforcing email
// uniqueness across the whole directory, any status.
func (d *Directory) Create(name, email, password string, status model.AccountStatus) (model.Account, error) {
	if d.EmailTaken(email) {
		return model.Account{}, errs.ErrEmailExists
	}
	acct := model.Account{
		ID:        d.nextID(),
		Name:      name,
		Email:     email,
		Password:  password,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	next := append(append([]model.Account(nil), d.accounts...), acct)
	if err := d.persist(next); err != nil {
		return model.Account{}, err
	}
	d.accounts = next
	d.log.Info("account created",
		zap.Int64("id", acct.ID),
		zap.String("email", acct.Email),
		zap.String("status", string(acct.Status)),
	)
	return acct, nil
}

// Approve moves a pending account to approved. Approving an account that is
// already approved succeeds without a write. Unknown ids are an error.
func (d *Directory) Approve(id int64) error {
	idx := d.index(id)
	if idx < 0 {
		return fmt.Errorf("approve account %d: %w", id, errs.ErrNotFound)
	}
	if d.accounts[idx].Status == model.StatusApproved {
		return nil
	}
	next := append([]model.Account(nil), d.accounts...)
	next[idx].Status = model.StatusApproved
	if err := d.persist(next); err != nil {
		return err
	}
	d.accounts = next
	d.log.Info("account approved", zap.Int64("id", id))
	return nil
}

// Reject removes the account entirely. It serves both rejecting a pending
// request and removing an approved user.
func (d *Directory) Reject(id int64) error {
	idx := d.index(id)
	if idx < 0 {
		return fmt.Errorf("reject account %d: %w", id, errs.ErrNotFound)
	}
	next := append([]model.Account(nil), d.accounts[:idx]...)
	next = append(next, d.accounts[idx+1:]...)
	if err := d.persist(next); err != nil {
		return err
	}
	d.accounts = next
	d.log.Info("account removed", zap.Int64("id", id))
	return nil
}

func (d *Directory) index(id int64) int {
	for i := range d.accounts {
		if d.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// EmailTaken reports whether any account, regardless of status, uses email.
func (d *Directory) EmailTaken(email string) bool {
	for _, a := range d.accounts {
		if a.Email == email {
			return true
		}
	}
	return false
}

// FindByCredentials returns the account exactly matching email and password.
func (d *Directory) FindByCredentials(email, password string) (model.Account, bool) {
	for _, a := range d.accounts {
		if a.Email == email && a.Password == password {
			return a, true
		}
	}
	return model.Account{}, false
}

// Accounts returns a copy of the full directory in creation order.
func (d *Directory) Accounts() []model.Account {
	return append([]model.Account(nil), d.accounts...)
}

// Pending returns the accounts still awaiting approval.
func (d *Directory) Pending() []model.Account {
	return d.filter(model.StatusPending)
}

// Approved returns the accounts that can log in.
func (d *Directory) Approved() []model.Account {
	return d.filter(model.StatusApproved)
}

func (d *Directory) filter(status model.AccountStatus) []model.Account {
	out := []model.Account{}
	for _, a := range d.accounts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}
