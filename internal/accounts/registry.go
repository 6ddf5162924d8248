// Package accounts manages the account and data-user registry. An account is
// identified by email; its data users partition the account's transaction
// history. The registry is one JSON config blob on the storage collaborator,
// shared by every session of the household.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/storage"
	"pvillar/hogarfin/internal/tenant"
)

// registryConfigName is the config blob the registry persists to.
const registryConfigName = "accounts"

// DefaultEmoji marks data users created without an explicit emoji.
const DefaultEmoji = "👤"

// DataUser is one household member within an account. ID is the slug the
// member's storage keys are built from; renaming changes the display name
// only, never the ID, so history stays attached.
type DataUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
	Created string `json:"created"`
}

// Account groups the data users sharing one login email.
type Account struct {
	Email     string     `json:"email"`
	Key       string     `json:"hash"`
	DataUsers []DataUser `json:"data_users"`
	Created   string     `json:"created"`
}

type registryFile struct {
	Accounts []Account `json:"accounts"`
}

// Registry reads and writes the account registry.
type Registry struct {
	backend storage.Backend
	logger  logging.Logger
	now     func() time.Time
}

// NewRegistry creates a registry on the given backend.
func NewRegistry(backend storage.Backend, logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &Registry{backend: backend, logger: logger, now: time.Now}
}

// GetOrCreate returns the account for an email, creating and persisting it on
// first sight.
func (r *Registry) GetOrCreate(ctx context.Context, email string) (Account, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return Account{}, err
	}

	if idx := findAccount(accounts, email); idx >= 0 {
		return accounts[idx], nil
	}

	account := Account{
		Email:   strings.TrimSpace(email),
		Key:     tenant.AccountKey(email),
		Created: r.now().UTC().Format(time.RFC3339),
	}
	accounts = append(accounts, account)
	if err := r.save(ctx, accounts); err != nil {
		return Account{}, err
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldAccount, Value: account.Key},
	).Info("Created account")
	return account, nil
}

// AddDataUser adds a household member to an account. A name slugging to an
// identifier already present is a tenant.ConflictError; nothing is written in
// that case.
func (r *Registry) AddDataUser(ctx context.Context, email, name, emoji string) (DataUser, error) {
	id := tenant.DataUserID(name)
	if id == "" {
		return DataUser{}, fmt.Errorf("data user name %q produces an empty identifier", name)
	}
	if emoji == "" {
		emoji = DefaultEmoji
	}

	accounts, err := r.load(ctx)
	if err != nil {
		return DataUser{}, err
	}

	idx := findAccount(accounts, email)
	if idx < 0 {
		accounts = append(accounts, Account{
			Email:   strings.TrimSpace(email),
			Key:     tenant.AccountKey(email),
			Created: r.now().UTC().Format(time.RFC3339),
		})
		idx = len(accounts) - 1
	}

	for _, du := range accounts[idx].DataUsers {
		if du.ID == id {
			return DataUser{}, &tenant.ConflictError{Name: name, Existing: du.Name, ID: id}
		}
	}

	user := DataUser{
		ID:      id,
		Name:    strings.TrimSpace(name),
		Emoji:   emoji,
		Created: r.now().UTC().Format(time.RFC3339),
	}
	accounts[idx].DataUsers = append(accounts[idx].DataUsers, user)
	if err := r.save(ctx, accounts); err != nil {
		return DataUser{}, err
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldAccount, Value: accounts[idx].Key},
		logging.Field{Key: logging.FieldDataUser, Value: id},
	).Info("Added data user")
	return user, nil
}

// RenameDataUser changes a member's display name and/or emoji. The ID is
// untouched, so the member's stored history stays reachable.
func (r *Registry) RenameDataUser(ctx context.Context, email, id, newName, newEmoji string) error {
	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := findAccount(accounts, email)
	if idx < 0 {
		return fmt.Errorf("no account for %s", email)
	}

	for i := range accounts[idx].DataUsers {
		if accounts[idx].DataUsers[i].ID != id {
			continue
		}
		if newName != "" {
			accounts[idx].DataUsers[i].Name = strings.TrimSpace(newName)
		}
		if newEmoji != "" {
			accounts[idx].DataUsers[i].Emoji = newEmoji
		}
		return r.save(ctx, accounts)
	}
	return fmt.Errorf("no data user %q in account %s", id, email)
}

// RemoveDataUser removes a member from the registry. The member's transaction
// data is left in storage untouched.
func (r *Registry) RemoveDataUser(ctx context.Context, email, id string) error {
	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := findAccount(accounts, email)
	if idx < 0 {
		return fmt.Errorf("no account for %s", email)
	}

	users := accounts[idx].DataUsers
	for i := range users {
		if users[i].ID == id {
			accounts[idx].DataUsers = append(users[:i:i], users[i+1:]...)
			return r.save(ctx, accounts)
		}
	}
	return fmt.Errorf("no data user %q in account %s", id, email)
}

// ListDataUsers returns an account's members in registration order. An
// unknown email yields an empty list, not an error.
func (r *Registry) ListDataUsers(ctx context.Context, email string) ([]DataUser, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if idx := findAccount(accounts, email); idx >= 0 {
		return accounts[idx].DataUsers, nil
	}
	return nil, nil
}

func (r *Registry) load(ctx context.Context) ([]Account, error) {
	data, err := r.backend.ReadConfig(ctx, registryConfigName)
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("account registry is corrupt: %w", err)
	}
	return file.Accounts, nil
}

func (r *Registry) save(ctx context.Context, accounts []Account) error {
	data, err := json.MarshalIndent(registryFile{Accounts: accounts}, "", "  ")
	if err != nil {
		return err
	}
	return r.backend.WriteConfig(ctx, registryConfigName, data)
}

func findAccount(accounts []Account, email string) int {
	target := strings.ToLower(strings.TrimSpace(email))
	for i := range accounts {
		if strings.ToLower(accounts[i].Email) == target {
			return i
		}
	}
	return -1
}
