package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const activationTokenBytes = 16

// AccountService implements ports.AccountService.
type AccountService struct {
	repos      Repositories
	transactor ports.DBTransactor
	notifier   ports.Notifier
	cfg        config.LedgerConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	repos Repositories,
	transactor ports.DBTransactor,
	notifier ports.Notifier,
	cfg config.LedgerConfig,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		repos:      repos,
		transactor: transactor,
		notifier:   notifier,
		cfg:        cfg,
		now:        utcNow,
		log:        log,
	}
}

// Register creates the user's wallet and registration. The TOS still has to be signed.
func (s *AccountService) Register(ctx context.Context, user domain.AuthenticatedUser) (*domain.UserPayment, error) {
	existing, err := s.repos.UserPayments.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, internalErr("get user payment", err)
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyExists("User payment")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet := &domain.Wallet{ID: uuid.New(), Type: domain.WalletTypeUser, Balance: 0}
	if err := s.repos.Wallets.Create(ctx, dbTx, wallet); err != nil {
		return nil, internalErr("create wallet", err)
	}

	up := &domain.UserPayment{
		UserID:               user.ID,
		DisplayName:          user.Name,
		WalletID:             wallet.ID,
		AcceptedTOSSignature: s.now(),
		AcceptedTOSVersion:   0,
	}
	if err := s.repos.UserPayments.Create(ctx, dbTx, up); err != nil {
		return nil, internalErr("create user payment", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().Str("user_id", user.ID).Str("wallet_id", wallet.ID.String()).Msg("user registered")
	return up, nil
}

func (s *AccountService) registration(ctx context.Context, userID string) (*domain.UserPayment, error) {
	up, err := s.repos.UserPayments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, internalErr("get user payment", err)
	}
	if up == nil {
		return nil, apperror.ErrNotFound("User payment")
	}
	return up, nil
}

// signedRegistration also requires the latest TOS.
func (s *AccountService) signedRegistration(ctx context.Context, userID string) (*domain.UserPayment, error) {
	up, err := s.registration(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !up.HasSignedTOS(s.cfg.LatestTOSVersion) {
		return nil, apperror.ErrInvalidState("User has not signed the latest TOS")
	}
	return up, nil
}

// GetTOS reports the accepted and latest TOS versions.
func (s *AccountService) GetTOS(ctx context.Context, user domain.AuthenticatedUser) (*ports.TOSInfo, error) {
	up, err := s.registration(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.TOSInfo{
		AcceptedTOSVersion: up.AcceptedTOSVersion,
		LatestTOSVersion:   s.cfg.LatestTOSVersion,
		MaxWalletBalance:   s.cfg.MaxWalletBalance,
	}, nil
}

// SignTOS accepts the terms of service. Only the latest version can be signed.
func (s *AccountService) SignTOS(ctx context.Context, user domain.AuthenticatedUser, version int) error {
	if version != s.cfg.LatestTOSVersion {
		return apperror.Validation(fmt.Sprintf("Only the latest TOS version %d can be accepted", s.cfg.LatestTOSVersion))
	}
	if _, err := s.registration(ctx, user.ID); err != nil {
		return err
	}
	if err := s.repos.UserPayments.SignTOS(ctx, nil, user.ID, version, s.now()); err != nil {
		return internalErr("sign tos", err)
	}
	s.log.Info().Str("user_id", user.ID).Int("version", version).Msg("tos signed")
	return nil
}

// GetWallet returns the user's wallet, read without locks.
func (s *AccountService) GetWallet(ctx context.Context, user domain.AuthenticatedUser) (*domain.Wallet, error) {
	up, err := s.registration(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	wallet, err := s.repos.Wallets.GetByID(ctx, nil, up.WalletID)
	if err != nil {
		return nil, internalErr("get wallet", err)
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	return wallet, nil
}

// CreateDevice registers an INACTIVE signing device. It is activated through its activation token.
func (s *AccountService) CreateDevice(ctx context.Context, user domain.AuthenticatedUser, name string, publicKey string) (*domain.WalletDevice, error) {
	up, err := s.signedRegistration(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	key, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return nil, apperror.Validation("Public key must be a base64 encoded Ed25519 key")
	}

	token, err := newActivationToken()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate activation token: %w", err))
	}

	device := &domain.WalletDevice{
		ID:              uuid.New(),
		Name:            name,
		WalletID:        up.WalletID,
		PublicKey:       key,
		Creation:        s.now(),
		Status:          domain.WalletDeviceStatusInactive,
		ActivationToken: token,
	}
	if err := s.repos.Devices.Create(ctx, nil, device); err != nil {
		return nil, internalErr("create wallet device", err)
	}

	// The activation link is delivered out of band.
	s.log.Info().
		Str("user_id", user.ID).
		Str("wallet_device_id", device.ID.String()).
		Str("public_key", publicKey).
		Msg("wallet device created")

	return device, nil
}

// ListDevices returns every device of the user's wallet.
func (s *AccountService) ListDevices(ctx context.Context, user domain.AuthenticatedUser) ([]domain.WalletDevice, error) {
	up, err := s.registration(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	devices, err := s.repos.Devices.ListByWallet(ctx, nil, up.WalletID)
	if err != nil {
		return nil, internalErr("list wallet devices", err)
	}
	return devices, nil
}

// GetDevice returns one device of the user's wallet.
func (s *AccountService) GetDevice(ctx context.Context, user domain.AuthenticatedUser, deviceID uuid.UUID) (*domain.WalletDevice, error) {
	up, err := s.registration(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.ownedDevice(ctx, up, deviceID)
}

func (s *AccountService) ownedDevice(ctx context.Context, up *domain.UserPayment, deviceID uuid.UUID) (*domain.WalletDevice, error) {
	device, err := s.repos.Devices.GetByID(ctx, nil, deviceID)
	if err != nil {
		return nil, internalErr("get wallet device", err)
	}
	if device == nil {
		return nil, apperror.ErrNotFound("Wallet device")
	}
	if device.WalletID != up.WalletID {
		return nil, apperror.ErrPermissionDenied("Wallet device does not belong to the user")
	}
	return device, nil
}

// ActivateDevice moves an INACTIVE device to ACTIVE. Active and revoked devices cannot be activated.
func (s *AccountService) ActivateDevice(ctx context.Context, token string) error {
	device, err := s.repos.Devices.GetByActivationToken(ctx, nil, token)
	if err != nil {
		return internalErr("get wallet device", err)
	}
	if device == nil {
		return apperror.ErrNotFound("Wallet device")
	}
	if !device.CanActivate() {
		return apperror.ErrInvalidState("Wallet device is already activated or revoked")
	}

	if err := s.repos.Devices.UpdateStatus(ctx, nil, device.ID, domain.WalletDeviceStatusActive); err != nil {
		return internalErr("activate wallet device", err)
	}

	up, err := s.repos.UserPayments.GetByWalletID(ctx, nil, device.WalletID)
	if err != nil {
		return internalErr("get user payment", err)
	}
	if up == nil {
		s.log.Error().Str("wallet_device_id", device.ID.String()).Msg("activated wallet device has no user")
		return apperror.ErrInvariantViolation("Activated wallet device has no user")
	}

	s.log.Info().Str("wallet_device_id", device.ID.String()).Str("user_id", up.UserID).Msg("wallet device activated")
	notify(ctx, s.notifier, s.log, up.UserID, ports.Message{
		Title:   "💳 Paiement - appareil activé",
		Content: fmt.Sprintf("Vous avez activé l'appareil %s", device.Name),
		Action:  notificationModule,
	})
	return nil
}

// RevokeDevice permanently disables one of the user's devices.
func (s *AccountService) RevokeDevice(ctx context.Context, user domain.AuthenticatedUser, deviceID uuid.UUID) error {
	up, err := s.signedRegistration(ctx, user.ID)
	if err != nil {
		return err
	}
	device, err := s.ownedDevice(ctx, up, deviceID)
	if err != nil {
		return err
	}

	if err := s.repos.Devices.UpdateStatus(ctx, nil, device.ID, domain.WalletDeviceStatusRevoked); err != nil {
		return internalErr("revoke wallet device", err)
	}

	s.log.Info().Str("wallet_device_id", device.ID.String()).Str("user_id", up.UserID).Msg("wallet device revoked")
	notify(ctx, s.notifier, s.log, up.UserID, ports.Message{
		Title:   "💳 Paiement - appareil revoqué",
		Content: fmt.Sprintf("Vous avez revoqué l'appareil %s", device.Name),
		Action:  notificationModule,
	})
	return nil
}

// newActivationToken returns a random URL-safe token.
func newActivationToken() (string, error) {
	b := make([]byte, activationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
