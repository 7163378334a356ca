package service

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"
)

const (
	auditQueueSize      = 256
	auditEnqueueTimeout = 2 * time.Second
)

// LedgerAuditService implements ports.AuditService.
// Every line is logged on the ledger component together with a running
// BLAKE2b-256 chain, then persisted in order by a single background worker.
// The chain only advances over lines that reach the persistence queue, so the
// stored audit_logs always verify from their first row.
type LedgerAuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger

	mu      sync.Mutex
	chain   []byte
	closed  bool
	timeout time.Duration

	queue chan *domain.AuditLog
	done  chan struct{}
	once  sync.Once
}

// NewAuditService creates a new audit service.
// If repo is nil, audit lines are only written to the logger.
func NewAuditService(ctx context.Context, repo ports.AuditRepository, log zerolog.Logger) *LedgerAuditService {
	return newAuditService(ctx, repo, log, auditQueueSize, auditEnqueueTimeout)
}

func newAuditService(ctx context.Context, repo ports.AuditRepository, log zerolog.Logger, queueSize int, timeout time.Duration) *LedgerAuditService {
	s := &LedgerAuditService{
		repo:    repo,
		log:     logger.Component(log, logger.ComponentLedger),
		timeout: timeout,
		queue:   make(chan *domain.AuditLog, queueSize),
		done:    make(chan struct{}),
	}

	if repo != nil {
		last, err := repo.LastChain(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("audit: failed to load last chain value, starting a new chain")
		} else if last != "" {
			if b, err := hex.DecodeString(last); err == nil {
				s.chain = b
			} else {
				s.log.Warn().Str("chain", last).Msg("audit: stored chain value is not hex, starting a new chain")
			}
		}
	}

	go s.persist()
	return s
}

// Record logs line and enqueues it for persistence. When the queue stays full
// for longer than the enqueue timeout, or the service is closed, the line is
// logged as unpersisted and the chain is left untouched.
func (s *LedgerAuditService) Record(ctx context.Context, action domain.AuditAction, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := nextChain(s.chain, line)
	entry := &domain.AuditLog{
		ID:        uuid.New(),
		Action:    action,
		Line:      line,
		Chain:     hex.EncodeToString(candidate),
		CreatedAt: time.Now().UTC(),
	}

	if s.repo != nil {
		if reason := s.enqueue(entry); reason != "" {
			s.log.Error().
				Str("action", string(action)).
				Str("request_id", logger.RequestID(ctx)).
				Str("reason", reason).
				Msg("audit: unpersisted line: " + line)
			return
		}
	}
	s.chain = candidate

	// The log write stays under the lock so it follows chain order.
	s.log.Info().
		Str("action", string(action)).
		Str("chain", entry.Chain).
		Str("request_id", logger.RequestID(ctx)).
		Msg(line)
}

// enqueue hands entry to the worker. It must be called with s.mu held and
// returns a non-empty reason when the entry was not queued.
func (s *LedgerAuditService) enqueue(entry *domain.AuditLog) string {
	if s.closed {
		return "closed"
	}
	select {
	case s.queue <- entry:
		return ""
	default:
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case s.queue <- entry:
		return ""
	case <-timer.C:
		return "queue full"
	}
}

// Close drains pending entries. Later Record calls are logged but not persisted.
func (s *LedgerAuditService) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.queue)
		<-s.done
	})
}

func (s *LedgerAuditService) persist() {
	defer close(s.done)
	for entry := range s.queue {
		if err := s.repo.Create(context.Background(), entry); err != nil {
			s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
		}
	}
}

// nextChain returns H(previous || line).
func nextChain(previous []byte, line string) []byte {
	h, _ := blake2b.New256(nil)
	h.Write(previous)
	h.Write([]byte(line))
	return h.Sum(nil)
}

// VerifyChain recomputes the chain over logs, starting from seed (hex, may be empty),
// and returns the index of the first entry whose chain does not match, or -1.
func VerifyChain(seed string, logs []domain.AuditLog) (int, error) {
	var prev []byte
	if seed != "" {
		b, err := hex.DecodeString(seed)
		if err != nil {
			return 0, err
		}
		prev = b
	}
	for i, l := range logs {
		prev = nextChain(prev, l.Line)
		if hex.EncodeToString(prev) != l.Chain {
			return i, nil
		}
	}
	return -1, nil
}
