package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"verity/internal/governance/ports"
	"verity/internal/governance/service/enforcement"
	authenticitystore "verity/internal/governance/store/authenticity"
	"verity/internal/governance/store/directory"
	enforcementstore "verity/internal/governance/store/enforcement"
	escalationstore "verity/internal/governance/store/escalation"
	reputationstore "verity/internal/governance/store/reputation"
	"verity/internal/governance/store/schema"
	"verity/internal/governance/store/trustscore"
	"verity/internal/platform/config"
	platformredis "verity/internal/platform/redis"
	"verity/pkg/platform/audit/publisher"
	"verity/pkg/platform/audit/publishers/kafka"
	auditmemory "verity/pkg/platform/audit/store/memory"
	txcontext "verity/pkg/platform/tx"
)

const (
	connectTimeout   = 10 * time.Second
	auditAsyncBuffer = 1024
)

// directoryReader is the complaint platform read model.
type directoryReader interface {
	ports.StatsReader
	ports.BrandDirectory
	ports.ResponseHistory
}

type stores struct {
	directory    directoryReader
	trustLog     ports.TrustScoreLog
	reputation   ports.ReputationStore
	enforcement  ports.EnforcementStore
	authenticity ports.AuthenticityStore
	escalation   ports.EscalationStore
}

// infra owns the process-wide connections. Close releases them in reverse order of
// acquisition.
type infra struct {
	db     *sql.DB
	redis  *platformredis.Client
	stores stores
	audit  ports.AuditPublisher
	lock   enforcement.Locker
	tx     enforcement.Transactor
	closer []func()
}

func openInfra(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *infra, err error) {
	i := &infra{}
	defer func() {
		if err != nil {
			i.Close()
		}
	}()

	if err := i.openStores(ctx, cfg.DatabaseURL); err != nil {
		return nil, err
	}
	if err := i.openLock(ctx, cfg, log); err != nil {
		return nil, err
	}
	if err := i.openAudit(ctx, cfg.Kafka, log); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *infra) openStores(ctx context.Context, databaseURL string) error {
	if databaseURL == "" {
		i.stores = stores{
			directory:    directory.NewInMemoryStore(),
			trustLog:     trustscore.NewInMemoryStore(),
			reputation:   reputationstore.NewInMemoryStore(),
			enforcement:  enforcementstore.NewInMemoryStore(),
			authenticity: authenticitystore.NewInMemoryStore(),
			escalation:   escalationstore.NewInMemoryStore(),
		}
		return nil
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	i.db = db
	i.closer = append(i.closer, func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	if err := schema.Apply(ctx, db); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	i.tx = txcontext.NewRunner(db)
	i.stores = stores{
		directory:    directory.NewPostgres(db),
		trustLog:     trustscore.NewPostgres(db),
		reputation:   reputationstore.NewPostgres(db),
		enforcement:  enforcementstore.NewPostgres(db),
		authenticity: authenticitystore.NewPostgres(db),
		escalation:   escalationstore.NewPostgres(db),
	}
	return nil
}

// openLock adds a Redis lock behind the in-process one so that replicas serialize
// enforcement per entity. Replicas on Postgres serialize through the transactor's
// advisory lock whether or not Redis is configured.
func (i *infra) openLock(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}
	i.redis = client
	i.closer = append(i.closer, func() { _ = client.Close() })

	redisLock, err := enforcement.NewRedisLocker(client.Client, cfg.Governance.LockTTL)
	if err != nil {
		return err
	}
	i.lock = enforcement.ChainLocker{enforcement.NewShardedLocker(), redisLock}
	log.Info("redis enforcement lock enabled", "ttl", cfg.Governance.LockTTL)
	return nil
}

// openAudit publishes to Kafka when brokers are configured, else to an in-memory
// store through the async publisher.
func (i *infra) openAudit(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) error {
	if !cfg.Enabled() {
		p := publisher.NewPublisher(auditmemory.NewInMemoryStore(),
			publisher.WithAsyncBuffer(auditAsyncBuffer),
			publisher.WithLogger(log),
		)
		i.audit = p
		i.closer = append(i.closer, p.Close)
		return nil
	}

	p, err := kafka.New(cfg.Brokers, cfg.Topic, kafka.WithLogger(log))
	if err != nil {
		return err
	}
	i.closer = append(i.closer, p.Close)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := p.EnsureTopic(ctx, cfg.Partitions, cfg.ReplicationFactor); err != nil {
		return fmt.Errorf("ensure audit topic: %w", err)
	}
	i.audit = p
	return nil
}

func (i *infra) storeKind() string {
	if i.db != nil {
		return "postgres"
	}
	return "memory"
}

// Health pings every configured backend.
func (i *infra) Health(ctx context.Context) error {
	var errs []error
	if i.db != nil {
		if err := i.db.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if i.redis != nil {
		if err := i.redis.Health(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (i *infra) Close() {
	for n := len(i.closer) - 1; n >= 0; n-- {
		i.closer[n]()
	}
	i.closer = nil
}
