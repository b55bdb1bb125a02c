package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"keygate.backend/internal/config"
	"keygate.backend/internal/domain/entities"
	domainrepo "keygate.backend/internal/domain/repositories"
	"keygate.backend/internal/infrastructure/repositories"
	"keygate.backend/pkg/ipfilter"
)

var openKeygenDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

type keygenDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (domainrepo.AccessKeyRepository, io.Closer, error)
	token   func() (string, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultKeygenDeps() keygenDeps {
	return keygenDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (domainrepo.AccessKeyRepository, io.Closer, error) {
			db, err := openKeygenDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewAccessKeyRepository(db), sqlDB, nil
		},
		token: generateToken,
		out:   os.Stdout,
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func runKeygen(args []string, deps keygenDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		def := defaultKeygenDeps()
		deps.prepare = def.prepare
	}
	if deps.token == nil {
		deps.token = generateToken
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	permissionsFlag := fs.String("permissions", "*", "comma separated capability list")
	whitelistFlag := fs.String("whitelist", "", "comma separated IP/CIDR whitelist (empty = no restriction)")
	rateLimitFlag := fs.Int("rate-limit", 0, "requests per minute ceiling (0 = none)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rateLimitFlag < 0 {
		return fmt.Errorf("invalid rate-limit: %d (must not be negative)", *rateLimitFlag)
	}

	whitelist := splitList(*whitelistFlag)
	for _, entry := range whitelist {
		if !ipfilter.Valid(entry) {
			return fmt.Errorf("invalid whitelist entry: %s", entry)
		}
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	repo, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	token, err := deps.token()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	key := &entities.AccessKey{
		Token:          token,
		Permissions:    splitList(*permissionsFlag),
		WhitelistRange: whitelist,
		RateLimit:      *rateLimitFlag,
	}
	if err := repo.Create(context.Background(), key); err != nil {
		return fmt.Errorf("failed creating access key: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created access key and stored in DB")
	_, _ = fmt.Fprintf(deps.out, "access_key_id=%s\n", key.ID.String())
	_, _ = fmt.Fprintf(deps.out, "permissions=%s\n", strings.Join(key.Permissions, ","))
	_, _ = fmt.Fprintf(deps.out, "ACCESS_TOKEN=%s\n", token)
	return nil
}

func main() {
	if err := runKeygen(os.Args[1:], defaultKeygenDeps()); err != nil {
		log.Fatal(err)
	}
}
