// Command reviewerctl provisions reviewer accounts. There is no
// self-service sign-up; accounts are created directly by an operator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spec-kit/accreditation-service/internal/config"
	"github.com/spec-kit/accreditation-service/internal/observability"
	"github.com/spec-kit/accreditation-service/internal/persistence"
	"github.com/spec-kit/accreditation-service/internal/repository"
	"github.com/spec-kit/accreditation-service/internal/service"
)

func main() {
	email := flag.String("email", "", "reviewer email")
	password := flag.String("password", "", "reviewer password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: reviewerctl -email <email> -password <password>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		ReviewerRepo: repository.NewReviewerRepository(pg.PoolHandle()),
	})

	reviewer, err := authService.RegisterReviewer(ctx, *email, *password)
	if err != nil {
		log.Fatalf("failed to create reviewer: %v", err)
	}
	fmt.Printf("created reviewer %s (%s)\n", reviewer.Email, reviewer.ID)
}
