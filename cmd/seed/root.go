package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"blog-api/internal/config"
	"blog-api/internal/domains/post/repository"
	"blog-api/pkg/container"
)

// storeOpener returns a ready repository and a func that releases it
type storeOpener func(ctx context.Context, cfg *config.Config) (repository.RepositoryInterface, func(), error)

func openStore(ctx context.Context, cfg *config.Config) (repository.RepositoryInterface, func(), error) {
	c, err := container.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return c.PostRepo, c.Cleanup, nil
}

func newRootCmd(cfg *config.Config, open storeOpener) *cobra.Command {
	var (
		driver  string
		useTest bool
	)

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Seed, inspect and clear the blog post store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if driver != "" {
				cfg.Storage.Driver = driver
			}
			if useTest {
				applyTestDatabase(cfg)
			}
			return cfg.Validate()
		},
	}

	cmd.PersistentFlags().StringVar(&driver, "driver", "", "storage driver override (mongo, postgres, redis, memory)")
	cmd.PersistentFlags().BoolVar(&useTest, "test", false, "target the test database instead of the configured one")

	var withStore storeRunner = func(cmd *cobra.Command, fn func(repo repository.RepositoryInterface) error) error {
		repo, release, err := open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer release()
		return fn(repo)
	}

	cmd.AddCommand(
		newGenerateCmd(withStore),
		newImportCmd(withStore),
		newExportCmd(withStore),
		newDropCmd(withStore),
		newCountCmd(withStore),
	)

	return cmd
}

type storeRunner func(cmd *cobra.Command, fn func(repo repository.RepositoryInterface) error) error

// applyTestDatabase points every engine at its test namespace
func applyTestDatabase(cfg *config.Config) {
	cfg.Mongo.Database = getEnv("MONGO_TEST_DATABASE", "test-blog-app")
	cfg.Database.DBName = getEnv("DB_TEST_NAME", cfg.Database.DBName+"_test")
	cfg.Redis.KeyPrefix = getEnv("REDIS_TEST_KEY_PREFIX", "test:")
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
