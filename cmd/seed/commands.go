package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"blog-api/internal/domains/post/repository"
	"blog-api/internal/domains/post/seed"
)

func newGenerateCmd(withStore storeRunner) *cobra.Command {
	var (
		count    int
		fakeSeed int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Insert generated blog posts in one batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New("--count must be at least 1")
			}

			posts := seed.NewGenerator(fakeSeed).Posts(count)
			return withStore(cmd, func(repo repository.RepositoryInterface) error {
				inserted, err := repo.InsertMany(cmd.Context(), posts)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted %d posts\n", len(inserted))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of posts to generate")
	cmd.Flags().Int64Var(&fakeSeed, "seed", 0, "faker seed for reproducible data (0 = random)")
	return cmd
}

func newImportCmd(withStore storeRunner) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.csv|file.xlsx>",
		Short: "Import blog posts from a CSV or XLSX file",
		Long: "Columns: title, content, author_first_name, author_last_name and an optional\n" +
			"publish_date in RFC 3339. Every row is validated before anything is written.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d valid posts in %s (dry run)\n", len(posts), args[0])
				return nil
			}

			return withStore(cmd, func(repo repository.RepositoryInterface) error {
				inserted, err := repo.InsertMany(cmd.Context(), posts)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts\n", len(inserted))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without writing")
	return cmd
}

func newExportCmd(withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx|->",
		Short: "Export every blog post to a spreadsheet",
		Long:  "Export every blog post to a spreadsheet. Pass - to write the workbook to stdout.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(repo repository.RepositoryInterface) error {
				posts, err := repo.FindAll(cmd.Context())
				if err != nil {
					return err
				}
				if args[0] == "-" {
					return seed.WriteXLSX(cmd.OutOrStdout(), posts)
				}
				if err := seed.SaveXLSX(args[0], posts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d posts to %s\n", len(posts), args[0])
				return nil
			})
		},
	}
}

func newDropCmd(withStore storeRunner) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Delete every blog post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, "This removes every blog post. Continue?") {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}

			return withStore(cmd, func(repo repository.RepositoryInterface) error {
				if err := repo.DropAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "dropped all posts")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newCountCmd(withStore storeRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(repo repository.RepositoryInterface) error {
				n, err := repo.Count(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}
